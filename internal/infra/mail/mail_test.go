package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/infra/integration/brevo"
)

type MockBrevoAPI struct {
	mock.Mock
}

func (m *MockBrevoAPI) SendEmail(ctx context.Context, apiKey string, input brevo.SendEmailInput) (*brevo.SendEmailOutput, error) {
	args := m.Called(ctx, apiKey, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*brevo.SendEmailOutput), args.Error(1)
}

type fakeSender struct {
	calls int
	res   *Result
	err   error
}

func (f *fakeSender) Send(ctx context.Context, cfg Config, msg Message) (*Result, error) {
	f.calls++
	return f.res, f.err
}

var testMsg = Message{To: "a@b.com", Subject: "Promo", HTML: "<p>hi</p>"}

func TestParseProviderKind(t *testing.T) {
	for in, want := range map[string]ProviderKind{"brevo": ProviderBrevo, " SMTP ": ProviderSMTP, "simulated": ProviderSimulated, "": ""} {
		got, err := ParseProviderKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseProviderKind("sendgrid")
	assert.Error(t, err)
}

func TestParseConfigAndMerge(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"provider":"brevo","api_key":"k1","from_email":"promo@ligue.fr"}`))
	require.NoError(t, err)
	assert.Equal(t, ProviderBrevo, cfg.Provider)

	base := Config{Provider: ProviderSMTP, Host: "smtp.local", Port: 587, FromEmail: "noreply@ligue.fr"}
	merged := base.Merge(cfg)
	assert.Equal(t, ProviderBrevo, merged.Provider)
	assert.Equal(t, "smtp.local", merged.Host)
	assert.Equal(t, "promo@ligue.fr", merged.FromEmail)
	assert.Equal(t, "k1", merged.APIKey)

	empty, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, empty)

	_, err = ParseConfig([]byte(`{"provider":"carrier-pigeon"}`))
	assert.Error(t, err)
}

func TestMergeDropsCredentialsOnHostOrProviderChange(t *testing.T) {
	base := Config{Provider: ProviderSMTP, Host: "smtp.ligue.fr", Port: 587, User: "svc", Password: "s3cret", APIKey: "brevo-key", FromEmail: "noreply@ligue.fr"}

	t.Run("Other Host", func(t *testing.T) {
		override, err := ParseConfig([]byte(`{"host":"attacker.example","port":2525}`))
		require.NoError(t, err)

		merged := base.Merge(override)

		assert.Equal(t, "attacker.example", merged.Host)
		assert.Equal(t, 2525, merged.Port)
		assert.Empty(t, merged.User)
		assert.Empty(t, merged.Password)
		assert.Empty(t, merged.APIKey)
		assert.Equal(t, "noreply@ligue.fr", merged.FromEmail)
	})

	t.Run("Other Host With Own Credentials", func(t *testing.T) {
		merged := base.Merge(Config{Host: "smtp.other.fr", User: "u2", Password: "p2"})
		assert.Equal(t, "u2", merged.User)
		assert.Equal(t, "p2", merged.Password)
	})

	t.Run("Other Provider", func(t *testing.T) {
		merged := base.Merge(Config{Provider: ProviderBrevo})
		assert.Empty(t, merged.APIKey)
		assert.Empty(t, merged.Password)
	})

	t.Run("Same Host Keeps Credentials", func(t *testing.T) {
		merged := base.Merge(Config{Host: "SMTP.ligue.fr", Port: 465})
		assert.Equal(t, "svc", merged.User)
		assert.Equal(t, "s3cret", merged.Password)
		assert.Equal(t, 465, merged.Port)
	})
}

func TestConfigRedacted(t *testing.T) {
	cfg := Config{Password: "secret", APIKey: "key"}.Redacted()
	assert.Equal(t, "***", cfg.Password)
	assert.Equal(t, "***", cfg.APIKey)
}

func TestDispatcherRoutesByExplicitKind(t *testing.T) {
	brevoSender := &fakeSender{res: &Result{MessageID: "<b>"}}
	smtpSender := &fakeSender{res: &Result{MessageID: "<s>"}}
	d := NewDispatcher().Register(ProviderBrevo, brevoSender).Register(ProviderSMTP, smtpSender)

	// host com "brevo" no nome não muda nada: vale o kind
	res, err := d.Send(context.Background(), Config{Provider: ProviderSMTP, Host: "smtp-relay.brevo.com", FromEmail: "x@y.com"}, testMsg)
	require.NoError(t, err)
	assert.Equal(t, "<s>", res.MessageID)
	assert.Equal(t, 0, brevoSender.calls)
	assert.Equal(t, 1, smtpSender.calls)
}

func TestDispatcherErrors(t *testing.T) {
	d := NewDispatcher().Register(ProviderSMTP, &fakeSender{err: errors.New("connection refused")})
	cfg := Config{Provider: ProviderSMTP, FromEmail: "x@y.com"}

	_, err := d.Send(context.Background(), cfg, Message{Subject: "s", HTML: "h"})
	assert.ErrorIs(t, err, ErrMissingRecipient)

	_, err = d.Send(context.Background(), cfg, Message{To: "a@b.com", HTML: "h"})
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = d.Send(context.Background(), cfg, Message{To: "a@b.com", Subject: "s"})
	assert.ErrorIs(t, err, ErrMissingBody)

	_, err = d.Send(context.Background(), Config{Provider: ProviderSMTP}, testMsg)
	assert.ErrorIs(t, err, ErrMissingSender)

	_, err = d.Send(context.Background(), Config{Provider: ProviderBrevo, FromEmail: "x@y.com"}, testMsg)
	assert.ErrorContains(t, err, "não registrado")

	_, err = d.Send(context.Background(), cfg, testMsg)
	assert.ErrorContains(t, err, "connection refused")
}

func TestSimulatedSender(t *testing.T) {
	res, err := NewSimulatedSender(0).Send(context.Background(), Config{FromEmail: "noreply@ligue.fr"}, testMsg)
	require.NoError(t, err)

	assert.Regexp(t, `^<\d+\.[0-9a-f]{8}@ligue\.fr>$`, res.MessageID)
	assert.Contains(t, res.Response, "250 2.0.0 OK: queued as")
	assert.Equal(t, []string{"a@b.com"}, res.Accepted)
	assert.Empty(t, res.Rejected)
	assert.Equal(t, StatusSent, res.Status)
}

func TestSimulatedSenderHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedSender(time.Hour).Send(ctx, Config{}, testMsg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSMTPSender(t *testing.T) {
	var gotDialer *gomail.Dialer
	s := &SMTPSender{dialAndSend: func(d *gomail.Dialer, m *gomail.Message) error {
		gotDialer = d
		assert.Equal(t, []string{"a@b.com"}, m.GetHeader("To"))
		assert.Equal(t, []string{"Promo"}, m.GetHeader("Subject"))
		return nil
	}}

	res, err := s.Send(context.Background(), Config{Host: "smtp.local", Port: 465, User: "u", Password: "p", FromEmail: "noreply@ligue.fr"}, testMsg)
	require.NoError(t, err)

	assert.True(t, gotDialer.SSL)
	assert.Equal(t, "smtp.local", gotDialer.Host)
	assert.Contains(t, res.MessageID, "@ligue.fr>")
	assert.Equal(t, []string{"a@b.com"}, res.Accepted)
}

func TestSMTPSenderFailure(t *testing.T) {
	s := &SMTPSender{dialAndSend: func(d *gomail.Dialer, m *gomail.Message) error {
		return errors.New("535 auth failed")
	}}

	_, err := s.Send(context.Background(), Config{Host: "smtp.local", FromEmail: "x@y.com"}, testMsg)
	assert.ErrorContains(t, err, "535 auth failed")

	_, err = s.Send(context.Background(), Config{FromEmail: "x@y.com"}, testMsg)
	assert.ErrorContains(t, err, "host")
}

func TestBrevoSender(t *testing.T) {
	api := new(MockBrevoAPI)
	api.On("SendEmail", mock.Anything, "smtp-key", mock.MatchedBy(func(in brevo.SendEmailInput) bool {
		return in.To[0].Email == "a@b.com" && in.Sender.Email == "noreply@ligue.fr" && in.HTMLContent == "<p>hi</p>"
	})).Return(&brevo.SendEmailOutput{MessageID: "<m1>", Raw: `{"messageId":"<m1>"}`}, nil)

	res, err := NewBrevoSender(api).Send(context.Background(), Config{Password: "smtp-key", FromEmail: "noreply@ligue.fr"}, testMsg)
	require.NoError(t, err)

	assert.Equal(t, "<m1>", res.MessageID)
	assert.Equal(t, `{"messageId":"<m1>"}`, res.Response)
	api.AssertExpectations(t)
}

func TestBrevoSenderPropagatesAPIError(t *testing.T) {
	api := new(MockBrevoAPI)
	api.On("SendEmail", mock.Anything, "k", mock.Anything).Return(nil, &brevo.APIError{StatusCode: 401, Body: "unauthorized"})

	_, err := NewBrevoSender(api).Send(context.Background(), Config{APIKey: "k", FromEmail: "x@y.com"}, testMsg)

	var apiErr *brevo.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}
