package mail

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/infra/integration/brevo"
)

type BrevoAPI interface {
	SendEmail(ctx context.Context, apiKey string, input brevo.SendEmailInput) (*brevo.SendEmailOutput, error)
}

// BrevoSender usa a API transacional REST em vez de SMTP.
type BrevoSender struct {
	api BrevoAPI
}

func NewBrevoSender(api BrevoAPI) *BrevoSender {
	return &BrevoSender{api: api}
}

func (s *BrevoSender) Send(ctx context.Context, cfg Config, msg Message) (*Result, error) {
	// a chave SMTP da Brevo também vale como api-key quando não há APIKey
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = cfg.Password
	}

	out, err := s.api.SendEmail(ctx, apiKey, brevo.SendEmailInput{
		Sender:      brevo.Contact{Email: cfg.FromEmail, Name: cfg.FromName},
		To:          []brevo.Contact{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	})
	if err != nil {
		return nil, err
	}
	if out.MessageID == "" {
		return nil, fmt.Errorf("brevo não devolveu messageId: %s", out.Raw)
	}

	return &Result{
		MessageID: out.MessageID,
		Response:  out.Raw,
		Accepted:  []string{msg.To},
		Rejected:  []string{},
		Status:    StatusSent,
	}, nil
}
