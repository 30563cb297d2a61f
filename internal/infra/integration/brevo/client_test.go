package brevo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmailSuccess(t *testing.T) {
	var received SendEmailInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/smtp/email", r.URL.Path)
		assert.Equal(t, "item-key", r.Header.Get("api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"<abc@smtp-relay.mailin.fr>"}`))
	}))
	defer srv.Close()

	c := NewClient("default-key", srv.URL)
	out, err := c.SendEmail(context.Background(), "item-key", SendEmailInput{
		Sender:      Contact{Email: "noreply@ligue.fr"},
		To:          []Contact{{Email: "a@b.com"}},
		Subject:     "Promo",
		HTMLContent: "<p>hi</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "<abc@smtp-relay.mailin.fr>", out.MessageID)
	assert.Contains(t, out.Raw, "messageId")
	assert.Equal(t, "Promo", received.Subject)
	assert.Equal(t, "a@b.com", received.To[0].Email)
}

func TestSendEmailUsesClientKeyWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "default-key", r.Header.Get("api-key"))
		w.Write([]byte(`{"messageIds":["<m1>","<m2>"]}`))
	}))
	defer srv.Close()

	out, err := NewClient("default-key", srv.URL).SendEmail(context.Background(), "", SendEmailInput{})
	require.NoError(t, err)
	assert.Equal(t, "<m1>", out.MessageID)
}

func TestNon2xxCarriesProviderBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"invalid_parameter","message":"sender is invalid"}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL).SendEmail(context.Background(), "", SendEmailInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "sender is invalid")
}

func TestDiagnosticsEndpoints(t *testing.T) {
	paths := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths[r.URL.Path] = true
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL)
	ctx := context.Background()

	_, err := c.GetAccount(ctx, "")
	require.NoError(t, err)
	_, err = c.ListContactLists(ctx, "", 0)
	require.NoError(t, err)
	_, err = c.ListSenders(ctx, "")
	require.NoError(t, err)
	raw, err := c.ListCampaigns(ctx, "", 5)
	require.NoError(t, err)

	assert.JSONEq(t, `{"ok":true}`, string(raw))
	for _, p := range []string{"/account", "/contacts/lists", "/senders", "/emailCampaigns"} {
		assert.True(t, paths[p], p)
	}
}
