package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type BrevoDiagnostics interface {
	Execute(ctx context.Context, apiKey, action string) (json.RawMessage, error)
}

// DiagnosticsHandler: testes manuais de SMTP e da conta Brevo.
type DiagnosticsHandler struct {
	Send    EmailSenderUseCase
	Brevo   BrevoDiagnostics
	MaxBody int64
}

func NewDiagnosticsHandler(send EmailSenderUseCase, brevo BrevoDiagnostics, maxBody int64) *DiagnosticsHandler {
	return &DiagnosticsHandler{Send: send, Brevo: brevo, MaxBody: maxBody}
}

type smtpTestRequest struct {
	TestEmail string          `json:"testEmail"`
	Config    json.RawMessage `json:"config,omitempty"`
}

func (h *DiagnosticsHandler) HandleSMTPTest(w http.ResponseWriter, r *http.Request) {
	var req smtpTestRequest
	if err := decodeJSON(w, r, h.MaxBody, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, emailFailure{Error: err.Error()})
		return
	}
	if req.TestEmail == "" {
		writeJSON(w, http.StatusBadRequest, emailFailure{Error: "testEmail is required"})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	out, err := h.Send.Execute(r.Context(), usecase.SendEmailInput{
		To:      req.TestEmail,
		Subject: "Test SMTP - " + now,
		HTML:    fmt.Sprintf("<p>Email de test envoyé le %s.</p>", now),
		Text:    "Email de test envoyé le " + now,
		Config:  req.Config,
	})
	if err != nil {
		writeJSON(w, statusFor(err), emailFailure{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sendEmailResponse{Success: true, MessageID: out.MessageID, Response: out.Response})
}

type brevoTestRequest struct {
	APIKey string `json:"api_key"`
	Action string `json:"action"`
}

func (h *DiagnosticsHandler) HandleBrevoTest(w http.ResponseWriter, r *http.Request) {
	var req brevoTestRequest
	if err := decodeJSON(w, r, h.MaxBody, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, emailFailure{Error: err.Error()})
		return
	}

	out, err := h.Brevo.Execute(r.Context(), req.APIKey, req.Action)
	if err != nil {
		writeJSON(w, statusFor(err), emailFailure{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
