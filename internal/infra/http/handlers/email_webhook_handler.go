package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type EmailEventRecorder interface {
	Execute(ctx context.Context, input usecase.RecordEmailEventInput) (*usecase.RecordEmailEventOutput, error)
}

// EmailWebhookHandler recebe os eventos de entrega da Brevo.
type EmailWebhookHandler struct {
	UseCase EmailEventRecorder
	MaxBody int64
}

func NewEmailWebhookHandler(uc EmailEventRecorder, maxBody int64) *EmailWebhookHandler {
	return &EmailWebhookHandler{UseCase: uc, MaxBody: maxBody}
}

func (h *EmailWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := decodeJSON(w, r, h.MaxBody, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	out, err := h.UseCase.Execute(r.Context(), usecase.RecordEmailEventInput{Payload: payload})
	if err != nil {
		logger.WithError(err).Error("❌ webhook de email falhou")
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	logger.WithFields(map[string]interface{}{
		"event_id": out.EventID,
		"type":     out.Type,
	}).Debug("evento de email registrado")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
