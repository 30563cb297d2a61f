package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type EmailSenderUseCase interface {
	Execute(ctx context.Context, input usecase.SendEmailInput) (*usecase.SendEmailOutput, error)
}

type QueueProcessor interface {
	Execute(ctx context.Context) (*usecase.QueueRunResult, error)
}

type EmailHandler struct {
	Send    EmailSenderUseCase
	Queue   QueueProcessor
	MaxBody int64
}

func NewEmailHandler(send EmailSenderUseCase, queue QueueProcessor, maxBody int64) *EmailHandler {
	return &EmailHandler{Send: send, Queue: queue, MaxBody: maxBody}
}

type emailFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type sendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Response  string `json:"response"`
}

func (h *EmailHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendEmailInput
	if err := decodeJSON(w, r, h.MaxBody, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, emailFailure{Error: err.Error()})
		return
	}

	out, err := h.Send.Execute(r.Context(), input)
	if err != nil {
		writeJSON(w, statusFor(err), emailFailure{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sendEmailResponse{Success: true, MessageID: out.MessageID, Response: out.Response})
}

type processQueueResponse struct {
	Success bool `json:"success"`
	*usecase.QueueRunResult
}

func (h *EmailHandler) HandleProcessQueue(w http.ResponseWriter, r *http.Request) {
	run, err := h.Queue.Execute(r.Context())
	if err != nil {
		logger.WithError(err).Error("❌ erro ao processar fila de email")
		writeJSON(w, statusFor(err), emailFailure{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, processQueueResponse{Success: true, QueueRunResult: run})
}
