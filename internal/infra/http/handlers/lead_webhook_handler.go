package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadIngester interface {
	Execute(ctx context.Context, input usecase.IngestLeadInput) (*usecase.IngestLeadOutput, error)
}

// LeadWebhookHandler recebe formulários de Meta e TikTok. A assinatura é
// conferida antes, no middleware VerifySignature.
type LeadWebhookHandler struct {
	UseCase         LeadIngester
	Limiter         Limiter
	MetaVerifyToken string
	MaxBody         int64
}

func NewLeadWebhookHandler(uc LeadIngester, limiter Limiter, metaVerifyToken string, maxBody int64) *LeadWebhookHandler {
	if limiter == nil {
		limiter = allowAll{}
	}
	return &LeadWebhookHandler{
		UseCase:         uc,
		Limiter:         limiter,
		MetaVerifyToken: metaVerifyToken,
		MaxBody:         maxBody,
	}
}

type leadWebhookResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *LeadWebhookHandler) HandleMeta(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, usecase.PlatformMeta)
}

func (h *LeadWebhookHandler) HandleTikTok(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, usecase.PlatformTikTok)
}

// VerifyMeta responde o desafio de assinatura do webhook da Meta.
func (h *LeadWebhookHandler) VerifyMeta(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") != "subscribe" || h.MetaVerifyToken == "" || q.Get("hub.verify_token") != h.MetaVerifyToken {
		writeJSON(w, http.StatusForbidden, leadWebhookResponse{OK: false, Error: "verification failed"})
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(q.Get("hub.challenge")))
}

func (h *LeadWebhookHandler) handle(w http.ResponseWriter, r *http.Request, platform string) {
	ctx := r.Context()
	clientIP := getClientIP(r)

	if !h.Limiter.Allow(ctx, platform+":"+clientIP) {
		writeJSON(w, http.StatusTooManyRequests, leadWebhookResponse{OK: false, Error: errRateLimited.Message})
		return
	}

	var payload map[string]any
	if err := decodeJSON(w, r, h.MaxBody, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, leadWebhookResponse{OK: false, Error: err.Error()})
		return
	}

	out, err := h.UseCase.Execute(ctx, usecase.IngestLeadInput{
		Platform:  platform,
		Payload:   payload,
		IPAddress: clientIP,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"platform":  platform,
			"client_ip": clientIP,
		}).WithError(err).Error("❌ webhook de lead falhou")
		writeJSON(w, statusFor(err), leadWebhookResponse{OK: false, Error: err.Error()})
		return
	}

	// Meta responde lead_id, TikTok contact_id; null quando não veio email
	idKey := "contact_id"
	if platform == usecase.PlatformMeta {
		idKey = "lead_id"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		idKey:      nullable(out.ContactID),
		"event_id": out.EventID,
	})
}
