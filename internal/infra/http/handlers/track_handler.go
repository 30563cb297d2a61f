package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type EventTracker interface {
	Execute(ctx context.Context, input usecase.TrackEventInput) (*usecase.TrackEventOutput, error)
}

// TrackHandler roda atrás do middleware.BearerAuth.
type TrackHandler struct {
	UseCase EventTracker
	Limiter Limiter
	MaxBody int64
}

func NewTrackHandler(uc EventTracker, limiter Limiter, maxBody int64) *TrackHandler {
	if limiter == nil {
		limiter = allowAll{}
	}
	return &TrackHandler{UseCase: uc, Limiter: limiter, MaxBody: maxBody}
}

type trackResponse struct {
	OK      bool   `json:"ok"`
	EventID string `json:"event_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *TrackHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, trackResponse{Error: "unauthorized"})
		return
	}

	if !h.Limiter.Allow(ctx, "track:"+userID) {
		writeJSON(w, http.StatusTooManyRequests, trackResponse{Error: errRateLimited.Message})
		return
	}

	var input usecase.TrackEventInput
	if err := decodeJSON(w, r, h.MaxBody, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, trackResponse{Error: err.Error()})
		return
	}
	input.UserID = userID

	out, err := h.UseCase.Execute(ctx, input)
	if err != nil {
		writeJSON(w, statusFor(err), trackResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, trackResponse{OK: true, EventID: out.EventID})
}
