package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Pinger é qualquer dependência que sabe responder se está de pé
// (*sql.DB, RabbitMQ, Redis, Kafka).
type Pinger interface {
	PingContext(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	Dependencies map[string]Pinger
	Version      string
	StartTime    time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler: dependência nil aparece como "not configured".
func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		Dependencies: deps,
		Version:      "1.0.0",
		StartTime:    time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string, len(h.Dependencies))
	status := "healthy"

	for name, p := range h.Dependencies {
		if p == nil {
			deps[name] = "not configured"
			continue
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := p.PingContext(ctx)
		cancel()
		if err != nil {
			deps[name] = fmt.Sprintf("unhealthy: %v", err)
			status = "degraded"
		} else {
			deps[name] = "healthy"
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
