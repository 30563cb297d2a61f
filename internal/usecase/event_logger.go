package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

type EventLogger struct {
	Repo      entity.EventRepositoryInterface
	Publisher EventPublisher
	BusName   string
	now       func() time.Time
}

func NewEventLogger(repo entity.EventRepositoryInterface, publisher EventPublisher, busName string) *EventLogger {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &EventLogger{Repo: repo, Publisher: publisher, BusName: busName, now: time.Now}
}

// NewEventID gera "<unix-millis>-<uuid v4>".
func NewEventID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
}

// Log acrescenta um evento. Não há deduplicação por event_id: quem reenvia
// o mesmo id explícito grava duas linhas.
func (l *EventLogger) Log(ctx context.Context, in entity.EventInput) (*entity.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidationError("event name is required")
	}

	now := l.now().UTC()
	eventID := in.EventID
	if eventID == "" {
		eventID = NewEventID(now)
	}
	source := in.Source
	if source == "" {
		source = entity.EventSourceServer
	}
	props := in.Properties
	if props == nil {
		props = map[string]any{}
	}

	ev := &entity.Event{
		ID:         uuid.New().String(),
		EventID:    eventID,
		Name:       name,
		Type:       in.Type,
		Canal:      in.Canal,
		Properties: props,
		Links:      in.Links,
		Source:     source,
		CreatedAt:  now,
	}

	if err := l.Repo.Insert(ctx, ev); err != nil {
		return nil, fmt.Errorf("erro ao gravar evento: %w", err)
	}
	metrics.RecordEventLogged(ev.Source)

	if err := l.Publisher.PublishEvent(ctx, ev.Message()); err != nil {
		metrics.RecordEventPublishError(l.BusName)
		logger.WithFields(map[string]interface{}{
			"event_id": ev.EventID,
			"bus":      l.BusName,
		}).WithError(err).Warn("⚠️ falha ao publicar evento, seguindo")
	}

	return ev, nil
}
