package usecase

import (
	"context"
	"encoding/json"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
)

// EventPublisher é o barramento de eventos (RabbitMQ ou Kafka). Best-effort.
type EventPublisher interface {
	PublishEvent(ctx context.Context, msg entity.EventMessage) error
}

type EmailSender interface {
	Send(ctx context.Context, cfg mail.Config, msg mail.Message) (*mail.Result, error)
}

type BrevoDiagnosticsAPI interface {
	GetAccount(ctx context.Context, apiKey string) (json.RawMessage, error)
	ListContactLists(ctx context.Context, apiKey string, limit int) (json.RawMessage, error)
	ListSenders(ctx context.Context, apiKey string) (json.RawMessage, error)
	ListCampaigns(ctx context.Context, apiKey string, limit int) (json.RawMessage, error)
}

// NoopPublisher é usado quando EVENT_BUS=none.
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, msg entity.EventMessage) error { return nil }
