package entity

import (
	"context"
	"encoding/json"
	"time"
)

const (
	EmailStatusPending    = "pending"
	EmailStatusProcessing = "processing"
	EmailStatusSent       = "sent"
	EmailStatusFailed     = "failed"
)

// EmailQueueItem é criado fora deste serviço (campanhas). Sent e failed são terminais.
type EmailQueueItem struct {
	ID             string          `json:"id"`
	Recipient      string          `json:"recipient"`
	Subject        string          `json:"subject"`
	HTML           string          `json:"html"`
	Text           string          `json:"text,omitempty"`
	ProviderConfig json.RawMessage `json:"provider_config,omitempty"`
	Priority       int             `json:"priority"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EmailQueueRepositoryInterface encapsula as funções SQL da fila.
// A exclusividade do lote é garantida por ClaimBatch, não por este serviço.
type EmailQueueRepositoryInterface interface {
	ClaimBatch(ctx context.Context, size int) ([]*EmailQueueItem, error)
	MarkSent(ctx context.Context, queueID, messageID string, response json.RawMessage) error
	MarkFailed(ctx context.Context, queueID, errorDetail string) error
}
