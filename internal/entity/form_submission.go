package entity

import (
	"context"
	"time"
)

const FormSubmissionReceived = "received"

// FormSubmission guarda o payload bruto de um webhook de formulário.
type FormSubmission struct {
	ID        string            `json:"id"`
	ContactID string            `json:"contact_id,omitempty"` // vazio quando não veio email
	Platform  string            `json:"platform"`
	Payload   map[string]any    `json:"payload"`
	Status    string            `json:"status"`
	UTM       map[string]string `json:"utm,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type FormSubmissionRepositoryInterface interface {
	Create(ctx context.Context, submission *FormSubmission) error
}
