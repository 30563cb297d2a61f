package entity

import (
	"context"
	"time"
)

const (
	ConsentPurposeMarketing = "marketing"
	ConsentChannelEmail     = "email"
	LawfulBasisConsent      = "consent"
)

// ConsentDescriptor é o que o webhook capturou; o Recorder transforma em Consent.
type ConsentDescriptor struct {
	Purpose     string
	Channel     string
	Disclosure  string
	LawfulBasis string
	IPAddress   string
	UserAgent   string
}

// Consent é imutável: nunca é atualizado nem revogado por este serviço.
type Consent struct {
	ID          string    `json:"id"`
	ContactID   string    `json:"contact_id"`
	Purpose     string    `json:"purpose"`
	Channel     string    `json:"channel"`
	Disclosure  string    `json:"disclosure,omitempty"`
	LawfulBasis string    `json:"lawful_basis"`
	Granted     bool      `json:"granted"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	GrantedAt   time.Time `json:"granted_at"`
}

type ConsentRepositoryInterface interface {
	Create(ctx context.Context, consent *Consent) error
}
