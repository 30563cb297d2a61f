package entity

import (
	"context"
	"strings"
	"time"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Value Object: Attribution (UTM + ids da plataforma de anúncio)
type Attribution struct {
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
	AdID        string `json:"ad_id,omitempty"`
	AdsetID     string `json:"adset_id,omitempty"`
	CampaignID  string `json:"campaign_id,omitempty"`
	FormID      string `json:"form_id,omitempty"`
}

// NewAttribution monta o value object a partir do mapa UTM normalizado.
func NewAttribution(utm map[string]string) Attribution {
	return Attribution{
		UTMSource:   utm["utm_source"],
		UTMMedium:   utm["utm_medium"],
		UTMCampaign: utm["utm_campaign"],
		UTMTerm:     utm["utm_term"],
		UTMContent:  utm["utm_content"],
		AdID:        utm["ad_id"],
		AdsetID:     utm["adset_id"],
		CampaignID:  utm["campaign_id"],
		FormID:      utm["form_id"],
	}
}

// Entidade: Contact (lead). O email é a chave natural.
type Contact struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	FirstName   string      `json:"first_name,omitempty"`
	LastName    string      `json:"last_name,omitempty"`
	Zipcode     string      `json:"zipcode,omitempty"`
	City        string      `json:"city,omitempty"`
	Country     string      `json:"country,omitempty"`
	Source      string      `json:"source,omitempty"` // facebook, tiktok, web
	Attribution Attribution `json:"attribution"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NormalizeEmail aplica a mesma forma canônica em todos os caminhos de ingestão.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type ContactRepositoryInterface interface {
	// Upsert insere ou atualiza pelo email e preenche ID/CreatedAt/UpdatedAt.
	Upsert(ctx context.Context, contact *Contact) error
	// FindIDByEmail devolve "" quando o contato não existe.
	FindIDByEmail(ctx context.Context, email string) (string, error)
}
