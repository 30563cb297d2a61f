package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// Upsert: campo presente sobrescreve, campo ausente (NULL) mantém o anterior.
func (r *ContactRepository) Upsert(ctx context.Context, c *entity.Contact) error {
	query := `
		INSERT INTO contacts (
			email, phone, first_name, last_name, zipcode, city, country, source,
			utm_source, utm_medium, utm_campaign, utm_term, utm_content,
			ad_id, adset_id, campaign_id, form_id, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			phone = COALESCE(EXCLUDED.phone, contacts.phone),
			first_name = COALESCE(EXCLUDED.first_name, contacts.first_name),
			last_name = COALESCE(EXCLUDED.last_name, contacts.last_name),
			zipcode = COALESCE(EXCLUDED.zipcode, contacts.zipcode),
			city = COALESCE(EXCLUDED.city, contacts.city),
			country = COALESCE(EXCLUDED.country, contacts.country),
			source = COALESCE(EXCLUDED.source, contacts.source),
			utm_source = COALESCE(EXCLUDED.utm_source, contacts.utm_source),
			utm_medium = COALESCE(EXCLUDED.utm_medium, contacts.utm_medium),
			utm_campaign = COALESCE(EXCLUDED.utm_campaign, contacts.utm_campaign),
			utm_term = COALESCE(EXCLUDED.utm_term, contacts.utm_term),
			utm_content = COALESCE(EXCLUDED.utm_content, contacts.utm_content),
			ad_id = COALESCE(EXCLUDED.ad_id, contacts.ad_id),
			adset_id = COALESCE(EXCLUDED.adset_id, contacts.adset_id),
			campaign_id = COALESCE(EXCLUDED.campaign_id, contacts.campaign_id),
			form_id = COALESCE(EXCLUDED.form_id, contacts.form_id),
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	a := c.Attribution
	err := r.DB.QueryRowContext(
		ctx,
		query,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.FirstName),
		nullString(c.LastName),
		nullString(c.Zipcode),
		nullString(c.City),
		nullString(c.Country),
		nullString(c.Source),
		nullString(a.UTMSource),
		nullString(a.UTMMedium),
		nullString(a.UTMCampaign),
		nullString(a.UTMTerm),
		nullString(a.UTMContent),
		nullString(a.AdID),
		nullString(a.AdsetID),
		nullString(a.CampaignID),
		nullString(a.FormID),
	).Scan(
		&c.ID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if pgCode(err) == codeNotNullViolation {
			return ErrEmailRequired
		}
		return fmt.Errorf("erro no upsert de contato: %w", err)
	}

	return nil
}

// FindIDByEmail é só leitura. Não encontrado = "" sem erro.
func (r *ContactRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", nil
	}

	var id string
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM contacts WHERE email = $1 LIMIT 1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("erro ao buscar contato por email: %w", err)
	}
	return id, nil
}
