package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ConsentRepository struct {
	DB *sql.DB
}

func NewConsentRepository(db *sql.DB) *ConsentRepository {
	return &ConsentRepository{DB: db}
}

// Create só insere. Não existe UPDATE em consents.
func (r *ConsentRepository) Create(ctx context.Context, c *entity.Consent) error {
	query := `
		INSERT INTO consents (id, contact_id, purpose, channel, disclosure, lawful_basis, granted, ip_address, user_agent, granted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.ContactID,
		c.Purpose,
		c.Channel,
		nullString(c.Disclosure),
		c.LawfulBasis,
		c.Granted,
		nullString(c.IPAddress),
		nullString(c.UserAgent),
		c.GrantedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir consentimento: %w", err)
	}
	return nil
}
