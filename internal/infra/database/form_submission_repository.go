package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type FormSubmissionRepository struct {
	DB *sql.DB
}

func NewFormSubmissionRepository(db *sql.DB) *FormSubmissionRepository {
	return &FormSubmissionRepository{DB: db}
}

func (r *FormSubmissionRepository) Create(ctx context.Context, s *entity.FormSubmission) error {
	payload, err := jsonOrEmpty(s.Payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar payload: %w", err)
	}
	utm, err := jsonOrEmpty(s.UTM)
	if err != nil {
		return fmt.Errorf("erro ao serializar utm: %w", err)
	}

	query := `
		INSERT INTO form_submissions (id, contact_id, platform, payload, status, utm, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.DB.ExecContext(ctx, query,
		s.ID,
		nullString(s.ContactID),
		s.Platform,
		payload,
		s.Status,
		utm,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir form_submission: %w", err)
	}
	return nil
}

// jsonOrEmpty grava {} em vez de null para mapas vazios. Devolve string para
// funcionar igual em pgx e lib/pq.
func jsonOrEmpty[T any](m map[string]T) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
