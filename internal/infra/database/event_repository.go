package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ErrDuplicateEventID só aparece se alguém criou um índice único em
// events.event_id; o schema padrão aceita duplicatas.
var ErrDuplicateEventID = errors.New("event_id duplicado")

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Insert(ctx context.Context, e *entity.Event) error {
	props, err := jsonOrEmpty(e.Properties)
	if err != nil {
		return fmt.Errorf("erro ao serializar properties: %w", err)
	}

	query := `
		INSERT INTO events (
			id, event_id, name, type, canal, properties,
			lead_id, contact_id, campaign_id, page_id, contract_id, project_id, user_id,
			source, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	l := e.Links
	_, err = r.DB.ExecContext(ctx, query,
		e.ID,
		e.EventID,
		e.Name,
		nullString(e.Type),
		nullString(e.Canal),
		props,
		nullString(l.LeadID),
		nullString(l.ContactID),
		nullString(l.CampaignID),
		nullString(l.PageID),
		nullString(l.ContractID),
		nullString(l.ProjectID),
		nullString(l.UserID),
		e.Source,
		e.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEventID, e.EventID)
		}
		return fmt.Errorf("erro ao inserir evento: %w", err)
	}
	return nil
}
