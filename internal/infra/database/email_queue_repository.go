package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// EmailQueueRepository só chama as funções SQL da fila; a máquina de estados
// (pending -> processing -> sent|failed) vive no banco.
type EmailQueueRepository struct {
	DB *sql.DB
}

func NewEmailQueueRepository(db *sql.DB) *EmailQueueRepository {
	return &EmailQueueRepository{DB: db}
}

func (r *EmailQueueRepository) ClaimBatch(ctx context.Context, size int) ([]*entity.EmailQueueItem, error) {
	query := `
		SELECT id, recipient, subject, html, text, provider_config, priority, status, created_at
		FROM claim_email_queue_batch($1)
	`

	rows, err := r.DB.QueryContext(ctx, query, size)
	if err != nil {
		return nil, queueError("claim_email_queue_batch", err)
	}
	defer rows.Close()

	items := []*entity.EmailQueueItem{}
	for rows.Next() {
		var (
			item   entity.EmailQueueItem
			text   sql.NullString
			config []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.Recipient,
			&item.Subject,
			&item.HTML,
			&text,
			&config,
			&item.Priority,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler item da fila: %w", err)
		}
		item.Text = text.String
		if len(config) > 0 {
			item.ProviderConfig = json.RawMessage(config)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar lote da fila: %w", err)
	}

	return items, nil
}

func (r *EmailQueueRepository) MarkSent(ctx context.Context, queueID, messageID string, response json.RawMessage) error {
	if len(response) == 0 {
		response = json.RawMessage(`{}`)
	}
	_, err := r.DB.ExecContext(ctx, `SELECT mark_email_sent($1, $2, $3)`, queueID, messageID, string(response))
	if err != nil {
		return queueError("mark_email_sent", err)
	}
	return nil
}

func (r *EmailQueueRepository) MarkFailed(ctx context.Context, queueID, errorDetail string) error {
	_, err := r.DB.ExecContext(ctx, `SELECT mark_email_failed($1, $2)`, queueID, errorDetail)
	if err != nil {
		return queueError("mark_email_failed", err)
	}
	return nil
}

func queueError(fn string, err error) error {
	if pgCode(err) == codeUndefinedFunction {
		return fmt.Errorf("%s: %w", fn, ErrQueueFunctionMissing)
	}
	return fmt.Errorf("erro em %s: %w", fn, err)
}
