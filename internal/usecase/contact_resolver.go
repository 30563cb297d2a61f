package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ContactResolver struct {
	Repo entity.ContactRepositoryInterface
}

func NewContactResolver(repo entity.ContactRepositoryInterface) *ContactResolver {
	return &ContactResolver{Repo: repo}
}

// Upsert cria ou atualiza pelo email e devolve o id. Email vazio é recusado
// pelo banco (NOT NULL), não aqui.
func (r *ContactResolver) Upsert(ctx context.Context, c *entity.Contact) (string, error) {
	c.Email = entity.NormalizeEmail(c.Email)
	if err := r.Repo.Upsert(ctx, c); err != nil {
		return "", fmt.Errorf("erro ao salvar contato: %w", err)
	}
	return c.ID, nil
}

// Lookup nunca cria contato. "" significa não encontrado.
func (r *ContactResolver) Lookup(ctx context.Context, email string) (string, error) {
	email = entity.NormalizeEmail(email)
	if email == "" {
		return "", nil
	}
	id, err := r.Repo.FindIDByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar contato: %w", err)
	}
	return id, nil
}
