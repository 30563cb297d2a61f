package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var ErrConsentWithoutContact = errors.New("consentimento exige um contato resolvido")

type ConsentRecorder struct {
	Repo entity.ConsentRepositoryInterface
}

func NewConsentRecorder(repo entity.ConsentRepositoryInterface) *ConsentRecorder {
	return &ConsentRecorder{Repo: repo}
}

// Record só acrescenta. Revogação não existe neste serviço.
func (r *ConsentRecorder) Record(ctx context.Context, contactID string, d entity.ConsentDescriptor) (*entity.Consent, error) {
	if contactID == "" {
		return nil, ErrConsentWithoutContact
	}

	c := &entity.Consent{
		ID:          uuid.New().String(),
		ContactID:   contactID,
		Purpose:     orDefault(d.Purpose, entity.ConsentPurposeMarketing),
		Channel:     orDefault(d.Channel, entity.ConsentChannelEmail),
		Disclosure:  d.Disclosure,
		LawfulBasis: orDefault(d.LawfulBasis, entity.LawfulBasisConsent),
		Granted:     true,
		IPAddress:   d.IPAddress,
		UserAgent:   d.UserAgent,
		GrantedAt:   time.Now().UTC(),
	}

	if err := r.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("erro ao registrar consentimento: %w", err)
	}
	return c, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
