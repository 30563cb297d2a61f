package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/fieldmap"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

const EventTypeLead = "lead"

// IngestLeadUseCase: webhook de formulário -> contato -> consentimento ->
// submissão -> evento "Lead". Um passo que falha aborta os seguintes.
type IngestLeadUseCase struct {
	Mapper      *fieldmap.Mapper
	Contacts    *ContactResolver
	Consents    *ConsentRecorder
	Submissions entity.FormSubmissionRepositoryInterface
	Events      *EventLogger
}

func NewIngestLeadUseCase(
	mapper *fieldmap.Mapper,
	contacts *ContactResolver,
	consents *ConsentRecorder,
	submissions entity.FormSubmissionRepositoryInterface,
	events *EventLogger,
) *IngestLeadUseCase {
	if mapper == nil {
		mapper = fieldmap.New()
	}
	return &IngestLeadUseCase{
		Mapper:      mapper,
		Contacts:    contacts,
		Consents:    consents,
		Submissions: submissions,
		Events:      events,
	}
}

func (uc *IngestLeadUseCase) Execute(ctx context.Context, input IngestLeadInput) (*IngestLeadOutput, error) {
	if input.Platform == "" {
		return nil, NewValidationError("platform is required")
	}
	if input.Payload == nil {
		return nil, NewValidationError("payload is required")
	}

	record := uc.Mapper.Map(input.Payload)
	out := &IngestLeadOutput{}
	log := logger.WithFields(map[string]interface{}{
		"platform": input.Platform,
		"email":    record.Email,
	})

	p := NewPipeline()

	// sem email não há chave natural: segue sem contato
	if record.Email != "" {
		p.AddStep("resolve_contact", func(ctx context.Context) error {
			id, err := uc.Contacts.Upsert(ctx, contactFromRecord(input.Platform, record))
			out.ContactID = id
			return err
		})
	} else {
		log.Warn("⚠️ lead sem email, contato não resolvido")
	}

	if record.Consent != nil && record.Consent.Granted {
		p.AddStep("record_consent", func(ctx context.Context) error {
			if out.ContactID == "" {
				return nil
			}
			c, err := uc.Consents.Record(ctx, out.ContactID, entity.ConsentDescriptor{
				Purpose:     entity.ConsentPurposeMarketing,
				Channel:     entity.ConsentChannelEmail,
				Disclosure:  record.Consent.Disclosure,
				LawfulBasis: entity.LawfulBasisConsent,
				IPAddress:   input.IPAddress,
				UserAgent:   input.UserAgent,
			})
			if err != nil {
				return err
			}
			out.ConsentID = c.ID
			return nil
		})
	}

	p.AddStep("store_submission", func(ctx context.Context) error {
		sub := &entity.FormSubmission{
			ID:        uuid.New().String(),
			ContactID: out.ContactID,
			Platform:  input.Platform,
			Payload:   input.Payload,
			Status:    entity.FormSubmissionReceived,
			UTM:       record.UTM,
			CreatedAt: time.Now().UTC(),
		}
		if err := uc.Submissions.Create(ctx, sub); err != nil {
			return err
		}
		out.SubmissionID = sub.ID
		return nil
	})

	p.AddStep("log_event", func(ctx context.Context) error {
		props := map[string]any{
			"platform":      input.Platform,
			"submission_id": out.SubmissionID,
		}
		if len(record.UTM) > 0 {
			props["utm"] = record.UTM
		}
		if record.Consent != nil {
			props["consent"] = record.Consent.Granted
		}

		ev, err := uc.Events.Log(ctx, entity.EventInput{
			Name:       entity.EventNameLead,
			Type:       EventTypeLead,
			Canal:      input.Platform,
			Properties: props,
			Links:      entity.EventLinks{LeadID: out.ContactID, ContactID: out.ContactID},
			Source:     entity.EventSourceServer,
		})
		if err != nil {
			return err
		}
		out.EventID = ev.EventID
		return nil
	})

	if err := p.Execute(ctx); err != nil {
		log.WithError(err).Error("❌ erro ao processar lead")
		if IsDomainError(err) {
			return nil, err
		}
		return nil, &TechnicalError{Code: CodeBackend, Message: err.Error(), Err: err}
	}

	metrics.RecordLeadIngested(input.Platform)
	log.WithField("contact_id", out.ContactID).Info("✅ lead registrado")
	return out, nil
}

func contactFromRecord(platform string, r fieldmap.LeadRecord) *entity.Contact {
	return &entity.Contact{
		Email:       r.Email,
		Phone:       r.Phone,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Zipcode:     r.Zipcode,
		City:        r.City,
		Country:     r.Country,
		Source:      platform,
		Attribution: entity.NewAttribution(r.UTM),
	}
}
