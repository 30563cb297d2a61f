package usecase

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TrackEventUseCase struct {
	Events *EventLogger
}

func NewTrackEventUseCase(events *EventLogger) *TrackEventUseCase {
	return &TrackEventUseCase{Events: events}
}

func (uc *TrackEventUseCase) Execute(ctx context.Context, input TrackEventInput) (*TrackEventOutput, error) {
	if input.UserID == "" {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "authenticated user is required"}
	}

	name, err := SanitizeEventName(input.EventName)
	if err != nil {
		return nil, err
	}

	ev, err := uc.Events.Log(ctx, entity.EventInput{
		Name:       name,
		EventID:    input.EventID,
		Properties: SanitizeProperties(input.Properties),
		Links: entity.EventLinks{
			LeadID:     input.LeadID,
			ContactID:  input.ContactID,
			CampaignID: input.CampaignID,
			PageID:     input.PageID,
			ContractID: input.ContractID,
			ProjectID:  input.ProjectID,
			UserID:     input.UserID,
		},
		Source: entity.EventSourceClient,
	})
	if err != nil {
		if IsDomainError(err) {
			return nil, err
		}
		return nil, &TechnicalError{Code: CodeBackend, Message: err.Error(), Err: err}
	}

	return &TrackEventOutput{EventID: ev.EventID}, nil
}
