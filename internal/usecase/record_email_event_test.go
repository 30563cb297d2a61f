package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func TestRecordOpenedEmailEvent(t *testing.T) {
	contacts := new(MockContactRepository)
	events := new(MockEventRepository)
	contacts.On("FindIDByEmail", mock.Anything, "a@b.com").Return("c-1", nil)
	events.On("Insert", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Type == "ouverture" && e.Canal == "email" && e.Name == "email_opened" &&
			e.Links.ContactID == "c-1" && e.Properties["subject"] == "Promo" && e.Properties["ts"] == "1700000000"
	})).Return(nil)

	uc := NewRecordEmailEventUseCase(NewContactResolver(contacts), NewEventLogger(events, nil, "none"))
	out, err := uc.Execute(context.Background(), RecordEmailEventInput{Payload: map[string]any{
		"event":   "opened",
		"email":   "A@B.com",
		"subject": "Promo",
		"ts":      float64(1700000000),
	}})

	require.NoError(t, err)
	assert.Equal(t, "ouverture", out.Type)
	assert.Equal(t, "c-1", out.ContactID)
	events.AssertNumberOfCalls(t, "Insert", 1)
	contacts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRecordEmailEventUnknownContactStillLogs(t *testing.T) {
	contacts := new(MockContactRepository)
	events := new(MockEventRepository)
	contacts.On("FindIDByEmail", mock.Anything, "ghost@b.com").Return("", nil)
	events.On("Insert", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Links.ContactID == "" && e.EventID == "brevo-<m1@relay>-hard_bounce-1700000001"
	})).Return(nil)

	uc := NewRecordEmailEventUseCase(NewContactResolver(contacts), NewEventLogger(events, nil, "none"))
	out, err := uc.Execute(context.Background(), RecordEmailEventInput{Payload: map[string]any{
		"event":      "hard_bounce",
		"email":      "ghost@b.com",
		"message-id": "<m1@relay>",
		"ts_event":   float64(1700000001),
	}})

	require.NoError(t, err)
	assert.Equal(t, "rebond", out.Type)
	assert.Empty(t, out.ContactID)
}

func TestRecordEmailEventWithoutEmailSkipsLookup(t *testing.T) {
	contacts := new(MockContactRepository)
	events := new(MockEventRepository)
	events.On("Insert", mock.Anything, mock.Anything).Return(nil)

	uc := NewRecordEmailEventUseCase(NewContactResolver(contacts), NewEventLogger(events, nil, "none"))
	_, err := uc.Execute(context.Background(), RecordEmailEventInput{Payload: map[string]any{"event": "deferred"}})

	require.NoError(t, err)
	contacts.AssertNotCalled(t, "FindIDByEmail", mock.Anything, mock.Anything)
}

func TestRecordEmailEventLookupFailureAborts(t *testing.T) {
	contacts := new(MockContactRepository)
	events := new(MockEventRepository)
	contacts.On("FindIDByEmail", mock.Anything, "a@b.com").Return("", errors.New("db down"))

	uc := NewRecordEmailEventUseCase(NewContactResolver(contacts), NewEventLogger(events, nil, "none"))
	_, err := uc.Execute(context.Background(), RecordEmailEventInput{Payload: map[string]any{"event": "click", "email": "a@b.com"}})

	assert.True(t, IsTechnicalError(err))
	events.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRecordEmailEventRequiresEvent(t *testing.T) {
	uc := NewRecordEmailEventUseCase(NewContactResolver(new(MockContactRepository)), NewEventLogger(new(MockEventRepository), nil, "none"))

	_, err := uc.Execute(context.Background(), RecordEmailEventInput{Payload: map[string]any{"email": "a@b.com"}})
	assert.True(t, IsDomainError(err))
}

func TestEmailEventType(t *testing.T) {
	cases := map[string]string{
		"delivered":     "livraison",
		"unique_opened": "ouverture",
		"click":         "clic",
		"soft_bounce":   "rebond",
		"unsubscribed":  "desinscription",
		"spam":          "plainte",
		"invalid_email": "bloque",
		"deferred":      "differe",
		"request":       "request",
	}
	for in, want := range cases {
		assert.Equal(t, want, EmailEventType(in), in)
	}
}
