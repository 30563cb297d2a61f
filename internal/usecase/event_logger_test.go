package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var eventIDPattern = regexp.MustCompile(`^\d{13}-[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestEventLoggerGeneratesEventID(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*entity.Event")).Return(nil)

	l := NewEventLogger(repo, nil, "none")
	ev1, err := l.Log(context.Background(), entity.EventInput{Name: "page_view"})
	require.NoError(t, err)
	ev2, err := l.Log(context.Background(), entity.EventInput{Name: "page_view"})
	require.NoError(t, err)

	assert.Regexp(t, eventIDPattern, ev1.EventID)
	assert.NotEqual(t, ev1.EventID, ev2.EventID)
	assert.Equal(t, entity.EventSourceServer, ev1.Source)
	assert.NotNil(t, ev1.Properties)
}

func TestEventLoggerDoesNotDeduplicateExplicitIDs(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *entity.Event) bool {
		return e.EventID == "evt-1"
	})).Return(nil)

	l := NewEventLogger(repo, nil, "none")
	for i := 0; i < 2; i++ {
		ev, err := l.Log(context.Background(), entity.EventInput{Name: "click", EventID: "evt-1"})
		require.NoError(t, err)
		assert.Equal(t, "evt-1", ev.EventID)
	}

	repo.AssertNumberOfCalls(t, "Insert", 2)
}

func TestEventLoggerRequiresName(t *testing.T) {
	repo := new(MockEventRepository)

	_, err := NewEventLogger(repo, nil, "none").Log(context.Background(), entity.EventInput{Name: "  "})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestEventLoggerPublishFailureIsNotFatal(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)
	pub := new(MockEventPublisher)
	pub.On("PublishEvent", mock.Anything, mock.MatchedBy(func(m entity.EventMessage) bool {
		return m.Name == "Lead" && m.ContactID == "c1"
	})).Return(errors.New("channel closed"))

	ev, err := NewEventLogger(repo, pub, "rabbitmq").Log(context.Background(), entity.EventInput{
		Name:  "Lead",
		Links: entity.EventLinks{LeadID: "c1"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, ev.EventID)
	pub.AssertExpectations(t)
}

func TestEventLoggerInsertFailure(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	pub := new(MockEventPublisher)

	_, err := NewEventLogger(repo, pub, "kafka").Log(context.Background(), entity.EventInput{Name: "x"})

	assert.ErrorContains(t, err, "connection reset")
	pub.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}
