package usecase

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
)

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Upsert(ctx context.Context, c *entity.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockConsentRepository
type MockConsentRepository struct {
	mock.Mock
}

func (m *MockConsentRepository) Create(ctx context.Context, c *entity.Consent) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockFormSubmissionRepository
type MockFormSubmissionRepository struct {
	mock.Mock
}

func (m *MockFormSubmissionRepository) Create(ctx context.Context, s *entity.FormSubmission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockEventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, e *entity.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, msg entity.EventMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockEmailQueueRepository
type MockEmailQueueRepository struct {
	mock.Mock
}

func (m *MockEmailQueueRepository) ClaimBatch(ctx context.Context, size int) ([]*entity.EmailQueueItem, error) {
	args := m.Called(ctx, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.EmailQueueItem), args.Error(1)
}

func (m *MockEmailQueueRepository) MarkSent(ctx context.Context, queueID, messageID string, response json.RawMessage) error {
	args := m.Called(ctx, queueID, messageID, response)
	return args.Error(0)
}

func (m *MockEmailQueueRepository) MarkFailed(ctx context.Context, queueID, errorDetail string) error {
	args := m.Called(ctx, queueID, errorDetail)
	return args.Error(0)
}

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, cfg mail.Config, msg mail.Message) (*mail.Result, error) {
	args := m.Called(ctx, cfg, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.Result), args.Error(1)
}

// MockBrevoDiagnosticsAPI
type MockBrevoDiagnosticsAPI struct {
	mock.Mock
}

func (m *MockBrevoDiagnosticsAPI) GetAccount(ctx context.Context, apiKey string) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBrevoDiagnosticsAPI) ListContactLists(ctx context.Context, apiKey string, limit int) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey, limit)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBrevoDiagnosticsAPI) ListSenders(ctx context.Context, apiKey string) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBrevoDiagnosticsAPI) ListCampaigns(ctx context.Context, apiKey string, limit int) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey, limit)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func rawOrNil(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	return v.(json.RawMessage)
}
