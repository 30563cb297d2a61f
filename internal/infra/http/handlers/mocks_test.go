package handlers

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
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

// MockFormSubmissionRepository
type MockFormSubmissionRepository struct {
	mock.Mock
}

func (m *MockFormSubmissionRepository) Create(ctx context.Context, s *entity.FormSubmission) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockConsentRepository
type MockConsentRepository struct {
	mock.Mock
}

func (m *MockConsentRepository) Create(ctx context.Context, c *entity.Consent) error {
	args := m.Called(ctx, c)
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

// MockQueueProcessor
type MockQueueProcessor struct {
	mock.Mock
}

func (m *MockQueueProcessor) Execute(ctx context.Context) (*usecase.QueueRunResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.QueueRunResult), args.Error(1)
}

// MockEmailSenderUseCase
type MockEmailSenderUseCase struct {
	mock.Mock
}

func (m *MockEmailSenderUseCase) Execute(ctx context.Context, input usecase.SendEmailInput) (*usecase.SendEmailOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SendEmailOutput), args.Error(1)
}

// MockBrevoDiagnostics
type MockBrevoDiagnostics struct {
	mock.Mock
}

func (m *MockBrevoDiagnostics) Execute(ctx context.Context, apiKey, action string) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

// MockBrevoAPI
type MockBrevoAPI struct {
	mock.Mock
}

func (m *MockBrevoAPI) GetAccount(ctx context.Context, apiKey string) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBrevoAPI) ListContactLists(ctx context.Context, apiKey string, limit int) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey, limit)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBrevoAPI) ListSenders(ctx context.Context, apiKey string) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBrevoAPI) ListCampaigns(ctx context.Context, apiKey string, limit int) (json.RawMessage, error) {
	args := m.Called(ctx, apiKey, limit)
	return rawOrNil(args.Get(0)), args.Error(1)
}

func rawOrNil(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	return v.(json.RawMessage)
}
