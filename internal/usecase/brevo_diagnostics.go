package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

const (
	BrevoActionAccount   = "account"
	BrevoActionLists     = "lists"
	BrevoActionSenders   = "senders"
	BrevoActionCampaigns = "campaigns"

	brevoDiagnosticsLimit = 10
)

type BrevoDiagnosticsUseCase struct {
	API BrevoDiagnosticsAPI
}

func NewBrevoDiagnosticsUseCase(api BrevoDiagnosticsAPI) *BrevoDiagnosticsUseCase {
	return &BrevoDiagnosticsUseCase{API: api}
}

// Execute repassa a resposta da Brevo sem reinterpretar. A api_key é
// obrigatória: a chave do servidor nunca é usada aqui.
func (uc *BrevoDiagnosticsUseCase) Execute(ctx context.Context, apiKey, action string) (json.RawMessage, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, NewValidationError("api_key is required")
	}

	var (
		out json.RawMessage
		err error
	)

	switch action {
	case BrevoActionAccount:
		out, err = uc.API.GetAccount(ctx, apiKey)
	case BrevoActionLists:
		out, err = uc.API.ListContactLists(ctx, apiKey, brevoDiagnosticsLimit)
	case BrevoActionSenders:
		out, err = uc.API.ListSenders(ctx, apiKey)
	case BrevoActionCampaigns:
		out, err = uc.API.ListCampaigns(ctx, apiKey, brevoDiagnosticsLimit)
	case "":
		return nil, NewValidationError("action is required")
	default:
		return nil, NewValidationError("unknown action %q", action)
	}

	if err != nil {
		metrics.RecordIntegrationError(PlatformBrevo)
		return nil, &TechnicalError{Code: CodeProvider, Message: err.Error(), Err: err}
	}
	return out, nil
}
