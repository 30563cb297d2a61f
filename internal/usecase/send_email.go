package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/metrics"
)

type SendEmailUseCase struct {
	Sender  EmailSender
	Default mail.Config
}

func NewSendEmailUseCase(sender EmailSender, defaultCfg mail.Config) *SendEmailUseCase {
	return &SendEmailUseCase{Sender: sender, Default: defaultCfg}
}

func (uc *SendEmailUseCase) Execute(ctx context.Context, input SendEmailInput) (*SendEmailOutput, error) {
	if err := validationFailure(ValidateSendEmailInput(input)); err != nil {
		return nil, err
	}

	override, err := mail.ParseConfig(input.Config)
	if err != nil {
		return nil, NewValidationError("config: %v", err)
	}
	cfg := uc.Default.Merge(override)

	res, err := uc.Sender.Send(ctx, cfg, mail.Message{
		To:      input.To,
		Subject: input.Subject,
		HTML:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		if isMessageError(err) {
			return nil, NewValidationError("%v", err)
		}
		metrics.RecordIntegrationError(string(cfg.Provider))
		logger.WithFields(map[string]interface{}{
			"to":       input.To,
			"provider": cfg.Provider,
		}).WithError(err).Error("❌ erro ao enviar email")
		return nil, &TechnicalError{Code: CodeProvider, Message: err.Error(), Err: err}
	}

	return &SendEmailOutput{MessageID: res.MessageID, Response: res.Response}, nil
}

func isMessageError(err error) bool {
	return errors.Is(err, mail.ErrMissingRecipient) ||
		errors.Is(err, mail.ErrMissingSubject) ||
		errors.Is(err, mail.ErrMissingBody) ||
		errors.Is(err, mail.ErrMissingSender)
}
