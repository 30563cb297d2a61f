package usecase

import (
	"errors"
	"fmt"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeBackend      = "BACKEND_ERROR"
	CodeProvider     = "PROVIDER_ERROR"
)

// DomainError: entrada inválida ou recusada antes de qualquer escrita.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError: backend ou provedor falhou. A mensagem vai para o cliente.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func NewBackendError(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeBackend, Message: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// StepError diz em qual passo do pipeline a requisição parou.
// Passos anteriores já gravaram e não são desfeitos.
type StepError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("passo '%s' falhou: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
