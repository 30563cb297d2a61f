package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MaxEventNameLength     = 100
	MaxPropertyKeyLength   = 50
	MaxPropertyValueLength = 1000
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// validationFailure junta os ValidationError num único DomainError (400).
func validationFailure(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return NewValidationError("%s", strings.Join(parts, "; "))
}

// SanitizeEventName exige string não vazia com menos de 100 caracteres.
func SanitizeEventName(raw any) (string, error) {
	name, ok := raw.(string)
	if !ok {
		return "", NewValidationError("event_name must be a string")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("event_name is required")
	}
	if utf8.RuneCountInString(name) >= MaxEventNameLength {
		return "", NewValidationError("event_name must be shorter than %d characters", MaxEventNameLength)
	}
	return name, nil
}

// SanitizeProperties descarta chaves longas e trunca strings longas.
// Mapas aninhados passam pela mesma regra.
func SanitizeProperties(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		if utf8.RuneCountInString(k) > MaxPropertyKeyLength {
			continue
		}
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return truncateRunes(val, MaxPropertyValueLength)
	case map[string]any:
		return SanitizeProperties(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = sanitizeValue(item)
		}
		return items
	default:
		return v
	}
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func ValidateSendEmailInput(input SendEmailInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.To) == "" {
		errors = append(errors, ValidationError{"to", "is required"})
	} else if _, err := mail.ParseAddress(input.To); err != nil {
		errors = append(errors, ValidationError{"to", "is invalid"})
	}

	if strings.TrimSpace(input.Subject) == "" {
		errors = append(errors, ValidationError{"subject", "is required"})
	}

	if input.HTML == "" && input.Text == "" {
		errors = append(errors, ValidationError{"html", "html or text is required"})
	}

	return errors
}
