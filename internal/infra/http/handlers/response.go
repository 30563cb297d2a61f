package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const defaultMaxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON limita o corpo e recusa JSON inválido.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBody int64, dst any) error {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return usecase.NewValidationError("body exceeds %d bytes", maxErr.Limit)
		}
		return usecase.NewValidationError("invalid JSON: %v", err)
	}
	return nil
}

// statusFor traduz a taxonomia de erros para HTTP.
func statusFor(err error) int {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case usecase.CodeUnauthorized:
			return http.StatusUnauthorized
		case usecase.CodeRateLimited:
			return http.StatusTooManyRequests
		default:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

var errRateLimited = &usecase.DomainError{Code: usecase.CodeRateLimited, Message: "Too many requests. Please try again later."}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
