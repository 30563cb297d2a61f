package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	codeUniqueViolation   = "23505"
	codeNotNullViolation  = "23502"
	codeUndefinedFunction = "42883"
)

var (
	ErrQueueFunctionMissing = errors.New("funções da fila não instaladas (rode migrations/001_init.sql)")
	ErrEmailRequired        = errors.New("email é obrigatório para gravar contato")
)

// pgCode devolve o SQLSTATE qualquer que seja o driver (pgx ou lib/pq).
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}
