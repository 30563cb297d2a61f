package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx"
	_ "github.com/lib/pq"              // driver "postgres"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

// NewDBConnection abre o pool único do processo e testa o Ping.
// O *sql.DB é injetado em todos os repositórios, nunca global.
func NewDBConnection(driver, connString string) (*sql.DB, error) {
	switch driver {
	case "":
		driver = DriverPgx
	case DriverPgx, DriverPostgres:
	default:
		return nil, fmt.Errorf("driver de banco desconhecido: %q", driver)
	}
	if connString == "" {
		return nil, fmt.Errorf("DATABASE_URL não configurada")
	}

	db, err := sql.Open(driver, connString)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("banco não respondeu ao ping: %w", err)
	}

	return db, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
