// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с PostgreSQL и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"

	serr "github.com/DiegoMiguel/design-webapi/internal/shared/errors"
)

// коды ошибок PostgreSQL, которые маппим на доменные
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// base — общее для всех репозиториев: соединение и таймаут на запрос.
type base struct {
	db      *sql.DB
	timeout time.Duration
}

// withTimeout ограничивает запрос db.query_timeout, если он задан.
func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

// Ping проверяет доступность базы, используется health-check'ом.
func (b base) Ping(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", serr.ErrInternal, err)
	}
	return nil
}

// mapError приводит ошибку драйвера к доменной.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return serr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return serr.ErrAlreadyExists
		case pgForeignKeyViolation:
			return serr.ErrOwnerNotFound
		}
	}
	return fmt.Errorf("%w: %v", serr.ErrInternal, err)
}

// rowScanner — общее у *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
