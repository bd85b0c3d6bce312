package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
	"github.com/shareit/backend/internal/infrastructure/observability"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// Transactor implements repositories.Transactor on a PostgreSQL pool
type Transactor struct {
	db *sqlx.DB
}

// NewTransactor creates a new transaction manager
func NewTransactor(client *postgres.Client) repositories.Transactor {
	return &Transactor{db: client.DB()}
}

// WithinTransaction runs fn in a transaction, committing when fn returns nil.
// A call nested inside another transaction joins the outer one. Hooks
// registered with afterCommit run once the commit succeeds.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	hooks := new([]func())
	txCtx := context.WithValue(context.WithValue(ctx, txKey{}, tx), afterCommitKey{}, hooks)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			observability.LoggerFromContext(ctx).Error().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", fmt.Errorf("commit: %w", err))
	}

	for _, hook := range *hooks {
		hook()
	}
	return nil
}
