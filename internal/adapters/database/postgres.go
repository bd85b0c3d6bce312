package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	apperrors "github.com/shareit/backend/pkg/errors"
)

// dialect renders queries only; they run on the executor of the context.
var dialect = goqu.Dialect("postgres")

// integrityViolation is the PostgreSQL error class for constraint violations
const integrityViolation = "23"

type txKey struct{}

type afterCommitKey struct{}

// executor returns the ambient transaction if there is one, else the pool
func executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// inTransaction reports whether ctx carries an open transaction
func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	return ok
}

// afterCommit defers fn until the ambient transaction commits. Outside a
// transaction fn runs immediately; on rollback it never runs.
func afterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(afterCommitKey{}).(*[]func()); ok {
		*hooks = append(*hooks, fn)
		return
	}
	fn()
}

// translateError maps driver errors onto application error kinds
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s not found", entity))
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == integrityViolation {
		return apperrors.NewConflictError(fmt.Sprintf("%s hasn't been saved", entity), err)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewInternalError(fmt.Sprintf("failed to access %s", entity), err)
}

// buildError wraps a goqu rendering failure
func buildError(err error) error {
	return apperrors.NewInternalError("failed to build query", err)
}
