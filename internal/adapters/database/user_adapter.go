package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/shareit/backend/internal/domain/entities"
	"github.com/shareit/backend/internal/domain/repositories"
	"github.com/shareit/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/shareit/backend/pkg/errors"
)

const usersTable = "users"

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	db *sqlx.DB
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{db: client.DB()}
}

// Create inserts a user and fills its generated ID
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	query, args, err := dialect.Insert(usersTable).
		Rows(goqu.Record{
			"name":  user.Name,
			"email": user.Email,
		}).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	if err := sqlx.GetContext(ctx, executor(ctx, a.db), &user.ID, query, args...); err != nil {
		return translateError(err, "user")
	}
	return nil
}

// Update overwrites name and email
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	query, args, err := dialect.Update(usersTable).
		Set(goqu.Record{
			"name":  user.Name,
			"email": user.Email,
		}).
		Where(goqu.C("id").Eq(user.ID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	result, err := executor(ctx, a.db).ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, "user")
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", user.ID))
	}
	return nil
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query, args, err := dialect.From(usersTable).
		Select("id", "name", "email").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	user := &entities.User{}
	if err := sqlx.GetContext(ctx, executor(ctx, a.db), user, query, args...); err != nil {
		return nil, translateError(err, fmt.Sprintf("user with id %d", id))
	}
	return user, nil
}

// List retrieves all users ordered by ID
func (a *UserAdapter) List(ctx context.Context) ([]*entities.User, error) {
	query, args, err := dialect.From(usersTable).
		Select("id", "name", "email").
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, buildError(err)
	}

	users := []*entities.User{}
	if err := sqlx.SelectContext(ctx, executor(ctx, a.db), &users, query, args...); err != nil {
		return nil, translateError(err, "users")
	}
	return users, nil
}

// Delete removes a user. Owned items, requests, bookings and comments go with it.
func (a *UserAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := dialect.Delete(usersTable).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return buildError(err)
	}

	if _, err := executor(ctx, a.db).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "user")
	}
	return nil
}
