package services_test

import (
	"context"
	"testing"

	"github.com/shareit/backend/internal/application/services"
	apperrors "github.com/shareit/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	a := newApp()
	ctx := context.Background()

	user, err := a.users.Create(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	got, err := a.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserService_Create_Validation(t *testing.T) {
	a := newApp()
	ctx := context.Background()

	tests := []struct {
		name  string
		uname string
		email string
	}{
		{name: "blank name", uname: "  ", email: "ann@example.com"},
		{name: "missing email", uname: "Ann", email: ""},
		{name: "malformed email", uname: "Ann", email: "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.users.Create(ctx, tt.uname, tt.email)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}

	users, err := a.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	a := newApp()
	ctx := context.Background()

	_, err := a.users.Create(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)

	_, err = a.users.Create(ctx, "Other Ann", "ann@example.com")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestUserService_Update_MergesFields(t *testing.T) {
	a := newApp()
	ctx := context.Background()

	user, err := a.users.Create(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)

	updated, err := a.users.Update(ctx, user.ID, services.UserUpdate{Name: strPtr("Anna")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "ann@example.com", updated.Email)

	updated, err = a.users.Update(ctx, user.ID, services.UserUpdate{Email: strPtr("anna@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "anna@example.com", updated.Email)
}

func TestUserService_Update_Errors(t *testing.T) {
	a := newApp()
	ctx := context.Background()

	user, err := a.users.Create(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)

	_, err = a.users.Update(ctx, user.ID, services.UserUpdate{Email: strPtr("broken")})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = a.users.Update(ctx, 999, services.UserUpdate{Name: strPtr("Ghost")})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserService_Delete(t *testing.T) {
	a := newApp()
	ctx := context.Background()

	user, err := a.users.Create(ctx, "Ann", "ann@example.com")
	require.NoError(t, err)

	require.NoError(t, a.users.Delete(ctx, user.ID))
	_, err = a.users.GetByID(ctx, user.ID)
	assert.True(t, apperrors.IsNotFound(err))

	assert.NoError(t, a.users.Delete(ctx, user.ID))
}
