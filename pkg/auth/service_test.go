package auth

import (
	"context"
	"testing"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAuthenticate(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	testutils.CreateUser(ctx, t, db, "marian", models.RoleLibrarian, "password123")

	user, err := svc.Authenticate(ctx, "Marian", "password123")
	require.NoError(t, err)
	assert.Equal(t, "marian", user.Username)
	assert.True(t, user.HasPermission(models.PermissionCanMarkReturned))

	_, err = svc.Authenticate(ctx, "marian", "wrong-password")
	assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid username or password"))

	_, err = svc.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, errcodes.Unauthorized("Invalid username or password"))
}

func TestServiceTokenRoundTrip(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db, "test-secret")

	token, err := svc.GenerateToken(&models.User{ID: 7, Username: "reader"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "reader", claims.Username)

	other := NewService(db, "other-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestServiceCreateFirstLibrarian_OnlyOnce(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	svc := NewService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.CreateFirstLibrarian(ctx, "head-librarian", "password123")
	require.NoError(t, err)
	assert.True(t, user.HasPermission(models.PermissionCanMarkReturned))
	assert.True(t, CheckPassword("password123", user.PasswordHash))

	_, err = svc.CreateFirstLibrarian(ctx, "second", "password123")
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "forbidden", codeErr.Code)
}
