package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddlewareContext(t *testing.T, token string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/loanlist/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestMiddlewareAuthenticate(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	authService := NewService(db, "test-secret")
	middleware := NewMiddleware(authService)
	ctx := context.Background()

	member := testutils.CreateUser(ctx, t, db, "member", models.RoleMember, "password123")
	token, err := authService.GenerateToken(member)
	require.NoError(t, err)

	t.Run("rejects requests without a cookie", func(tt *testing.T) {
		c := newMiddlewareContext(tt, "")
		nextCalled := false
		err := middleware.Authenticate(func(_ echo.Context) error {
			nextCalled = true
			return nil
		})(c)
		assert.ErrorIs(tt, err, errcodes.Unauthorized("Authentication required"))
		assert.False(tt, nextCalled)
	})

	t.Run("rejects forged tokens", func(tt *testing.T) {
		forged, err := NewService(db, "not-the-secret").GenerateToken(member)
		require.NoError(tt, err)

		c := newMiddlewareContext(tt, forged)
		err = middleware.Authenticate(func(_ echo.Context) error { return nil })(c)
		assert.ErrorIs(tt, err, errcodes.Unauthorized("Authentication required"))
	})

	t.Run("stores the user on the context", func(tt *testing.T) {
		c := newMiddlewareContext(tt, token)
		err := middleware.Authenticate(func(c echo.Context) error {
			user, ok := GetUserFromContext(c)
			require.True(tt, ok)
			assert.Equal(tt, member.ID, user.ID)
			return nil
		})(c)
		require.NoError(tt, err)
	})
}

func TestMiddlewareAuthenticateOptional(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	middleware := NewMiddleware(NewService(db, "test-secret"))

	c := newMiddlewareContext(t, "garbage")
	nextCalled := false
	err := middleware.AuthenticateOptional(func(c echo.Context) error {
		nextCalled = true
		_, ok := GetUserFromContext(c)
		assert.False(t, ok)
		return nil
	})(c)
	require.NoError(t, err)
	assert.True(t, nextCalled)
}

func TestMiddlewareRequirePermission(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	middleware := NewMiddleware(NewService(db, "test-secret"))
	ctx := context.Background()

	member := testutils.CreateUser(ctx, t, db, "member", models.RoleMember, "password123")
	librarian := testutils.CreateUser(ctx, t, db, "librarian", models.RoleLibrarian, "password123")
	guard := middleware.RequirePermission(models.PermissionCanMarkReturned)

	t.Run("anonymous users are unauthorized", func(tt *testing.T) {
		c := newMiddlewareContext(tt, "")
		err := guard(func(_ echo.Context) error { return nil })(c)
		var codeErr *errcodes.Error
		require.ErrorAs(tt, err, &codeErr)
		assert.Equal(tt, http.StatusUnauthorized, codeErr.HTTPCode)
	})

	t.Run("members are forbidden", func(tt *testing.T) {
		c := newMiddlewareContext(tt, "")
		c.Set("user", member)
		nextCalled := false
		err := guard(func(_ echo.Context) error {
			nextCalled = true
			return nil
		})(c)
		var codeErr *errcodes.Error
		require.ErrorAs(tt, err, &codeErr)
		assert.Equal(tt, http.StatusForbidden, codeErr.HTTPCode)
		assert.False(tt, nextCalled)
	})

	t.Run("librarians pass", func(tt *testing.T) {
		c := newMiddlewareContext(tt, "")
		c.Set("user", librarian)
		nextCalled := false
		err := guard(func(_ echo.Context) error {
			nextCalled = true
			return nil
		})(c)
		require.NoError(tt, err)
		assert.True(tt, nextCalled)
	})
}
