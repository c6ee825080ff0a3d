package errcodes

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesWrappedErrors(t *testing.T) {
	t.Parallel()

	err := errors.WithStack(NotFound("Author"))
	assert.True(t, errors.Is(err, NotFound("Author")))
	assert.False(t, errors.Is(err, NotFound("Book")))
}

func TestError_AsExtractsCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err      error
		httpCode int
		code     string
		message  string
	}{
		{Unauthorized("Authentication required"), http.StatusUnauthorized, "unauthorized", "Authentication required"},
		{Forbidden("Renewing a loan"), http.StatusForbidden, "forbidden", "Renewing a loan is not allowed."},
		{NotFound("Book instance"), http.StatusNotFound, "not_found", "Book instance not found."},
		{Conflict("Author has books."), http.StatusConflict, "conflict", "Author has books."},
		{ValidationError("bad"), http.StatusUnprocessableEntity, "validation_error", "bad"},
	}

	for _, tt := range cases {
		var e *Error
		require.ErrorAs(t, errors.Wrap(tt.err, "context"), &e)
		assert.Equal(t, tt.httpCode, e.HTTPCode)
		assert.Equal(t, tt.code, e.Code)
		assert.Equal(t, tt.message, e.Message)
	}
}
