package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			"custom error",
			errors.WithStack(Forbidden("Deleting an author")),
			http.StatusForbidden,
			`{"error":{"code":"forbidden","message":"Deleting an author is not allowed.","status_code":403}}`,
		},
		{
			"echo error",
			echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			http.StatusMethodNotAllowed,
			`{"error":{"code":"method_not_allowed","message":"Method Not Allowed","status_code":405}}`,
		},
		{
			"generic error",
			errors.New("disk on fire"),
			http.StatusInternalServerError,
			`{"error":{"code":"internal_server_error","message":"Internal Server Error","status_code":500}}`,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()
			c := e.NewContext(req, rr)

			NewHandler().Handle(tt.err, c)

			assert.Equal(t, tt.code, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}
