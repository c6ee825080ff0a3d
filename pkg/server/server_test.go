package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/auth"
	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type testServer struct {
	e  *echo.Echo
	db *bun.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutils.NewDB(t)
	e, err := newEcho(config.NewForTest(), db)
	require.NoError(t, err)
	return &testServer{e, db}
}

func (ts *testServer) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	ts.e.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(t *testing.T, username, roleName string) *http.Cookie {
	t.Helper()

	testutils.CreateUser(context.Background(), t, ts.db, username, roleName, "password123")
	rr := ts.do(http.MethodPost, "/auth/login", url.Values{
		"username": {username},
		"password": {"password123"},
	}, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}
	require.FailNow(t, "session cookie not set")
	return nil
}

func (ts *testServer) countAuthors(t *testing.T) int {
	t.Helper()

	count, err := ts.db.NewSelect().Model((*models.Author)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestServer_PublicCatalog(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/books/", "/authors/", "/search/?q=kin"} {
		rr := ts.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}

	rr := ts.do(http.MethodGet, "/no/such/page", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_LibrarianViewsRequirePermission(t *testing.T) {
	ts := newTestServer(t)
	member := ts.login(t, "reader", models.RoleMember)
	librarian := ts.login(t, "marian", models.RoleLibrarian)

	paths := []string{"/loanlist/", "/author/create/", "/book/create/", "/genres/", "/instances/", "/users/", "/roles/"}
	for _, path := range paths {
		assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, path, nil, nil).Code, path)
		assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, path, nil, member).Code, path)
		assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, path, nil, librarian).Code, path)
	}

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/mybooks/", nil, nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/mybooks/", nil, member).Code)
}

func TestServer_RejectedWritesDoNotMutate(t *testing.T) {
	ts := newTestServer(t)
	member := ts.login(t, "reader", models.RoleMember)

	form := url.Values{"first_name": {"Octavia"}, "last_name": {"Butler"}}
	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/author/create/", form, nil).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/author/create/", form, member).Code)
	assert.Equal(t, 0, ts.countAuthors(t))
}

func TestServer_AuthorLifecycle(t *testing.T) {
	ts := newTestServer(t)
	librarian := ts.login(t, "marian", models.RoleLibrarian)

	rr := ts.do(http.MethodPost, "/author/create/", url.Values{
		"first_name":    {"Octavia"},
		"last_name":     {"Butler"},
		"date_of_birth": {"1947-06-22"},
	}, librarian)
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	location := rr.Header().Get(echo.HeaderLocation)
	assert.True(t, strings.HasPrefix(location, "/authors/"), location)
	assert.Equal(t, 1, ts.countAuthors(t))

	author := &models.Author{}
	require.NoError(t, ts.db.NewSelect().Model(author).Limit(1).Scan(context.Background()))
	testutils.CreateBook(context.Background(), t, ts.db, "Kindred", author)

	deletePath := fmt.Sprintf("/author/%d/delete/", author.ID)
	rr = ts.do(http.MethodPost, deletePath, nil, librarian)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 1, ts.countAuthors(t))
}

func TestServer_RenewLoan(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	librarian := ts.login(t, "marian", models.RoleLibrarian)
	member := ts.login(t, "reader", models.RoleMember)

	reader := &models.User{}
	require.NoError(t, ts.db.NewSelect().Model(reader).Where("u.username = ?", "reader").Scan(ctx))

	today := models.DateOf(time.Now())
	book := testutils.CreateBook(ctx, t, ts.db, "Kindred", nil)
	instance := testutils.CreateInstance(ctx, t, ts.db, book, testutils.InstanceOptions{
		Status:   models.InstanceStatusOnLoan,
		DueBack:  testutils.DatePtr(today),
		Borrower: reader,
	})

	path := "/book/" + instance.ID.String() + "/renew/"
	renewTo := today.AddDays(7).String()
	form := url.Values{"renewal_date": {renewTo}}

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, path, form, member).Code)

	rr := ts.do(http.MethodPost, path, form, librarian)
	require.Equal(t, http.StatusSeeOther, rr.Code, rr.Body.String())
	assert.Equal(t, "/loanlist/", rr.Header().Get(echo.HeaderLocation))

	reloaded := &models.BookInstance{}
	require.NoError(t, ts.db.NewSelect().Model(reloaded).Where("bi.id = ?", instance.ID).Scan(ctx))
	assert.Equal(t, renewTo, reloaded.DueBack.String())
	assert.Equal(t, models.InstanceStatusOnLoan, reloaded.Status)
}
