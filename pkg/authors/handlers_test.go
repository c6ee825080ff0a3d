package authors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthorsTestContext(t *testing.T, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func TestHandlerCreateForm_InitialValues(t *testing.T) {
	t.Parallel()

	h := &handler{authorService: NewService(testutils.NewDB(t))}

	c, rr := newAuthorsTestContext(t, http.MethodGet, "/author/create/", nil)
	require.NoError(t, h.createForm(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"form":{"first_name":"","last_name":"","date_of_birth":"","date_of_death":"2018-05-01"}}`, rr.Body.String())
}

func TestHandlerCreate_RedirectsToDetail(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{authorService: NewService(db)}
	ctx := context.Background()

	form := url.Values{
		"first_name":    {"Octavia"},
		"last_name":     {"Butler"},
		"date_of_birth": {"1947-06-22"},
		"date_of_death": {""},
	}
	c, rr := newAuthorsTestContext(t, http.MethodPost, "/author/create/", form)
	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	authors, err := h.authorService.ListAuthors(ctx, ListAuthorsOptions{})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, DetailURL(authors[0].ID), rr.Header().Get(echo.HeaderLocation))
	require.NotNil(t, authors[0].DateOfBirth)
	assert.Equal(t, models.NewDate(1947, 6, 22), *authors[0].DateOfBirth)
	assert.Nil(t, authors[0].DateOfDeath)
}

func TestHandlerCreate_InvalidDate(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{authorService: NewService(db)}

	form := url.Values{
		"first_name":    {"Octavia"},
		"last_name":     {"Butler"},
		"date_of_birth": {"1947-02-30"},
	}
	c, _ := newAuthorsTestContext(t, http.MethodPost, "/author/create/", form)
	err := h.create(c)
	assert.ErrorIs(t, err, errcodes.ValidationError(`"date_of_birth" should be a valid date`))

	count, err := h.authorService.CountAuthors(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHandlerUpdate_ReplacesFields(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{authorService: NewService(db)}
	ctx := context.Background()

	author := testutils.CreateAuthor(ctx, t, db, "Mary", "Shelly")
	id := strconv.Itoa(author.ID)

	c, rr := newAuthorsTestContext(t, http.MethodGet, "/author/"+id+"/update/", nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.updateForm(c))
	assert.Contains(t, rr.Body.String(), `"last_name":"Shelly"`)

	form := url.Values{
		"first_name":    {"Mary"},
		"last_name":     {"Shelley"},
		"date_of_death": {"1851-02-01"},
	}
	c, rr = newAuthorsTestContext(t, http.MethodPost, "/author/"+id+"/update/", form)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.update(c))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/authors/"+id, rr.Header().Get(echo.HeaderLocation))

	reloaded, err := h.authorService.RetrieveAuthor(ctx, RetrieveAuthorOptions{ID: &author.ID})
	require.NoError(t, err)
	assert.Equal(t, "Shelley", reloaded.LastName)
	require.NotNil(t, reloaded.DateOfDeath)
	assert.Equal(t, "1851-02-01", reloaded.DateOfDeath.String())
}

func TestHandlerDelete_RedirectsToList(t *testing.T) {
	t.Parallel()

	db := testutils.NewDB(t)
	h := &handler{authorService: NewService(db)}
	ctx := context.Background()

	author := testutils.CreateAuthor(ctx, t, db, "Anon", "Ymous")
	id := strconv.Itoa(author.ID)

	c, rr := newAuthorsTestContext(t, http.MethodPost, "/author/"+id+"/delete/", nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.deleteAuthor(c))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, ListURL, rr.Header().Get(echo.HeaderLocation))

	c, _ = newAuthorsTestContext(t, http.MethodGet, "/authors/"+id, nil)
	c.SetParamNames("id")
	c.SetParamValues(id)
	assert.ErrorIs(t, h.retrieve(c), errcodes.NotFound("Author"))
}
