package authors

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type handler struct {
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx, ListAuthorsOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"authors": authors,
		"total":   len(authors),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	author, err := h.retrieveFromParam(c, true)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug("author retrieved", logger.Data{"author_id": author.ID, "books": len(author.Books)})

	return errors.WithStack(c.JSON(http.StatusOK, author))
}

func (h *handler) createForm(c echo.Context) error {
	form := AuthorForm{DateOfDeath: initialDateOfDeath}
	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"form": form}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := AuthorForm{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	author := &models.Author{}
	if err := applyForm(author, params); err != nil {
		return err
	}

	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("author created", logger.Data{"author_id": author.ID})

	return c.Redirect(http.StatusSeeOther, DetailURL(author.ID))
}

func (h *handler) updateForm(c echo.Context) error {
	author, err := h.retrieveFromParam(c, false)
	if err != nil {
		return err
	}

	response := map[string]any{
		"form":   formFromAuthor(author),
		"author": author,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	author, err := h.retrieveFromParam(c, false)
	if err != nil {
		return err
	}

	params := AuthorForm{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := applyForm(author, params); err != nil {
		return err
	}

	err = h.authorService.UpdateAuthor(ctx, author, UpdateAuthorOptions{
		Columns: []string{"first_name", "last_name", "date_of_birth", "date_of_death"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("author updated", logger.Data{"author_id": author.ID})

	return c.Redirect(http.StatusSeeOther, DetailURL(author.ID))
}

func (h *handler) deleteForm(c echo.Context) error {
	author, err := h.retrieveFromParam(c, true)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"author": author}))
}

func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()

	author, err := h.retrieveFromParam(c, false)
	if err != nil {
		return err
	}

	if err := h.authorService.DeleteAuthor(ctx, author.ID); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("author deleted", logger.Data{"author_id": author.ID})

	return c.Redirect(http.StatusSeeOther, ListURL)
}

func (h *handler) retrieveFromParam(c echo.Context, withBooks bool) (*models.Author, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errcodes.NotFound("Author")
	}

	author, err := h.authorService.RetrieveAuthor(c.Request().Context(), RetrieveAuthorOptions{
		ID:        &id,
		WithBooks: withBooks,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return author, nil
}

func applyForm(author *models.Author, form AuthorForm) error {
	dateOfBirth, err := parseOptionalDate("date_of_birth", form.DateOfBirth)
	if err != nil {
		return err
	}
	dateOfDeath, err := parseOptionalDate("date_of_death", form.DateOfDeath)
	if err != nil {
		return err
	}

	author.FirstName = form.FirstName
	author.LastName = form.LastName
	author.DateOfBirth = dateOfBirth
	author.DateOfDeath = dateOfDeath
	return nil
}

func formFromAuthor(author *models.Author) AuthorForm {
	form := AuthorForm{
		FirstName: author.FirstName,
		LastName:  author.LastName,
	}
	if author.DateOfBirth != nil {
		form.DateOfBirth = author.DateOfBirth.String()
	}
	if author.DateOfDeath != nil {
		form.DateOfDeath = author.DateOfDeath.String()
	}
	return form
}

func parseOptionalDate(field, value string) (*models.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return nil, errcodes.ValidationError(strconv.Quote(field) + " should be a valid date")
	}
	return &d, nil
}
