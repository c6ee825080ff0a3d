package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/samber/lo"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, total, err := h.bookService.ListBooksWithTotal(ctx, ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"books": lo.Map(books, func(b *models.Book, _ int) BookResponse { return newBookResponse(b) }),
		"total": total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	book, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, newBookResponse(book)))
}

func (h *handler) createForm(c echo.Context) error {
	form := BookForm{GenreIDs: []int{}}
	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"form": form}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := BookForm{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{}
	applyForm(book, params)

	if err := h.bookService.CreateBook(ctx, book, params.GenreIDs); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book created", logger.Data{"book_id": book.ID})

	return c.Redirect(http.StatusSeeOther, DetailURL(book.ID))
}

func (h *handler) updateForm(c echo.Context) error {
	book, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	response := map[string]any{
		"form": formFromBook(book),
		"book": newBookResponse(book),
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	params := BookForm{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	applyForm(book, params)

	genreIDs := params.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}
	err = h.bookService.UpdateBook(ctx, book, UpdateBookOptions{
		Columns:  []string{"title", "author_id", "summary", "isbn", "language_id"},
		GenreIDs: &genreIDs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book updated", logger.Data{"book_id": book.ID})

	return c.Redirect(http.StatusSeeOther, DetailURL(book.ID))
}

func (h *handler) deleteForm(c echo.Context) error {
	book, err := h.retrieveFromParam(c)
	if err != nil {
		return err
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"book": newBookResponse(book)}))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}
	if _, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ID: &id}); err != nil {
		return errors.WithStack(err)
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book deleted", logger.Data{"book_id": id})

	return c.Redirect(http.StatusSeeOther, ListURL)
}

func (h *handler) retrieveFromParam(c echo.Context) (*models.Book, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(c.Request().Context(), RetrieveBookOptions{ID: &id})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func applyForm(book *models.Book, form BookForm) {
	book.Title = form.Title
	book.AuthorID = form.AuthorID
	book.Summary = form.Summary
	book.LanguageID = form.LanguageID
	book.ISBN = nil
	if form.ISBN != "" {
		book.ISBN = lo.ToPtr(form.ISBN)
	}
}

func formFromBook(book *models.Book) BookForm {
	return BookForm{
		Title:      book.Title,
		AuthorID:   book.AuthorID,
		Summary:    book.Summary,
		ISBN:       lo.FromPtr(book.ISBN),
		GenreIDs:   lo.Map(book.Genres, func(g *models.Genre, _ int) int { return g.ID }),
		LanguageID: book.LanguageID,
	}
}
