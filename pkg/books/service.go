package books

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID   *int
	ISBN *string
}

type ListBooksOptions struct {
	Limit    *int
	Offset   *int
	AuthorID *int
	GenreID  *int

	includeTotal bool
}

type CountBooksOptions struct {
	// TitleContains matches books whose title contains the substring, case
	// sensitively.
	TitleContains *string
}

type UpdateBookOptions struct {
	Columns []string
	// GenreIDs replaces the book's genres when set.
	GenreIDs *[]int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts book and links it to genreIDs.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, genreIDs []int) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt
	genreIDs = lo.Uniq(genreIDs)

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := validateReferences(ctx, tx, book, genreIDs); err != nil {
			return err
		}

		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return replaceGenres(ctx, tx, book.ID, genreIDs)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// RetrieveBook loads a book with its author, language, genres, and instances.
func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Relation("Author").
		Relation("Language").
		Relation("Genres", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("g.name ASC")
		}).
		Relation("Instances", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bi.due_back ASC")
		})

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.ISBN != nil {
		q = q.Where("b.isbn = ?", *opts.ISBN)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Relation("Genres", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("g.name ASC")
		}).
		Order("b.title ASC", "b.id ASC")

	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", *opts.AuthorID)
	}
	if opts.GenreID != nil {
		q = q.Where("b.id IN (SELECT book_id FROM book_genres WHERE genre_id = ?)", *opts.GenreID)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func (svc *Service) CountBooks(ctx context.Context, opts CountBooksOptions) (int, error) {
	q := svc.db.NewSelect().Model((*models.Book)(nil))
	if opts.TitleContains != nil {
		q = q.Where("instr(b.title, ?) > 0", *opts.TitleContains)
	}
	count, err := q.Count(ctx)
	return count, errors.WithStack(err)
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 && opts.GenreIDs == nil {
		return nil
	}

	var genreIDs []int
	if opts.GenreIDs != nil {
		genreIDs = lo.Uniq(*opts.GenreIDs)
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := validateReferences(ctx, tx, book, genreIDs); err != nil {
			return err
		}

		book.UpdatedAt = time.Now()
		columns := append(opts.Columns, "updated_at")

		_, err := tx.
			NewUpdate().
			Model(book).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if opts.GenreIDs != nil {
			return replaceGenres(ctx, tx, book.ID, genreIDs)
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteBook deletes a book that has no instances. Books with instances are
// left untouched and a conflict is returned.
func (svc *Service) DeleteBook(ctx context.Context, bookID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		instances, err := tx.NewSelect().
			Model((*models.BookInstance)(nil)).
			Where("book_id = ?", bookID).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if instances > 0 {
			return errcodes.Conflict(fmt.Sprintf("Book has %d instance(s) and cannot be deleted.", instances))
		}

		_, err = tx.NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", bookID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

func validateReferences(ctx context.Context, tx bun.Tx, book *models.Book, genreIDs []int) error {
	if book.AuthorID != nil {
		exists, err := tx.NewSelect().
			Model((*models.Author)(nil)).
			Where("id = ?", *book.AuthorID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.ValidationError(fmt.Sprintf("Author %d does not exist", *book.AuthorID))
		}
	}

	if book.LanguageID != nil {
		exists, err := tx.NewSelect().
			Model((*models.Language)(nil)).
			Where("id = ?", *book.LanguageID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if !exists {
			return errcodes.ValidationError(fmt.Sprintf("Language %d does not exist", *book.LanguageID))
		}
	}

	if len(genreIDs) > 0 {
		var found []int
		err := tx.NewSelect().
			Model((*models.Genre)(nil)).
			Column("id").
			Where("id IN (?)", bun.In(genreIDs)).
			Scan(ctx, &found)
		if err != nil {
			return errors.WithStack(err)
		}
		if missing, _ := lo.Difference(genreIDs, found); len(missing) > 0 {
			return errcodes.ValidationError(fmt.Sprintf("Genre %d does not exist", missing[0]))
		}
	}

	if book.ISBN != nil {
		exists, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("isbn = ?", *book.ISBN).
			Where("id != ?", book.ID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return errcodes.ValidationError("A book with ISBN " + *book.ISBN + " already exists")
		}
	}

	return nil
}

func replaceGenres(ctx context.Context, tx bun.Tx, bookID int, genreIDs []int) error {
	_, err := tx.NewDelete().
		Model((*models.BookGenre)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(genreIDs) == 0 {
		return nil
	}

	links := lo.Map(genreIDs, func(genreID int, _ int) *models.BookGenre {
		return &models.BookGenre{BookID: bookID, GenreID: genreID}
	})
	_, err = tx.NewInsert().Model(&links).Exec(ctx)
	return errors.WithStack(err)
}
