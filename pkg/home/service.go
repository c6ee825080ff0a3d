package home

import (
	"context"

	"github.com/locallibrary/catalog/pkg/authors"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/genres"
	"github.com/locallibrary/catalog/pkg/instances"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	titleSample = "Book"
	genreSample = "on"
)

// Counts are the catalog totals shown on the home page.
type Counts struct {
	NumBooks              int `json:"num_books"`
	NumInstances          int `json:"num_instances"`
	NumInstancesAvailable int `json:"num_instances_available"`
	NumAuthors            int `json:"num_authors"`
	NumBooksWithBook      int `json:"num_books_with_book"`
	NumGenresWithOn       int `json:"num_genres_with_on"`
}

type Service struct {
	bookService     *books.Service
	instanceService *instances.Service
	authorService   *authors.Service
	genreService    *genres.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		bookService:     books.NewService(db),
		instanceService: instances.NewService(db),
		authorService:   authors.NewService(db),
		genreService:    genres.NewService(db),
	}
}

func (svc *Service) Counts(ctx context.Context) (*Counts, error) {
	counts := &Counts{}
	var err error

	if counts.NumBooks, err = svc.bookService.CountBooks(ctx, books.CountBooksOptions{}); err != nil {
		return nil, errors.WithStack(err)
	}
	if counts.NumInstances, err = svc.instanceService.CountInstances(ctx, instances.CountInstancesOptions{}); err != nil {
		return nil, errors.WithStack(err)
	}

	available := models.InstanceStatusAvailable
	counts.NumInstancesAvailable, err = svc.instanceService.CountInstances(ctx, instances.CountInstancesOptions{
		Status: &available,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if counts.NumAuthors, err = svc.authorService.CountAuthors(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	title := titleSample
	if counts.NumBooksWithBook, err = svc.bookService.CountBooks(ctx, books.CountBooksOptions{TitleContains: &title}); err != nil {
		return nil, errors.WithStack(err)
	}

	name := genreSample
	if counts.NumGenresWithOn, err = svc.genreService.CountGenres(ctx, genres.CountGenresOptions{NameContains: &name}); err != nil {
		return nil, errors.WithStack(err)
	}

	return counts, nil
}
