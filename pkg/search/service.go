package search

import (
	"context"

	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// ResultLimit is the most results returned per resource type.
const ResultLimit = 5

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CatalogSearch matches books by title, authors by either name, and genres by
// name. Matching is case insensitive for ASCII letters.
func (svc *Service) CatalogSearch(ctx context.Context, query string) (*CatalogSearchResponse, error) {
	result := &CatalogSearchResponse{
		Books:   []BookSearchResult{},
		Authors: []AuthorSearchResult{},
		Genres:  []GenreSearchResult{},
	}

	pattern := LikePattern(query)
	if pattern == "" {
		return result, nil
	}

	books := []*models.Book{}
	err := svc.db.NewSelect().
		Model(&books).
		Relation("Author").
		Where(`b.title LIKE ? ESCAPE '\'`, pattern).
		Order("b.title ASC", "b.id ASC").
		Limit(ResultLimit).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, book := range books {
		r := BookSearchResult{ID: book.ID, Title: book.Title}
		if book.Author != nil {
			name := book.Author.String()
			r.Author = &name
		}
		result.Books = append(result.Books, r)
	}

	authors := []*models.Author{}
	err = svc.db.NewSelect().
		Model(&authors).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where(`a.first_name LIKE ? ESCAPE '\'`, pattern).
				WhereOr(`a.last_name LIKE ? ESCAPE '\'`, pattern)
		}).
		Order("a.last_name ASC", "a.first_name ASC", "a.id ASC").
		Limit(ResultLimit).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, author := range authors {
		result.Authors = append(result.Authors, AuthorSearchResult{ID: author.ID, Name: author.String()})
	}

	genres := []*models.Genre{}
	err = svc.db.NewSelect().
		Model(&genres).
		Where(`g.name LIKE ? ESCAPE '\'`, pattern).
		Order("g.name ASC").
		Limit(ResultLimit).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for _, genre := range genres {
		result.Genres = append(result.Genres, GenreSearchResult{ID: genre.ID, Name: genre.Name})
	}

	return result, nil
}
