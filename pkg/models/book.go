package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

// displayGenreLimit is how many genre names DisplayGenre includes.
const displayGenreLimit = 3

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID         int             `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Title      string          `bun:",notnull" json:"title"`
	AuthorID   *int            `json:"author_id"`
	Author     *Author         `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Summary    string          `bun:",notnull" json:"summary"`
	ISBN       *string         `bun:"isbn" json:"isbn"`
	LanguageID *int            `json:"language_id"`
	Language   *Language       `bun:"rel:belongs-to,join:language_id=id" json:"language,omitempty"`
	Genres     []*Genre        `bun:"m2m:book_genres,join:Book=Genre" json:"genres,omitempty"`
	Instances  []*BookInstance `bun:"rel:has-many,join:id=book_id" json:"instances,omitempty"`
}

// DisplayGenre returns the names of the first few genres, comma separated.
func (b *Book) DisplayGenre() string {
	genres := b.Genres
	if len(genres) > displayGenreLimit {
		genres = genres[:displayGenreLimit]
	}
	return strings.Join(lo.Map(genres, func(g *Genre, _ int) string { return g.Name }), ", ")
}
