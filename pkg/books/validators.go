package books

import "github.com/locallibrary/catalog/pkg/models"

// BookForm holds the editable fields of a book. Author, language, and genres
// are referenced by ID and must exist.
type BookForm struct {
	Title      string `json:"title" form:"title" mod:"trim" validate:"required,max=200"`
	AuthorID   *int   `json:"author_id" form:"author_id" validate:"omitempty,min=1"`
	Summary    string `json:"summary" form:"summary" mod:"trim" validate:"required,max=1000"`
	ISBN       string `json:"isbn" form:"isbn" mod:"trim" validate:"isbn"`
	GenreIDs   []int  `json:"genre_ids" form:"genre_ids" validate:"dive,min=1"`
	LanguageID *int   `json:"language_id" form:"language_id" validate:"omitempty,min=1"`
}

// BookResponse is a book with the short genre summary shown in listings.
type BookResponse struct {
	*models.Book
	DisplayGenre string `json:"display_genre"`
}

func newBookResponse(book *models.Book) BookResponse {
	return BookResponse{book, book.DisplayGenre()}
}
