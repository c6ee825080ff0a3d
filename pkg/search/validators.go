package search

// CatalogSearchQuery represents the query parameters for catalog search.
type CatalogSearchQuery struct {
	Query string `query:"q" json:"q" mod:"trim" validate:"required,min=1,max=100"`
}

// CatalogSearchResponse holds up to ResultLimit matches per resource type.
type CatalogSearchResponse struct {
	Books   []BookSearchResult   `json:"books"`
	Authors []AuthorSearchResult `json:"authors"`
	Genres  []GenreSearchResult  `json:"genres"`
}

type BookSearchResult struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Author *string `json:"author"`
}

type AuthorSearchResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type GenreSearchResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
