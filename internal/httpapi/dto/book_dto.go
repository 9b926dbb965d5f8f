package dto

// CreateBookRequest carries a search result the client wants persisted
// into the local catalog. External API shapes vary, so everything except
// the title is optional with defensive defaults applied at ingestion.
type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Authors       []string `json:"author_name"`
	ISBN          string   `json:"isbn"`
	LCCN          []string `json:"lccn"`
	Description   string   `json:"description"`
	CoverImage    *string  `json:"cover_image"`
	PublishedYear *int     `json:"first_publish_year"`
	PageCount     int      `json:"number_of_pages_median"`
	Languages     []string `json:"language"`
	Subjects      []string `json:"subject"`
	RatingsAvg    *float64 `json:"ratings_average"`
	GoogleBooksID *string  `json:"google_books_id"`
	GoodreadsID   *string  `json:"goodreads_id"`
	OpenLibraryID *string  `json:"open_library_id"`
}

// BookSearchResponse mirrors the OpenLibrary proxy result page.
type BookSearchResponse struct {
	Books      interface{} `json:"books"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
}
