package dto

type CreateReviewRequest struct {
	BookID  int64  `json:"bookId" binding:"required"`
	Title   string `json:"title" binding:"max=200"`
	Content string `json:"content" binding:"max=5000"`
	Rating  *int   `json:"rating"`
}

// UpdateReviewRequest merges over the stored review. Pointer fields
// distinguish "leave alone" from "clear".
type UpdateReviewRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

// RatingStats is the read-time aggregate over a book's rated reviews.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}
