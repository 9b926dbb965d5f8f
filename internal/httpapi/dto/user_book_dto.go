package dto

// UpdateStatusRequest is the upsert payload for a user's reading state on
// a book. Pointer fields distinguish "not supplied" from zero values so a
// partial update never clobbers existing data.
type UpdateStatusRequest struct {
	Status      string   `json:"status" binding:"required"`
	IsFavorite  *bool    `json:"isFavorite"`
	Rating      *int     `json:"rating"`
	Notes       *string  `json:"notes"`
	Tags        []string `json:"tags"`
	CurrentPage *int     `json:"currentPage"`
	TotalPages  *int     `json:"totalPages"`
}
