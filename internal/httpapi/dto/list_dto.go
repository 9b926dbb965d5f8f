package dto

type ListBookInput struct {
	BookID int64  `json:"bookId" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
	Order  *int   `json:"order"`
}

type CreateListRequest struct {
	Title       string          `json:"title" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=1000"`
	Visibility  string          `json:"visibility"`
	Tags        []string        `json:"tags"`
	Books       []ListBookInput `json:"books"`
}

type UpdateListRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Visibility  *string   `json:"visibility"`
	Tags        *[]string `json:"tags"`
}

type AddListBookRequest struct {
	BookID int64  `json:"bookId" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
	Order  *int   `json:"order"`
}

type BookOrder struct {
	BookID int64 `json:"bookId" binding:"required"`
	Order  int   `json:"order"`
}

type ReorderRequest struct {
	BookOrders []BookOrder `json:"bookOrders" binding:"required"`
}

type ToggleLikeRequest struct {
	Action string `json:"action" binding:"required"`
}
