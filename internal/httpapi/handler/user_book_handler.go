package handler

import (
	"net/http"
	"strconv"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// UserBookHandler serves the per-user reading library.
type UserBookHandler struct {
	userBookService service.UserBookService
}

func NewUserBookHandler(userBookService service.UserBookService) *UserBookHandler {
	return &UserBookHandler{userBookService: userBookService}
}

// RegisterRoutes registers library routes. The group must already be
// behind the auth middleware.
func (h *UserBookHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/books", h.ListBooks)
	router.GET("/:isbn/status", h.GetStatus)
	router.PUT("/:isbn/status", h.SetStatus)
	router.POST("/:isbn/status", h.SetStatus)
}

// SetStatus upserts the reading status for one book.
// PUT|POST /api/userdata/:isbn/status
func (h *UserBookHandler) SetStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	entry, err := h.userBookService.SetStatus(currentUserID(c), c.Param("isbn"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// GetStatus reads the reading status for one book.
// GET /api/userdata/:isbn/status
func (h *UserBookHandler) GetStatus(c *gin.Context) {
	entry, err := h.userBookService.GetStatus(currentUserID(c), c.Param("isbn"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}

// ListBooks pages through the user's library, optionally filtered by
// status.
// GET /api/userdata/books?status=reading&page=1&limit=20
func (h *UserBookHandler) ListBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	entries, total, err := h.userBookService.ListUserBooks(currentUserID(c), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       entries,
		"pagination": dto.NewPagination(page, limit, total),
	})
}
