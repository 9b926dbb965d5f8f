package handler

import (
	"net/http"
	"strconv"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/repository"
	"bookstop/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes. Reviews are readable by
// anyone; writing requires the authed group.
func (h *ReviewHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/book/:bookId", h.ListForBook)
	public.GET("/user/:userId", h.ListForUser)
	public.GET("/:id", h.Get)

	authed.POST("", h.Create)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create stores the caller's review of a book, one per book.
// POST /api/review
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	review, err := h.reviewService.CreateReview(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// Get returns one review with its edit history.
// GET /api/review/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid review ID"})
		return
	}

	review, err := h.reviewService.GetReview(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// Update edits the caller's own review.
// PUT /api/review/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid review ID"})
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	review, err := h.reviewService.UpdateReview(currentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// Delete removes the caller's own review.
// DELETE /api/review/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid review ID"})
		return
	}

	if err := h.reviewService.DeleteReview(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "review deleted"})
}

// List pages through reviews with optional filters.
// GET /api/review?bookId=&userId=&rating=&sortBy=&sortOrder=&page=&limit=
func (h *ReviewHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	filter := repository.ReviewFilter{UserID: c.Query("userId")}
	if bookID, err := strconv.ParseInt(c.Query("bookId"), 10, 64); err == nil {
		filter.BookID = bookID
	}
	if rating, err := strconv.Atoi(c.Query("rating")); err == nil {
		filter.Rating = rating
	}

	reviews, total, err := h.reviewService.ListReviews(filter, page, limit, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reviews":    reviews,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// ListForBook pages through a book's reviews with the rating aggregate.
// GET /api/review/book/:bookId
func (h *ReviewHandler) ListForBook(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid book ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	reviews, total, stats, err := h.reviewService.GetBookReviews(bookID, page, limit, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reviews":    reviews,
		"stats":      stats,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// ListForUser pages through one user's reviews.
// GET /api/review/user/:userId
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	reviews, total, err := h.reviewService.GetUserReviews(c.Param("userId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reviews":    reviews,
		"pagination": dto.NewPagination(page, limit, total),
	})
}
