package handler

import (
	"net/http"
	"strconv"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	listService service.ListService
}

func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// RegisterRoutes registers list routes. Reads go on the public group so
// anonymous callers can browse public lists; visibility filtering happens
// in the service based on whoever the optional auth resolved. Mutations
// require the authed group.
func (h *ListHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/search", h.Search)
	public.GET("/user/:userId", h.ListForUser)
	public.GET("/:id", h.Get)

	authed.POST("", h.Create)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
	authed.POST("/:id/books", h.AddBook)
	authed.DELETE("/:id/books/:bookId", h.RemoveBook)
	authed.PUT("/:id/books/reorder", h.Reorder)
	authed.POST("/:id/like", h.ToggleLike)
}

// Create builds a list, optionally with initial members.
// POST /api/list
func (h *ListHandler) Create(c *gin.Context) {
	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	list, err := h.listService.CreateList(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "list": list})
}

// Get returns one list, subject to visibility.
// GET /api/list/:id
func (h *ListHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}

	list, err := h.listService.GetList(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "list": list})
}

// Update edits the caller's own list.
// PUT /api/list/:id
func (h *ListHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}

	var req dto.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	list, err := h.listService.UpdateList(currentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "list": list})
}

// Delete removes the caller's own list.
// DELETE /api/list/:id
func (h *ListHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}

	if err := h.listService.DeleteList(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "list deleted"})
}

// AddBook appends a catalog book to the list.
// POST /api/list/:id/books
func (h *ListHandler) AddBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}

	var req dto.AddListBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	list, err := h.listService.AddBook(currentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "list": list})
}

// RemoveBook takes a book out of the list.
// DELETE /api/list/:id/books/:bookId
func (h *ListHandler) RemoveBook(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid book ID"})
		return
	}

	list, err := h.listService.RemoveBook(currentUserID(c), id, bookID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "list": list})
}

// Reorder applies new positions to current members and reports the ids
// it had to skip.
// PUT /api/list/:id/books/reorder
func (h *ListHandler) Reorder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	applied, skipped, err := h.listService.Reorder(currentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"applied": applied,
		"skipped": skipped,
	})
}

// ToggleLike likes or unlikes someone else's list.
// POST /api/list/:id/like
func (h *ListHandler) ToggleLike(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid list ID"})
		return
	}

	var req dto.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	likes, err := h.listService.ToggleLike(currentUserID(c), id, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "likes": likes})
}

// List pages through lists visible to the caller.
// GET /api/list?page=1&limit=20
func (h *ListHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	lists, total, err := h.listService.GetLists(currentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"lists":      lists,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// ListForUser pages through one user's lists visible to the caller.
// GET /api/list/user/:userId
func (h *ListHandler) ListForUser(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	lists, total, err := h.listService.GetUserLists(c.Param("userId"), currentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"lists":      lists,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Search matches lists by title or description.
// GET /api/list/search?q=...
func (h *ListHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	lists, total, err := h.listService.SearchLists(c.Query("q"), currentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"lists":      lists,
		"pagination": dto.NewPagination(page, limit, total),
	})
}
