package handler

import (
	"net/http"
	"strconv"
	"strings"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes registers catalog routes.
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.Search)
	router.GET("/authors/search", h.SearchAuthors)
	router.GET("/authors/:key", h.GetAuthor)
	router.POST("/db", h.Persist)
	router.GET("/:id", h.Get)
	router.GET("/:id/cover", h.Cover)
}

// Search proxies the external catalog search. Fielded params narrow the
// free-text query using the upstream's field syntax.
// GET /api/book/search?q=...&title=&author=&subject=&isbn=&page=1&limit=20
func (h *BookHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = dto.ClampPage(page, limit)

	result, err := h.bookService.Search(c.Request.Context(), searchQuery(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPages := result.NumFound / limit
	if result.NumFound%limit != 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": dto.BookSearchResponse{
			Books:      result.Docs,
			Total:      result.NumFound,
			Page:       page,
			TotalPages: totalPages,
		},
	})
}

// searchQuery assembles the upstream search expression from the free-text
// q plus any fielded params.
func searchQuery(c *gin.Context) string {
	terms := []string{}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		terms = append(terms, q)
	}
	for _, field := range []string{"title", "author", "subject", "isbn"} {
		if v := strings.TrimSpace(c.Query(field)); v != "" {
			terms = append(terms, field+":"+v)
		}
	}
	return strings.Join(terms, " ")
}

// SearchAuthors proxies the author name search.
// GET /api/book/authors/search?q=...&limit=10
func (h *BookHandler) SearchAuthors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	_, limit = dto.ClampPage(1, limit)

	result, err := h.bookService.SearchAuthors(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// GetAuthor fetches a single author record by OpenLibrary key.
// GET /api/book/authors/:key
func (h *BookHandler) GetAuthor(c *gin.Context) {
	author, err := h.bookService.GetAuthor(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid author key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": author})
}

// Persist stores a search result into the local catalog.
// POST /api/book/db
func (h *BookHandler) Persist(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	book, created, err := h.bookService.FindOrCreate(req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "book": book})
}

// Get returns one catalog record.
// GET /api/book/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid book ID"})
		return
	}

	book, err := h.bookService.GetBook(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "book": book})
}

// Cover resolves (and persists) the book's cover image URL.
// GET /api/book/:id/cover
func (h *BookHandler) Cover(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid book ID"})
		return
	}

	book, err := h.bookService.ResolveCover(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "coverImage": book.CoverImage})
}
