package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"bookstop/internal/cache"
	"bookstop/internal/covers"
	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/models"
	"bookstop/internal/httpapi/repository"
	"bookstop/internal/openlibrary"

	"gorm.io/gorm"
)

type BookService interface {
	Search(ctx context.Context, query string, page, limit int) (*openlibrary.SearchResponse, error)
	SearchAuthors(ctx context.Context, query string, limit int) (*openlibrary.AuthorSearchResponse, error)
	GetAuthor(ctx context.Context, key string) (*openlibrary.Author, error)
	FindOrCreate(req dto.CreateBookRequest) (book *models.Book, created bool, err error)
	GetBook(id int64) (*models.Book, error)
	ResolveCover(ctx context.Context, id int64) (*models.Book, error)
}

type bookService struct {
	bookRepo      repository.BookRepository
	client        *openlibrary.Client
	coverResolver *covers.Resolver
	searchCache   *cache.SearchCache
}

func NewBookService(
	bookRepo repository.BookRepository,
	client *openlibrary.Client,
	coverResolver *covers.Resolver,
	searchCache *cache.SearchCache,
) BookService {
	return &bookService{
		bookRepo:      bookRepo,
		client:        client,
		coverResolver: coverResolver,
		searchCache:   searchCache,
	}
}

// Search proxies the catalog search, read-through cached so repeated
// queries do not hammer the upstream.
func (s *bookService) Search(ctx context.Context, query string, page, limit int) (*openlibrary.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search query is required")
	}

	key := cache.Key("books", query, page, limit)
	var cached openlibrary.SearchResponse
	if s.searchCache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := s.client.Search(ctx, query, page, limit)
	if err != nil {
		return nil, err
	}

	s.searchCache.Set(ctx, key, result)
	return result, nil
}

func (s *bookService) SearchAuthors(ctx context.Context, query string, limit int) (*openlibrary.AuthorSearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search query is required")
	}

	key := cache.Key("authors", query, limit)
	var cached openlibrary.AuthorSearchResponse
	if s.searchCache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := s.client.SearchAuthors(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	s.searchCache.Set(ctx, key, result)
	return result, nil
}

func (s *bookService) GetAuthor(ctx context.Context, key string) (*openlibrary.Author, error) {
	return s.client.GetAuthor(ctx, key)
}

// FindOrCreate persists a search result into the catalog, deduplicating
// by ISBN first and external ids second. An existing record wins, but
// missing description and cover are backfilled from the request.
func (s *bookService) FindOrCreate(req dto.CreateBookRequest) (*models.Book, bool, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, false, NewValidationError("book title is required")
	}

	existing, err := s.lookupExisting(req)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	if existing != nil {
		changed := false
		if existing.Description == "" && req.Description != "" {
			existing.Description = req.Description
			changed = true
		}
		if existing.CoverImage == nil && req.CoverImage != nil && *req.CoverImage != "" {
			existing.CoverImage = req.CoverImage
			changed = true
		}
		if changed {
			if err := s.bookRepo.Update(existing); err != nil {
				return nil, false, err
			}
		}
		return existing, false, nil
	}

	book := &models.Book{
		Title:          title,
		Authors:        req.Authors,
		ISBN:           strings.TrimSpace(req.ISBN),
		LCCN:           req.LCCN,
		Description:    req.Description,
		CoverImage:     req.CoverImage,
		PublishedYear:  req.PublishedYear,
		PageCount:      req.PageCount,
		Languages:      req.Languages,
		Subjects:       req.Subjects,
		RatingsAverage: roundedRating(req.RatingsAvg),
		GoogleBooksID:  req.GoogleBooksID,
		GoodreadsID:    req.GoodreadsID,
		OpenLibraryID:  req.OpenLibraryID,
	}

	if err := s.bookRepo.Create(book); err != nil {
		return nil, false, err
	}
	return book, true, nil
}

func (s *bookService) lookupExisting(req dto.CreateBookRequest) (*models.Book, error) {
	if isbn := strings.TrimSpace(req.ISBN); isbn != "" {
		book, err := s.bookRepo.GetByISBN(isbn)
		if err == nil {
			return book, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var googleID, openLibraryID string
	if req.GoogleBooksID != nil {
		googleID = *req.GoogleBooksID
	}
	if req.OpenLibraryID != nil {
		openLibraryID = *req.OpenLibraryID
	}
	return s.bookRepo.GetByExternalID(googleID, openLibraryID)
}

// roundedRating clamps upstream ratings into the decimal(3,2) column.
func roundedRating(rating *float64) *float64 {
	if rating == nil {
		return nil
	}
	r := math.Round(*rating*100) / 100
	return &r
}

func (s *bookService) GetBook(id int64) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// ResolveCover finds a cover for a stored book and persists it, so the
// lookup chain runs at most once per book. A miss across every source is
// ErrCoverNotFound.
func (s *bookService) ResolveCover(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}
	if book.CoverImage != nil && *book.CoverImage != "" {
		return book, nil
	}

	author := ""
	if len(book.Authors) > 0 {
		author = book.Authors[0]
	}

	coverURL, ok := s.coverResolver.Resolve(ctx, book.Title, author, book.LCCN, book.ISBN)
	if !ok {
		return nil, ErrCoverNotFound
	}

	book.CoverImage = &coverURL
	if err := s.bookRepo.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}
