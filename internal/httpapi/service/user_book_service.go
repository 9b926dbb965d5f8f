package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/models"
	"bookstop/internal/httpapi/repository"

	"gorm.io/gorm"
)

type UserBookService interface {
	SetStatus(userID, isbn string, req dto.UpdateStatusRequest) (*models.UserBook, error)
	GetStatus(userID, isbn string) (*models.UserBook, error)
	ListUserBooks(userID, status string, page, pageSize int) ([]models.UserBook, int64, error)
}

type userBookService struct {
	userBookRepo repository.UserBookRepository
	bookRepo     repository.BookRepository
}

func NewUserBookService(userBookRepo repository.UserBookRepository, bookRepo repository.BookRepository) UserBookService {
	return &userBookService{
		userBookRepo: userBookRepo,
		bookRepo:     bookRepo,
	}
}

// SetStatus resolves the book by ISBN and upserts the (user, book) entry.
// Date fields follow the status transition rules: moving into "reading"
// stamps startedReading only if it was never set; moving into "read"
// always stamps finishedReading and backfills startedReading.
func (s *userBookService) SetStatus(userID, isbn string, req dto.UpdateStatusRequest) (*models.UserBook, error) {
	if !models.ValidStatus(req.Status) {
		return nil, NewValidationError("invalid status, must be one of: read, reading, plan-to-read, undefined")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, NewValidationError("rating must be between 1 and 5")
	}

	book, err := s.bookRepo.GetByISBN(strings.TrimSpace(isbn))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	now := time.Now()

	entry := &models.UserBook{
		UserID: userID,
		BookID: book.ID,
		Status: req.Status,
		Dates:  models.ReadingDates{AddedToList: now},
	}

	existing, err := s.userBookRepo.GetByUserAndBook(userID, book.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		// carry everything the request does not touch
		entry.IsFavorite = existing.IsFavorite
		entry.Rating = existing.Rating
		entry.Notes = existing.Notes
		entry.Tags = existing.Tags
		entry.Progress = existing.Progress
		entry.Dates = existing.Dates
	}

	if req.IsFavorite != nil {
		entry.IsFavorite = *req.IsFavorite
	}
	if req.Rating != nil {
		entry.Rating = req.Rating
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	if req.CurrentPage != nil {
		entry.Progress.CurrentPage = *req.CurrentPage
	}
	if req.TotalPages != nil {
		entry.Progress.TotalPages = *req.TotalPages
	}
	entry.Progress.Percentage = progressPercentage(entry.Progress.CurrentPage, entry.Progress.TotalPages)

	switch req.Status {
	case models.StatusReading:
		if entry.Dates.StartedReading == nil {
			entry.Dates.StartedReading = &now
		}
	case models.StatusRead:
		entry.Dates.FinishedReading = &now
		if entry.Dates.StartedReading == nil {
			entry.Dates.StartedReading = &now
		}
	}

	if err := s.userBookRepo.Upsert(entry); err != nil {
		return nil, err
	}

	// Reload with book data denormalized in
	return s.userBookRepo.GetByUserAndBook(userID, book.ID)
}

// progressPercentage derives the completion percentage. Not capped at
// 100: currentPage beyond totalPages yields >100%.
func progressPercentage(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	return int(math.Round(float64(currentPage) / float64(totalPages) * 100))
}

// GetStatus returns the entry for (user, book-by-ISBN). A missing row is
// ErrStatusNotFound, distinct from an existing row with status
// "undefined".
func (s *userBookService) GetStatus(userID, isbn string) (*models.UserBook, error) {
	book, err := s.bookRepo.GetByISBN(strings.TrimSpace(isbn))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	entry, err := s.userBookRepo.GetByUserAndBook(userID, book.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListUserBooks pages through the user's entries newest-added first.
func (s *userBookService) ListUserBooks(userID, status string, page, pageSize int) ([]models.UserBook, int64, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, 0, NewValidationError("invalid status filter")
	}
	return s.userBookRepo.ListByUser(userID, status, page, pageSize)
}
