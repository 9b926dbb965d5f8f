package service

import (
	"errors"
	"strings"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/models"
	"bookstop/internal/httpapi/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(userID string, req dto.CreateReviewRequest) (*models.Review, error)
	GetReview(id int64) (*models.Review, error)
	UpdateReview(userID string, id int64, req dto.UpdateReviewRequest) (*models.Review, error)
	DeleteReview(userID string, id int64) error
	ListReviews(filter repository.ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, error)
	GetBookReviews(bookID int64, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, *dto.RatingStats, error)
	GetUserReviews(userID string, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// validateReviewContent enforces the shape every stored review must
// satisfy: a rating in 1..5 when present, at least one of rating or
// content, and a title whenever there is content.
func validateReviewContent(title, content string, rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return NewValidationError("rating must be between 1 and 5")
	}
	if rating == nil && content == "" {
		return NewValidationError("review must have a rating or content")
	}
	if content != "" && title == "" {
		return NewValidationError("a written review requires a title")
	}
	return nil
}

// CreateReview stores one review per (user, book). The unique index on
// that pair is the authority on duplicates.
func (s *reviewService) CreateReview(userID string, req dto.CreateReviewRequest) (*models.Review, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)

	if err := validateReviewContent(title, content, req.Rating); err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.GetByID(req.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &models.Review{
		UserID:  userID,
		BookID:  req.BookID,
		Title:   title,
		Content: content,
		Rating:  req.Rating,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	return s.reviewRepo.GetByID(review.ID)
}

func (s *reviewService) GetReview(id int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// UpdateReview merges the request over the stored review. When the
// content text changes, the previous text is snapshotted into the edit
// history first; the history itself is append-only. Clearing the content
// also clears the title, since a title without content is not allowed.
func (s *reviewService) UpdateReview(userID string, id int64, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	title := review.Title
	content := review.Content
	rating := review.Rating

	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		content = strings.TrimSpace(*req.Content)
	}
	if req.Rating != nil {
		rating = req.Rating
	}
	if content == "" {
		title = ""
	}

	if err := validateReviewContent(title, content, rating); err != nil {
		return nil, err
	}

	if req.Content != nil && content != review.Content && review.Content != "" {
		edit := &models.ReviewEdit{
			ReviewID: review.ID,
			Content:  review.Content,
		}
		if err := s.reviewRepo.AppendEdit(edit); err != nil {
			return nil, err
		}
	}

	review.Title = title
	review.Content = content
	review.Rating = rating

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	return s.reviewRepo.GetByID(review.ID)
}

func (s *reviewService) DeleteReview(userID string, id int64) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.Delete(id)
}

func (s *reviewService) ListReviews(filter repository.ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, error) {
	if filter.Rating != 0 && (filter.Rating < 1 || filter.Rating > 5) {
		return nil, 0, NewValidationError("rating filter must be between 1 and 5")
	}
	return s.reviewRepo.List(filter, page, pageSize, sortBy, sortOrder)
}

// GetBookReviews lists a book's reviews together with the rating
// aggregate, computed from the current rows rather than a stored
// counter.
func (s *reviewService) GetBookReviews(bookID int64, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, *dto.RatingStats, error) {
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil, ErrBookNotFound
		}
		return nil, 0, nil, err
	}

	reviews, total, err := s.reviewRepo.List(repository.ReviewFilter{BookID: bookID}, page, pageSize, sortBy, sortOrder)
	if err != nil {
		return nil, 0, nil, err
	}

	average, count, err := s.reviewRepo.RatingStats(bookID)
	if err != nil {
		return nil, 0, nil, err
	}

	stats := &dto.RatingStats{
		AverageRating: average,
		TotalRatings:  count,
	}
	return reviews, total, stats, nil
}

func (s *reviewService) GetUserReviews(userID string, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewFilter{UserID: userID}, page, pageSize, "created_at", "desc")
}
