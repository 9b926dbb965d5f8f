package repository

import (
	"bookstop/internal/httpapi/models"

	"gorm.io/gorm"
)

// ReviewFilter narrows a review listing. Zero values mean "no filter".
type ReviewFilter struct {
	BookID int64
	UserID string
	Rating int
}

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id int64) (*models.Review, error)
	Update(review *models.Review) error
	AppendEdit(edit *models.ReviewEdit) error
	Delete(id int64) error
	List(filter ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, error)
	RatingStats(bookID int64) (float64, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("User").
		Preload("Book").
		Preload("Edits", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_edits.edited_at ASC")
		}).
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Model(review).Select("title", "content", "rating", "updated_at").Updates(review).Error
}

// AppendEdit writes one history snapshot. Edits are never updated or
// deleted afterwards.
func (r *reviewRepository) AppendEdit(edit *models.ReviewEdit) error {
	return r.db.Create(edit).Error
}

func (r *reviewRepository) Delete(id int64) error {
	return r.db.Delete(&models.Review{}, "id = ?", id).Error
}

var reviewSortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"rating":     "rating",
}

func (r *reviewRepository) List(filter ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	q := r.db.Model(&models.Review{})
	if filter.BookID != 0 {
		q = q.Where("book_id = ?", filter.BookID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Rating != 0 {
		q = q.Where("rating = ?", filter.Rating)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := reviewSortFields[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	offset := (page - 1) * pageSize
	err := q.Preload("User").
		Preload("Book").
		Order(column + " " + direction).
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// RatingStats aggregates over all reviews with a non-null rating for the
// book. Computed at read time so it is always consistent with the rows.
func (r *reviewRepository) RatingStats(bookID int64) (float64, int64, error) {
	var stats struct {
		Average float64
		Count   int64
	}

	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(rating) as count").
		Where("book_id = ? AND rating IS NOT NULL", bookID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}

	return stats.Average, stats.Count, nil
}
