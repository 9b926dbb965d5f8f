package repository

import (
	"bookstop/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserBookRepository interface {
	GetByUserAndBook(userID string, bookID int64) (*models.UserBook, error)
	Upsert(entry *models.UserBook) error
	ListByUser(userID, status string, page, pageSize int) ([]models.UserBook, int64, error)
}

type userBookRepository struct {
	db *gorm.DB
}

func NewUserBookRepository(db *gorm.DB) UserBookRepository {
	return &userBookRepository{db: db}
}

func (r *userBookRepository) GetByUserAndBook(userID string, bookID int64) (*models.UserBook, error) {
	var entry models.UserBook
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Preload("Book").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert inserts the entry or, when the (user_id, book_id) row already
// exists, overwrites the mutable columns in a single statement.
// added_to_list is only written on insert.
func (r *userBookRepository) Upsert(entry *models.UserBook) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "is_favorite", "rating", "notes", "tags",
			"progress_current_page", "progress_total_pages", "progress_percentage",
			"started_reading", "finished_reading", "updated_at",
		}),
	}).Create(entry).Error
}

// ListByUser returns a page of the user's entries newest-added first,
// optionally filtered by status.
func (r *userBookRepository) ListByUser(userID, status string, page, pageSize int) ([]models.UserBook, int64, error) {
	var entries []models.UserBook
	var total int64

	q := r.db.Model(&models.UserBook{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Book").
		Order("added_to_list DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
