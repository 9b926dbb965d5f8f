package repository

import (
	"bookstop/internal/httpapi/models"

	"gorm.io/gorm"
)

// ListFilter narrows a list listing. ViewerID widens visibility to the
// viewer's own lists on top of public ones.
type ListFilter struct {
	UserID     string
	Visibility string
	ViewerID   string
}

type ListRepository interface {
	Create(list *models.List) error
	GetByID(id int64) (*models.List, error)
	UpdateFields(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	List(filter ListFilter, page, pageSize int) ([]models.List, int64, error)
	Search(query, viewerID string, page, pageSize int) ([]models.List, int64, error)
	AddBook(entry *models.ListBook) error
	RemoveBook(listID, bookID int64) (int64, error)
	GetMembers(listID int64) ([]models.ListBook, error)
	UpdateOrder(listID, bookID int64, order int) error
	UpdateMetadata(listID int64, metadata models.ListMetadata) error
	AdjustLikes(listID int64, delta int) (int, error)
}

type listRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(list *models.List) error {
	return r.db.Create(list).Error
}

func (r *listRepository) GetByID(id int64) (*models.List, error) {
	var list models.List
	err := r.db.Preload("User").
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("list_books.sort_order ASC")
		}).
		Preload("Books.Book").
		First(&list, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&models.List{}).Where("id = ?", id).Updates(fields).Error
}

func (r *listRepository) Delete(id int64) error {
	return r.db.Delete(&models.List{}, "id = ?", id).Error
}

func (r *listRepository) List(filter ListFilter, page, pageSize int) ([]models.List, int64, error) {
	var lists []models.List
	var total int64

	q := r.db.Model(&models.List{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Visibility != "" {
		q = q.Where("visibility = ?", filter.Visibility)
	} else if filter.ViewerID != "" {
		q = q.Where("visibility = ? OR user_id = ?", models.VisibilityPublic, filter.ViewerID)
	} else {
		q = q.Where("visibility = ?", models.VisibilityPublic)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("list_books.sort_order ASC")
	}).
		Preload("Books.Book").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}

	return lists, total, nil
}

// Search matches the query against title and description, restricted to
// lists the viewer may read.
func (r *listRepository) Search(query, viewerID string, page, pageSize int) ([]models.List, int64, error) {
	var lists []models.List
	var total int64

	pattern := "%" + query + "%"
	q := r.db.Model(&models.List{}).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	if viewerID != "" {
		q = q.Where("visibility = ? OR user_id = ?", models.VisibilityPublic, viewerID)
	} else {
		q = q.Where("visibility = ?", models.VisibilityPublic)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("User").
		Preload("Books.Book").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, 0, err
	}

	return lists, total, nil
}

func (r *listRepository) AddBook(entry *models.ListBook) error {
	return r.db.Create(entry).Error
}

func (r *listRepository) RemoveBook(listID, bookID int64) (int64, error) {
	result := r.db.Where("list_id = ? AND book_id = ?", listID, bookID).Delete(&models.ListBook{})
	return result.RowsAffected, result.Error
}

func (r *listRepository) GetMembers(listID int64) ([]models.ListBook, error) {
	var members []models.ListBook
	err := r.db.Where("list_id = ?", listID).Order("sort_order ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *listRepository) UpdateOrder(listID, bookID int64, order int) error {
	return r.db.Model(&models.ListBook{}).
		Where("list_id = ? AND book_id = ?", listID, bookID).
		Update("sort_order", order).Error
}

func (r *listRepository) UpdateMetadata(listID int64, metadata models.ListMetadata) error {
	return r.db.Model(&models.List{}).Where("id = ?", listID).Updates(map[string]interface{}{
		"metadata_total_books":    metadata.TotalBooks,
		"metadata_average_rating": metadata.AverageRating,
		"metadata_genres":         metadata.Genres,
	}).Error
}

// AdjustLikes applies the delta as a single atomic statement clamped at
// zero, then reads back the counter. Concurrent likes cannot lose
// updates the way a read-modify-write cycle could.
func (r *listRepository) AdjustLikes(listID int64, delta int) (int, error) {
	err := r.db.Model(&models.List{}).
		Where("id = ?", listID).
		UpdateColumn("likes", gorm.Expr("GREATEST(likes + ?, 0)", delta)).Error
	if err != nil {
		return 0, err
	}

	var likes int
	err = r.db.Model(&models.List{}).
		Select("likes").
		Where("id = ?", listID).
		Scan(&likes).Error
	return likes, err
}
