package repository

import (
	"bookstop/internal/httpapi/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id int64) (*models.Book, error)
	GetByIDs(ids []int64) ([]models.Book, error)
	GetByISBN(isbn string) (*models.Book, error)
	GetByExternalID(googleBooksID, openLibraryID string) (*models.Book, error)
	Update(book *models.Book) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

func (r *bookRepository) GetByID(id int64) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) GetByIDs(ids []int64) ([]models.Book, error) {
	var books []models.Book
	if len(ids) == 0 {
		return books, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) GetByISBN(isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.db.Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByExternalID finds a book by either of its external catalog ids.
// Empty ids never match.
func (r *bookRepository) GetByExternalID(googleBooksID, openLibraryID string) (*models.Book, error) {
	var book models.Book
	q := r.db
	switch {
	case googleBooksID != "" && openLibraryID != "":
		q = q.Where("google_books_id = ? OR open_library_id = ?", googleBooksID, openLibraryID)
	case googleBooksID != "":
		q = q.Where("google_books_id = ?", googleBooksID)
	case openLibraryID != "":
		q = q.Where("open_library_id = ?", openLibraryID)
	default:
		return nil, gorm.ErrRecordNotFound
	}
	if err := q.First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Update(book *models.Book) error {
	return r.db.Save(book).Error
}
