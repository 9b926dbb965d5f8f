package service

import (
	"bookstop/internal/httpapi/models"
	"bookstop/internal/httpapi/repository"

	"github.com/stretchr/testify/mock"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(book *models.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(id int64) (*models.Book, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByIDs(ids []int64) ([]models.Book, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByISBN(isbn string) (*models.Book, error) {
	args := m.Called(isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByExternalID(googleBooksID, openLibraryID string) (*models.Book, error) {
	args := m.Called(googleBooksID, openLibraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Update(book *models.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

// MockUserBookRepository mocks the UserBookRepository interface
type MockUserBookRepository struct {
	mock.Mock
}

func (m *MockUserBookRepository) GetByUserAndBook(userID string, bookID int64) (*models.UserBook, error) {
	args := m.Called(userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBook), args.Error(1)
}

func (m *MockUserBookRepository) Upsert(entry *models.UserBook) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockUserBookRepository) ListByUser(userID, status string, page, pageSize int) ([]models.UserBook, int64, error) {
	args := m.Called(userID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.UserBook), args.Get(1).(int64), args.Error(2)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(id int64) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) AppendEdit(edit *models.ReviewEdit) error {
	args := m.Called(edit)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewRepository) List(filter repository.ReviewFilter, page, pageSize int, sortBy, sortOrder string) ([]models.Review, int64, error) {
	args := m.Called(filter, page, pageSize, sortBy, sortOrder)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RatingStats(bookID int64) (float64, int64, error) {
	args := m.Called(bookID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockListRepository mocks the ListRepository interface
type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Create(list *models.List) error {
	args := m.Called(list)
	return args.Error(0)
}

func (m *MockListRepository) GetByID(id int64) (*models.List, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.List), args.Error(1)
}

func (m *MockListRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockListRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockListRepository) List(filter repository.ListFilter, page, pageSize int) ([]models.List, int64, error) {
	args := m.Called(filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.List), args.Get(1).(int64), args.Error(2)
}

func (m *MockListRepository) Search(query, viewerID string, page, pageSize int) ([]models.List, int64, error) {
	args := m.Called(query, viewerID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.List), args.Get(1).(int64), args.Error(2)
}

func (m *MockListRepository) AddBook(entry *models.ListBook) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockListRepository) RemoveBook(listID, bookID int64) (int64, error) {
	args := m.Called(listID, bookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListRepository) GetMembers(listID int64) ([]models.ListBook, error) {
	args := m.Called(listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ListBook), args.Error(1)
}

func (m *MockListRepository) UpdateOrder(listID, bookID int64, order int) error {
	args := m.Called(listID, bookID, order)
	return args.Error(0)
}

func (m *MockListRepository) UpdateMetadata(listID int64, metadata models.ListMetadata) error {
	args := m.Called(listID, metadata)
	return args.Error(0)
}

func (m *MockListRepository) AdjustLikes(listID int64, delta int) (int, error) {
	args := m.Called(listID, delta)
	return args.Get(0).(int), args.Error(1)
}
