package service

import (
	"testing"
	"time"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const (
	testUserID = "user-id"
	testISBN   = "9780140328721"
)

func testBook() *models.Book {
	return &models.Book{ID: 1, Title: "Matilda", ISBN: testISBN}
}

// setStatusHarness wires the common mock plumbing: book lookup, no
// existing entry, upsert capture, reload.
func setStatusHarness(t *testing.T, existing *models.UserBook) (*MockUserBookRepository, *MockBookRepository, UserBookService, **models.UserBook) {
	t.Helper()
	mockUB := new(MockUserBookRepository)
	mockBooks := new(MockBookRepository)
	svc := NewUserBookService(mockUB, mockBooks)

	mockBooks.On("GetByISBN", testISBN).Return(testBook(), nil)

	if existing != nil {
		mockUB.On("GetByUserAndBook", testUserID, int64(1)).Return(existing, nil).Once()
	} else {
		mockUB.On("GetByUserAndBook", testUserID, int64(1)).Return(nil, gorm.ErrRecordNotFound).Once()
	}

	captured := new(*models.UserBook)
	mockUB.On("Upsert", mock.AnythingOfType("*models.UserBook")).Run(func(args mock.Arguments) {
		*captured = args.Get(0).(*models.UserBook)
	}).Return(nil)

	// reload after upsert
	mockUB.On("GetByUserAndBook", testUserID, int64(1)).Return(&models.UserBook{UserID: testUserID, BookID: 1}, nil)

	return mockUB, mockBooks, svc, captured
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc := NewUserBookService(new(MockUserBookRepository), new(MockBookRepository))

	entry, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{Status: "finished"})

	assert.Nil(t, entry)
	assert.True(t, IsValidation(err))
}

func TestSetStatus_InvalidRating(t *testing.T) {
	svc := NewUserBookService(new(MockUserBookRepository), new(MockBookRepository))

	rating := 6
	entry, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{
		Status: models.StatusRead,
		Rating: &rating,
	})

	assert.Nil(t, entry)
	assert.True(t, IsValidation(err))
}

func TestSetStatus_BookNotFound(t *testing.T) {
	mockUB := new(MockUserBookRepository)
	mockBooks := new(MockBookRepository)
	svc := NewUserBookService(mockUB, mockBooks)

	mockBooks.On("GetByISBN", "0000000000").Return(nil, gorm.ErrRecordNotFound)

	entry, err := svc.SetStatus(testUserID, "0000000000", dto.UpdateStatusRequest{Status: models.StatusReading})

	assert.Nil(t, entry)
	assert.Equal(t, ErrBookNotFound, err)
	mockBooks.AssertExpectations(t)
}

func TestSetStatus_NewEntry(t *testing.T) {
	mockUB, mockBooks, svc, captured := setStatusHarness(t, nil)

	entry, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{Status: models.StatusPlanToRead})

	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, models.StatusPlanToRead, (*captured).Status)
	assert.False(t, (*captured).Dates.AddedToList.IsZero())
	assert.Nil(t, (*captured).Dates.StartedReading)
	assert.Nil(t, (*captured).Dates.FinishedReading)
	mockUB.AssertExpectations(t)
	mockBooks.AssertExpectations(t)
}

func TestSetStatus_ReadingSetsStartedWhenUnset(t *testing.T) {
	_, _, svc, captured := setStatusHarness(t, nil)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{Status: models.StatusReading})

	assert.NoError(t, err)
	assert.NotNil(t, (*captured).Dates.StartedReading)
	assert.Nil(t, (*captured).Dates.FinishedReading)
}

func TestSetStatus_ReadingKeepsExistingStartDate(t *testing.T) {
	started := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	existing := &models.UserBook{
		UserID: testUserID,
		BookID: 1,
		Status: models.StatusPlanToRead,
		Dates:  models.ReadingDates{StartedReading: &started, AddedToList: started},
	}
	_, _, svc, captured := setStatusHarness(t, existing)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{Status: models.StatusReading})

	assert.NoError(t, err)
	assert.Equal(t, started, *(*captured).Dates.StartedReading)
}

func TestSetStatus_ReadSetsFinishedAndBackfillsStarted(t *testing.T) {
	_, _, svc, captured := setStatusHarness(t, nil)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{Status: models.StatusRead})

	assert.NoError(t, err)
	assert.NotNil(t, (*captured).Dates.FinishedReading)
	assert.NotNil(t, (*captured).Dates.StartedReading)
}

func TestSetStatus_ProgressPercentage(t *testing.T) {
	current, total := 50, 200
	_, _, svc, captured := setStatusHarness(t, nil)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{
		Status:      models.StatusReading,
		CurrentPage: &current,
		TotalPages:  &total,
	})

	assert.NoError(t, err)
	assert.Equal(t, 25, (*captured).Progress.Percentage)
}

func TestSetStatus_ProgressBeyondTotal(t *testing.T) {
	// reread past the page count is stored as-is, not capped
	current, total := 150, 100
	_, _, svc, captured := setStatusHarness(t, nil)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{
		Status:      models.StatusReading,
		CurrentPage: &current,
		TotalPages:  &total,
	})

	assert.NoError(t, err)
	assert.Equal(t, 150, (*captured).Progress.Percentage)
}

func TestSetStatus_NoTotalPagesMeansZeroPercent(t *testing.T) {
	current := 80
	_, _, svc, captured := setStatusHarness(t, nil)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{
		Status:      models.StatusReading,
		CurrentPage: &current,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, (*captured).Progress.Percentage)
}

func TestSetStatus_KeepsUntouchedFields(t *testing.T) {
	rating := 4
	added := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := &models.UserBook{
		UserID:     testUserID,
		BookID:     1,
		Status:     models.StatusReading,
		IsFavorite: true,
		Rating:     &rating,
		Notes:      "great so far",
		Tags:       []string{"childhood"},
		Dates:      models.ReadingDates{AddedToList: added},
	}
	_, _, svc, captured := setStatusHarness(t, existing)

	_, err := svc.SetStatus(testUserID, testISBN, dto.UpdateStatusRequest{Status: models.StatusRead})

	assert.NoError(t, err)
	assert.True(t, (*captured).IsFavorite)
	assert.Equal(t, 4, *(*captured).Rating)
	assert.Equal(t, "great so far", (*captured).Notes)
	assert.Equal(t, added, (*captured).Dates.AddedToList)
}

func TestProgressPercentage_Rounding(t *testing.T) {
	assert.Equal(t, 33, progressPercentage(1, 3))
	assert.Equal(t, 67, progressPercentage(2, 3))
	assert.Equal(t, 100, progressPercentage(3, 3))
	assert.Equal(t, 0, progressPercentage(5, 0))
	assert.Equal(t, 0, progressPercentage(5, -1))
}

func TestGetStatus_NotInLibrary(t *testing.T) {
	mockUB := new(MockUserBookRepository)
	mockBooks := new(MockBookRepository)
	svc := NewUserBookService(mockUB, mockBooks)

	mockBooks.On("GetByISBN", testISBN).Return(testBook(), nil)
	mockUB.On("GetByUserAndBook", testUserID, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	entry, err := svc.GetStatus(testUserID, testISBN)

	assert.Nil(t, entry)
	assert.Equal(t, ErrStatusNotFound, err)
}

func TestGetStatus_UnknownBook(t *testing.T) {
	mockUB := new(MockUserBookRepository)
	mockBooks := new(MockBookRepository)
	svc := NewUserBookService(mockUB, mockBooks)

	mockBooks.On("GetByISBN", testISBN).Return(nil, gorm.ErrRecordNotFound)

	entry, err := svc.GetStatus(testUserID, testISBN)

	assert.Nil(t, entry)
	assert.Equal(t, ErrBookNotFound, err)
}

func TestListUserBooks_InvalidStatusFilter(t *testing.T) {
	svc := NewUserBookService(new(MockUserBookRepository), new(MockBookRepository))

	entries, total, err := svc.ListUserBooks(testUserID, "abandoned", 1, 20)

	assert.Nil(t, entries)
	assert.Zero(t, total)
	assert.True(t, IsValidation(err))
}

func TestListUserBooks_PassesFilterThrough(t *testing.T) {
	mockUB := new(MockUserBookRepository)
	svc := NewUserBookService(mockUB, new(MockBookRepository))

	mockUB.On("ListByUser", testUserID, models.StatusReading, 2, 10).
		Return([]models.UserBook{{UserID: testUserID, BookID: 1}}, int64(11), nil)

	entries, total, err := svc.ListUserBooks(testUserID, models.StatusReading, 2, 10)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(11), total)
	mockUB.AssertExpectations(t)
}
