package models

import (
	"time"

	"github.com/lib/pq"
)

// Book is a catalog record persisted the first time a search result is
// viewed. Only description and cover image are backfilled after creation;
// books are never deleted by the normal flow.
type Book struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title          string         `json:"title" gorm:"not null"`
	Authors        pq.StringArray `json:"authors" gorm:"type:text[]"`
	ISBN           string         `json:"isbn" gorm:"index"`
	LCCN           pq.StringArray `json:"lccn" gorm:"type:text[]"`
	Description    string         `json:"description" gorm:"type:text;default:''"`
	CoverImage     *string        `json:"cover_image,omitempty"`
	PublishedYear  *int           `json:"published_year,omitempty"`
	PageCount      int            `json:"page_count" gorm:"default:0"`
	Languages      pq.StringArray `json:"languages" gorm:"type:text[]"`
	Subjects       pq.StringArray `json:"subjects" gorm:"type:text[]"`
	RatingsAverage *float64       `json:"ratings_average,omitempty" gorm:"type:decimal(3,2)"`

	// External identifiers
	GoogleBooksID *string `json:"google_books_id,omitempty" gorm:"index"`
	GoodreadsID   *string `json:"goodreads_id,omitempty"`
	OpenLibraryID *string `json:"open_library_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}
