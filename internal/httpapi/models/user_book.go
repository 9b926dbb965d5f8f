package models

import (
	"time"

	"github.com/lib/pq"
)

// Reading status values for a user-book pair.
const (
	StatusRead       = "read"
	StatusReading    = "reading"
	StatusPlanToRead = "plan-to-read"
	StatusUndefined  = "undefined"
)

// ValidStatus reports whether s is one of the accepted reading states.
func ValidStatus(s string) bool {
	switch s {
	case StatusRead, StatusReading, StatusPlanToRead, StatusUndefined:
		return true
	}
	return false
}

// Progress tracks how far a user is into a book. Percentage is derived
// from CurrentPage/TotalPages on every write and is not capped at 100.
type Progress struct {
	CurrentPage int `gorm:"default:0" json:"currentPage"`
	TotalPages  int `gorm:"default:0" json:"totalPages"`
	Percentage  int `gorm:"default:0" json:"percentage"`
}

type ReadingDates struct {
	StartedReading  *time.Time `json:"startedReading"`
	FinishedReading *time.Time `json:"finishedReading"`
	AddedToList     time.Time  `json:"addedToList"`
}

// UserBook holds the per-(user, book) reading state. One row per pair,
// written only through upserts keyed on the composite primary key.
type UserBook struct {
	UserID     string         `gorm:"type:uuid;not null;primaryKey;index:idx_user_book" json:"user_id"`
	BookID     int64          `gorm:"not null;primaryKey;index:idx_user_book" json:"book_id"`
	Status     string         `gorm:"type:text;not null;index:idx_user_status" json:"status"`
	IsFavorite bool           `gorm:"default:false" json:"isFavorite"`
	Rating     *int           `json:"rating"`
	Notes      string         `gorm:"size:1000;default:''" json:"notes"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	Progress   Progress       `gorm:"embedded;embeddedPrefix:progress_" json:"progress"`
	Dates      ReadingDates   `gorm:"embedded" json:"dates"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"book,omitempty"`
}

func (UserBook) TableName() string {
	return "user_books"
}
