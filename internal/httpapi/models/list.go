package models

import (
	"time"

	"github.com/lib/pq"
)

// List visibility values. "friends" reads identically to "private": there
// is no friend graph.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityFriends = "friends"
)

func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFriends:
		return true
	}
	return false
}

// ListMetadata is derived from the current membership and recomputed in
// full after every membership change.
type ListMetadata struct {
	TotalBooks    int            `gorm:"default:0" json:"totalBooks"`
	AverageRating float64        `gorm:"default:0" json:"averageRating"`
	Genres        pq.StringArray `gorm:"type:text[]" json:"genres"`
}

type List struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string         `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"not null;size:100"`
	Description string         `json:"description" gorm:"size:1000;default:''"`
	Visibility  string         `json:"visibility" gorm:"type:text;not null;default:'public';index"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Followers   int            `json:"followers" gorm:"default:0"`
	Likes       int            `json:"likes" gorm:"default:0"`
	Metadata    ListMetadata   `json:"metadata" gorm:"embedded;embeddedPrefix:metadata_"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Books []ListBook `json:"books" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;"`
}

func (List) TableName() string {
	return "lists"
}

// ListBook is one membership row of a list. The unique index backs the
// no-duplicate-membership rule; SortOrder drives the display order.
type ListBook struct {
	ID        int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	ListID    int64     `json:"-" gorm:"not null;uniqueIndex:idx_list_book;index"`
	BookID    int64     `json:"bookId" gorm:"not null;uniqueIndex:idx_list_book"`
	Note      string    `json:"note" gorm:"size:500;default:''"`
	SortOrder int       `json:"order" gorm:"default:0"`
	AddedAt   time.Time `json:"addedAt" gorm:"autoCreateTime"`

	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (ListBook) TableName() string {
	return "list_books"
}
