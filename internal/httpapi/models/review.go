package models

import "time"

// Review is the single review a user may hold for a book. The compound
// unique index is the authority on the one-review-per-pair rule; a
// duplicate insert surfaces as a database conflict rather than relying on
// a racy existence pre-check.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_book;index"`
	BookID    int64     `json:"book_id" gorm:"not null;uniqueIndex:idx_review_user_book;index"`
	Title     string    `json:"title" gorm:"size:200;default:''"`
	Content   string    `json:"content" gorm:"size:5000;default:''"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  *User        `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Book  *Book        `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
	Edits []ReviewEdit `json:"editHistory,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewEdit is one snapshot of the previous content, written before the
// content is overwritten. Rows are append-only: never updated or deleted
// while the review exists.
type ReviewEdit struct {
	ID       int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	ReviewID int64     `json:"-" gorm:"not null;index"`
	Content  string    `json:"content" gorm:"size:5000"`
	EditedAt time.Time `json:"editedAt" gorm:"autoCreateTime"`
}

func (ReviewEdit) TableName() string {
	return "review_edits"
}
