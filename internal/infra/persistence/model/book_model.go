package model

import (
	"time"

	"github.com/google/uuid"
)

// BookModel is the GORM-specific struct for the 'books' table. Author and
// category references are RESTRICT so a referenced row cannot be deleted
// out from under a book; the check constraint mirrors the availability
// invariant at the storage boundary.
type BookModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	ISBN            string     `gorm:"type:varchar(13);not null;uniqueIndex"`
	Title           string     `gorm:"type:varchar(255);not null;index"`
	AuthorID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"`
	PublishedDate   time.Time
	Language        string `gorm:"type:varchar(10);not null"`
	Pages           *int
	Publisher       string `gorm:"type:varchar(255)"`
	Description     string `gorm:"type:text"`
	CoverURL        string `gorm:"type:varchar(255)"`
	TotalCopies     int    `gorm:"not null;default:1"`
	AvailableCopies int    `gorm:"not null;default:1;check:available_copies >= 0 AND available_copies <= total_copies"`
	CreatedAt       time.Time

	Author   *AuthorModel   `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (BookModel) TableName() string {
	return "books"
}
