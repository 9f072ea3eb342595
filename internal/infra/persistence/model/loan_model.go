package model

import (
	"time"

	"github.com/google/uuid"
)

// LoanModel is the GORM-specific struct for the 'loans' table. The book
// reference cascades: when a book is removed its loan history goes with it.
// The application refuses the delete while ACTIVE loans exist, so the
// cascade only ever clears closed history.
type LoanModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key"`
	BookID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	BorrowerFullName string     `gorm:"type:varchar(255);not null"`
	BorrowerEmail    string     `gorm:"type:varchar(255);not null;index"`
	CardNumber       string     `gorm:"type:varchar(50);not null;index"`
	LoanedAt         time.Time  `gorm:"not null"`
	DueAt            *time.Time `gorm:"index"`
	ReturnedAt       *time.Time
	Status           string `gorm:"type:varchar(20);not null;index"`
	LibrarianNotes   string `gorm:"type:text"`

	Book *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (LoanModel) TableName() string {
	return "loans"
}
