// Package model contains the GORM-specific structs mirroring the domain
// entities onto database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthorModel is the GORM-specific struct for the 'authors' table.
// The composite unique index covers the natural identity of an author.
type AuthorModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	FirstName   string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_authors_identity"`
	LastName    string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_authors_identity"`
	BirthDate   time.Time `gorm:"not null;uniqueIndex:uq_authors_identity"`
	Nationality string    `gorm:"type:varchar(100)"`
	Bio         string    `gorm:"type:text"`
	DeathDate   *time.Time
	Website     string `gorm:"type:varchar(255)"`
	PhotoURL    string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AuthorModel) TableName() string {
	return "authors"
}
