// Package entity contains the core business objects of the catalogue,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Author represents a person who wrote one or more books in the catalogue.
// The natural identity is the (FirstName, LastName, BirthDate) triple; the
// storage layer enforces its uniqueness.
type Author struct {
	ID          uuid.UUID  // Surrogate identifier assigned at creation.
	FirstName   string     // Given name, part of the natural key.
	LastName    string     // Family name, part of the natural key.
	BirthDate   time.Time  // Date of birth, part of the natural key.
	Nationality string     // Free-text nationality.
	Bio         string     // Biography, may be empty.
	DeathDate   *time.Time // Nil while the author is alive.
	Website     string     // Optional personal website URL.
	PhotoURL    string     // Optional reference to a stored portrait.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName returns the display name used in listings.
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}
