package entity

import "github.com/google/uuid"

// Category groups books by genre or subject. Names are unique; listings are
// ordered by name.
type Category struct {
	ID          uuid.UUID
	Name        string // Unique display name.
	Description string // Optional free text.
	ImageURL    string // Optional reference to a stored illustration.
}
