package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(total, available int) *Book {
	return &Book{
		ISBN:            "9781234567890",
		Title:           "Le Comte de Monte-Cristo",
		Language:        LanguageFR,
		TotalCopies:     total,
		AvailableCopies: available,
	}
}

func TestBook_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *Book)
		wantField string
	}{
		{
			name:   "valid book",
			mutate: func(b *Book) {},
		},
		{
			name:      "isbn too short",
			mutate:    func(b *Book) { b.ISBN = "12345" },
			wantField: "isbn",
		},
		{
			name:      "unsupported language",
			mutate:    func(b *Book) { b.Language = "KLINGON" },
			wantField: "language",
		},
		{
			name:      "negative total",
			mutate:    func(b *Book) { b.TotalCopies = -1; b.AvailableCopies = -1 },
			wantField: "total_copies",
		},
		{
			name:      "negative available",
			mutate:    func(b *Book) { b.AvailableCopies = -1 },
			wantField: "available_copies",
		},
		{
			name:      "available exceeds total",
			mutate:    func(b *Book) { b.AvailableCopies = 5 },
			wantField: "available_copies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := newTestBook(3, 3)
			tt.mutate(book)

			err := book.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)

				return
			}

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestBook_IsAvailable(t *testing.T) {
	assert.True(t, newTestBook(3, 1).IsAvailable())
	assert.False(t, newTestBook(3, 0).IsAvailable())
}

func TestBook_DecrementAvailable(t *testing.T) {
	book := newTestBook(3, 3)

	require.NoError(t, book.DecrementAvailable(2))
	assert.Equal(t, 1, book.AvailableCopies)

	// Asking for more than is left fails and leaves the counter untouched.
	err := book.DecrementAvailable(2)
	require.ErrorIs(t, err, ErrInsufficientCopies)
	assert.Equal(t, 1, book.AvailableCopies)

	// A qty below 1 is a no-op, not an error.
	require.NoError(t, book.DecrementAvailable(0))
	require.NoError(t, book.DecrementAvailable(-5))
	assert.Equal(t, 1, book.AvailableCopies)
}

func TestBook_IncrementAvailable_ClampsAtTotal(t *testing.T) {
	book := newTestBook(3, 1)

	book.IncrementAvailable(5)
	assert.Equal(t, 3, book.AvailableCopies)

	book.IncrementAvailable(0)
	book.IncrementAvailable(-1)
	assert.Equal(t, 3, book.AvailableCopies)
}

func TestBook_AvailabilityInvariantHolds(t *testing.T) {
	book := newTestBook(3, 3)

	// Starting at 3/3: take 2, refuse a further 2, clamp on a return of 5.
	require.NoError(t, book.DecrementAvailable(2))
	assert.Equal(t, 1, book.AvailableCopies)

	require.ErrorIs(t, book.DecrementAvailable(2), ErrInsufficientCopies)

	book.IncrementAvailable(5)
	assert.Equal(t, 3, book.AvailableCopies)

	assert.GreaterOrEqual(t, book.AvailableCopies, 0)
	assert.LessOrEqual(t, book.AvailableCopies, book.TotalCopies)
}

func TestBook_OccupancyRate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		want      float64
	}{
		{name: "no copies at all", total: 0, available: 0, want: 0},
		{name: "fully available", total: 4, available: 4, want: 0},
		{name: "fully loaned out", total: 4, available: 0, want: 100},
		{name: "one third out", total: 3, available: 2, want: 33.33},
		{name: "two thirds out", total: 3, available: 1, want: 66.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := newTestBook(tt.total, tt.available)
			assert.InDelta(t, tt.want, book.OccupancyRate(), 0.0001)
		})
	}
}
