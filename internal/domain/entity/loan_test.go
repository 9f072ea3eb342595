package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loanTestNow = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestLoan(dueAt *time.Time) *Loan {
	return &Loan{
		BookID:           uuid.New(),
		BorrowerFullName: "Marie Curie",
		BorrowerEmail:    "marie@example.org",
		CardNumber:       "C-00042",
		LoanedAt:         loanTestNow.AddDate(0, 0, -14),
		DueAt:            dueAt,
		Status:           LoanStatusActive,
	}
}

func daysAgo(days int) *time.Time {
	t := loanTestNow.AddDate(0, 0, -days)

	return &t
}

func TestLoan_IsOverdue(t *testing.T) {
	t.Run("no due date", func(t *testing.T) {
		assert.False(t, newTestLoan(nil).IsOverdue(loanTestNow))
	})

	t.Run("due date in the future", func(t *testing.T) {
		future := loanTestNow.AddDate(0, 0, 3)
		assert.False(t, newTestLoan(&future).IsOverdue(loanTestNow))
	})

	t.Run("due date passed and unreturned", func(t *testing.T) {
		assert.True(t, newTestLoan(daysAgo(3)).IsOverdue(loanTestNow))
	})

	t.Run("returned loans are never derived overdue", func(t *testing.T) {
		loan := newTestLoan(daysAgo(3))
		loan.MarkReturned(loanTestNow)
		assert.False(t, loan.IsOverdue(loanTestNow))
	})

	t.Run("stored overdue status wins regardless of timestamps", func(t *testing.T) {
		future := loanTestNow.AddDate(0, 0, 3)
		loan := newTestLoan(&future)
		loan.Status = LoanStatusOverdue
		assert.True(t, loan.IsOverdue(loanTestNow))
	})
}

func TestLoan_LateDays(t *testing.T) {
	tests := []struct {
		name       string
		dueAt      *time.Time
		returnedAt *time.Time
		want       int
	}{
		{name: "no due date", dueAt: nil, want: 0},
		{name: "not yet due", dueAt: daysAgo(-2), want: 0},
		{name: "due exactly now", dueAt: &loanTestNow, want: 0},
		{name: "three days late", dueAt: daysAgo(3), want: 3},
		{name: "late but same calendar day", dueAt: timePtr(loanTestNow.Add(-2 * time.Hour)), want: 0},
		{name: "returned on time", dueAt: daysAgo(-1), returnedAt: daysAgo(2), want: 0},
		{name: "returned two days late", dueAt: daysAgo(5), returnedAt: daysAgo(3), want: 2},
		{name: "return time caps the count", dueAt: daysAgo(10), returnedAt: daysAgo(9), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := newTestLoan(tt.dueAt)
			if tt.returnedAt != nil {
				loan.ReturnedAt = tt.returnedAt
				loan.Status = LoanStatusReturned
			}
			assert.Equal(t, tt.want, loan.LateDays(loanTestNow))
		})
	}
}

func TestLoan_PenaltyAmount(t *testing.T) {
	// Three days late at the default rate of 0.5 per day.
	loan := newTestLoan(daysAgo(3))
	assert.InDelta(t, 1.5, loan.PenaltyAmount(loanTestNow, DefaultPenaltyPerDay), 0.0001)

	// Not late: no penalty.
	onTime := newTestLoan(daysAgo(-3))
	assert.Zero(t, onTime.PenaltyAmount(loanTestNow, DefaultPenaltyPerDay))
}

func TestLoan_MarkReturned_Idempotent(t *testing.T) {
	loan := newTestLoan(daysAgo(3))

	require.True(t, loan.MarkReturned(loanTestNow))
	require.NotNil(t, loan.ReturnedAt)
	firstReturn := *loan.ReturnedAt
	assert.Equal(t, LoanStatusReturned, loan.Status)

	// A second return is a no-op: same timestamp, same terminal state.
	later := loanTestNow.Add(time.Hour)
	require.False(t, loan.MarkReturned(later))
	assert.Equal(t, firstReturn, *loan.ReturnedAt)
	assert.Equal(t, LoanStatusReturned, loan.Status)
}

func TestLoan_MarkReturned_FromStoredOverdue(t *testing.T) {
	loan := newTestLoan(daysAgo(3))
	loan.Status = LoanStatusOverdue

	require.True(t, loan.MarkReturned(loanTestNow))
	assert.Equal(t, LoanStatusReturned, loan.Status)
	require.NotNil(t, loan.ReturnedAt)
	assert.Equal(t, loanTestNow, *loan.ReturnedAt)
}

func TestLoan_Extend(t *testing.T) {
	t.Run("without due date nothing changes", func(t *testing.T) {
		loan := newTestLoan(nil)
		assert.False(t, loan.Extend(DefaultExtensionDays))
		assert.Nil(t, loan.DueAt)
	})

	t.Run("advances the due date by the given days", func(t *testing.T) {
		due := loanTestNow.AddDate(0, 0, 1)
		loan := newTestLoan(&due)

		require.True(t, loan.Extend(DefaultExtensionDays))
		assert.Equal(t, due.AddDate(0, 0, 7), *loan.DueAt)

		// Repeated extension has no cap.
		require.True(t, loan.Extend(30))
		assert.Equal(t, due.AddDate(0, 0, 37), *loan.DueAt)
	})
}

func timePtr(t time.Time) *time.Time {
	return &t
}
