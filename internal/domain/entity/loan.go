package entity

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the stored lifecycle state of a loan.
type LoanStatus string

// Loan lifecycle states. RETURNED is terminal. OVERDUE is an optional cache
// written by a periodic sweep; the authoritative overdue signal is the
// read-time derivation in IsOverdue.
const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
	LoanStatusOverdue  LoanStatus = "overdue"
)

// DefaultPenaltyPerDay is the fixed-rate penalty charged per whole calendar
// day of lateness. The value and the two-decimal rounding must match across
// deployments for compatibility.
const DefaultPenaltyPerDay = 0.5

// DefaultExtensionDays is the default due-date advance applied by Extend.
const DefaultExtensionDays = 7

// Loan records one borrower holding one copy of a book. ReturnedAt is set
// if and only if Status is RETURNED; MarkReturned is the only place the two
// fields change, and it changes them together.
type Loan struct {
	ID               uuid.UUID
	BookID           uuid.UUID
	BorrowerFullName string
	BorrowerEmail    string
	CardNumber       string // Library card number of the borrower.
	LoanedAt         time.Time
	DueAt            *time.Time // Nil when no due date was set.
	ReturnedAt       *time.Time // Nil until the loan is returned.
	Status           LoanStatus
	LibrarianNotes   string
}

// IsOverdue reports whether the loan is overdue at the given instant. The
// stored OVERDUE status counts, as does an unreturned loan whose due date
// has passed; the stored value and the derived one may diverge until a
// sweep reconciles them.
func (l *Loan) IsOverdue(now time.Time) bool {
	if l.Status == LoanStatusOverdue {
		return true
	}

	return l.ReturnedAt == nil && l.DueAt != nil && now.After(*l.DueAt)
}

// LateDays returns the number of whole calendar days the loan is (or was)
// late at the given instant. The effective end time is the return time if
// returned, otherwise now. The result is never negative.
func (l *Loan) LateDays(now time.Time) int {
	end := now
	if l.ReturnedAt != nil {
		end = *l.ReturnedAt
	}
	if l.DueAt == nil || !end.After(*l.DueAt) {
		return 0
	}

	days := int(startOfDay(end).Sub(startOfDay(*l.DueAt)).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}

// PenaltyAmount returns the monetary penalty owed at the given instant:
// ratePerDay per whole late day, rounded to two decimals.
func (l *Loan) PenaltyAmount(now time.Time, ratePerDay float64) float64 {
	return round2(float64(l.LateDays(now)) * ratePerDay)
}

// MarkReturned transitions the loan to RETURNED, stamping ReturnedAt with
// the given instant. It is idempotent: a loan already RETURNED is left
// untouched and false is reported, so callers can skip the persistence
// write and the availability increment.
func (l *Loan) MarkReturned(now time.Time) bool {
	if l.Status == LoanStatusReturned {
		return false
	}
	l.ReturnedAt = &now
	l.Status = LoanStatusReturned

	return true
}

// Extend advances the due date by the given number of days and reports
// whether anything changed. A loan without a due date is left untouched.
// No upper bound on repeated extension is enforced here; that policy is
// deliberately left to configuration.
func (l *Loan) Extend(days int) bool {
	if l.DueAt == nil {
		return false
	}
	extended := l.DueAt.AddDate(0, 0, days)
	l.DueAt = &extended

	return true
}

// startOfDay truncates t to midnight in its own location, so late-day
// arithmetic compares calendar dates rather than raw durations.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
