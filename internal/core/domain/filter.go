package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseFilter is a conjunction of optional predicates over expenses.
// Nil fields are not applied. Role scoping is not part of the filter; it is
// enforced before filtering and cannot be expressed (or bypassed) here.
type ExpenseFilter struct {
	State        *ExpenseState
	DepartmentID *string
	CategoryID   *string
	DateFrom     *time.Time // Closed interval on claim date
	DateTo       *time.Time
	AmountMin    *decimal.Decimal // Closed interval on converted amount
	AmountMax    *decimal.Decimal
	Text         *string // Case-insensitive substring on description
}

// IsEmpty reports whether no predicate is set.
func (f ExpenseFilter) IsEmpty() bool {
	return f.State == nil && f.DepartmentID == nil && f.CategoryID == nil &&
		f.DateFrom == nil && f.DateTo == nil &&
		f.AmountMin == nil && f.AmountMax == nil && f.Text == nil
}

// Matches reports whether the expense satisfies every set predicate.
func (f ExpenseFilter) Matches(e Expense) bool {
	if f.State != nil && e.State != *f.State {
		return false
	}
	if f.DepartmentID != nil && e.DepartmentID != *f.DepartmentID {
		return false
	}
	if f.CategoryID != nil {
		if e.CategoryID == nil || *e.CategoryID != *f.CategoryID {
			return false
		}
	}
	if f.DateFrom != nil && e.ClaimDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.ClaimDate.After(*f.DateTo) {
		return false
	}
	if f.AmountMin != nil && e.ConvertedAmount.LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && e.ConvertedAmount.GreaterThan(*f.AmountMax) {
		return false
	}
	if f.Text != nil {
		if !strings.Contains(strings.ToLower(e.Description), strings.ToLower(*f.Text)) {
			return false
		}
	}
	return true
}

// Apply filters the collection, preserving source order. An empty filter
// returns the input unchanged.
func (f ExpenseFilter) Apply(expenses []Expense) []Expense {
	if f.IsEmpty() {
		return expenses
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
