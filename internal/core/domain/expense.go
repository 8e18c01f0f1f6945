package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseState indicates where an expense sits in its approval lifecycle.
//
// Valid transitions:
//
//	DRAFT -> PENDING_APPROVAL -> APPROVED
//	                          -> REJECTED -> PENDING_APPROVAL (resubmission)
//
// APPROVED is terminal.
type ExpenseState string

const (
	StateDraft           ExpenseState = "DRAFT"
	StatePendingApproval ExpenseState = "PENDING_APPROVAL"
	StateApproved        ExpenseState = "APPROVED"
	StateRejected        ExpenseState = "REJECTED"
)

// CountsTowardsSpend reports whether an expense in this state is included
// in budget aggregation. Drafts are not yet claims and rejected expenses
// never consume budget.
func (s ExpenseState) CountsTowardsSpend() bool {
	return s == StatePendingApproval || s == StateApproved
}

// ReceiptRef points at a receipt image held by the external receipt storage.
type ReceiptRef struct {
	StorageID   string `json:"storageID"` // Identifier within the storage backend
	URL         string `json:"url"`       // Public viewing URL
	DisplayName string `json:"displayName"`
}

// ExtractionInfo records AI provenance for an expense whose fields were
// pre-filled from a receipt image.
type ExtractionInfo struct {
	Analyzed   bool    `json:"analyzed"`
	Confidence float64 `json:"confidence"` // Overall confidence in [0,1]
}

// Expense represents a single corporate expense claim.
type Expense struct {
	ExpenseID        string          `json:"expenseID"` // Primary Key (e.g., UUID)
	Description      string          `json:"description"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`   // In OriginalCurrency, always > 0
	OriginalCurrency string          `json:"originalCurrency"` // ISO 4217 code
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`  // Reporting currency (EUR), resolved upstream
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`     // Rate used for the conversion
	State            ExpenseState    `json:"state"`
	ClaimDate        time.Time       `json:"claimDate"` // Date the expense was incurred
	OwnerID          string          `json:"ownerID"`
	DepartmentID     string          `json:"departmentID"`          // Denormalized from the owner at creation
	CategoryID       *string         `json:"categoryID,omitempty"`  // Optional
	Receipt          *ReceiptRef     `json:"receipt,omitempty"`     // Optional attached receipt
	Extraction       *ExtractionInfo `json:"extraction,omitempty"`  // Set when fields came from AI analysis
	AuditFields
}
