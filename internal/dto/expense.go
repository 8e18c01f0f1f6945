package dto

import (
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptRefDTO mirrors domain.ReceiptRef for transport.
type ReceiptRefDTO struct {
	StorageID   string `json:"storageID" binding:"required"`
	URL         string `json:"url"`
	DisplayName string `json:"displayName"`
}

// CreateExpenseRequest defines the data needed to create a new draft expense.
type CreateExpenseRequest struct {
	Description      string          `json:"description" binding:"required,notblank"`
	OriginalAmount   decimal.Decimal `json:"originalAmount" binding:"required"`
	OriginalCurrency string          `json:"originalCurrency" binding:"required,iso4217"`
	ClaimDate        time.Time       `json:"claimDate" binding:"required"`
	CategoryID       *string         `json:"categoryID"` // Optional
	Receipt          *ReceiptRefDTO  `json:"receipt"`    // Optional, from a prior intake pipeline run
	AnalysisApplied  bool            `json:"analysisApplied"`
	Confidence       float64         `json:"confidence"` // Overall extraction confidence, display only
}

// UpdateExpenseRequest defines the fields editable while an expense is a draft.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateExpenseRequest struct {
	Description      *string          `json:"description"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount"`
	OriginalCurrency *string          `json:"originalCurrency" binding:"omitempty,iso4217"`
	ClaimDate        *time.Time       `json:"claimDate"`
	CategoryID       *string          `json:"categoryID"`
}

// RejectExpenseRequest carries the mandatory rejection comment.
type RejectExpenseRequest struct {
	Comment string `json:"comment" binding:"required,notblank"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID        string              `json:"expenseID"`
	Description      string              `json:"description"`
	OriginalAmount   decimal.Decimal     `json:"originalAmount"`
	OriginalCurrency string              `json:"originalCurrency"`
	ConvertedAmount  decimal.Decimal     `json:"convertedAmount"`
	ExchangeRate     decimal.Decimal     `json:"exchangeRate"`
	State            domain.ExpenseState `json:"state"`
	ClaimDate        time.Time           `json:"claimDate"`
	OwnerID          string              `json:"ownerID"`
	DepartmentID     string              `json:"departmentID"`
	CategoryID       *string             `json:"categoryID,omitempty"`
	Receipt          *ReceiptRefDTO      `json:"receipt,omitempty"`
	Analyzed         bool                `json:"analyzed"`
	Confidence       float64             `json:"confidence,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:        e.ExpenseID,
		Description:      e.Description,
		OriginalAmount:   e.OriginalAmount,
		OriginalCurrency: e.OriginalCurrency,
		ConvertedAmount:  e.ConvertedAmount,
		ExchangeRate:     e.ExchangeRate,
		State:            e.State,
		ClaimDate:        e.ClaimDate,
		OwnerID:          e.OwnerID,
		DepartmentID:     e.DepartmentID,
		CategoryID:       e.CategoryID,
		CreatedAt:        e.CreatedAt,
		LastUpdatedAt:    e.LastUpdatedAt,
	}
	if e.Receipt != nil {
		resp.Receipt = &ReceiptRefDTO{
			StorageID:   e.Receipt.StorageID,
			URL:         e.Receipt.URL,
			DisplayName: e.Receipt.DisplayName,
		}
	}
	if e.Extraction != nil {
		resp.Analyzed = e.Extraction.Analyzed
		resp.Confidence = e.Extraction.Confidence
	}
	return resp
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// ListExpensesParams defines query parameters for listing expenses.
// The filter fields form a conjunction; all are optional.
type ListExpensesParams struct {
	Limit        int              `form:"limit,default=20"`
	NextToken    *string          `form:"nextToken"`
	State        *string          `form:"state" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL APPROVED REJECTED"`
	DepartmentID *string          `form:"departmentID"`
	CategoryID   *string          `form:"categoryID"`
	DateFrom     *time.Time       `form:"dateFrom" time_format:"2006-01-02"`
	DateTo       *time.Time       `form:"dateTo" time_format:"2006-01-02"`
	AmountMin    *decimal.Decimal `form:"amountMin"`
	AmountMax    *decimal.Decimal `form:"amountMax"`
	Text         *string          `form:"text"`
}

// ToFilter converts the user-supplied query parameters into the domain filter.
// Role scoping is deliberately not derivable from these parameters.
func (p ListExpensesParams) ToFilter() domain.ExpenseFilter {
	f := domain.ExpenseFilter{
		DepartmentID: p.DepartmentID,
		CategoryID:   p.CategoryID,
		DateFrom:     p.DateFrom,
		DateTo:       p.DateTo,
		AmountMin:    p.AmountMin,
		AmountMax:    p.AmountMax,
		Text:         p.Text,
	}
	if p.State != nil {
		state := domain.ExpenseState(*p.State)
		f.State = &state
	}
	return f
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// AuditEntryResponse defines the data returned for one audit trail entry.
type AuditEntryResponse struct {
	AuditID       string              `json:"auditID"`
	ExpenseID     string              `json:"expenseID"`
	PreviousState domain.ExpenseState `json:"previousState"`
	NewState      domain.ExpenseState `json:"newState"`
	ActorID       string              `json:"actorID"`
	ActorRole     domain.UserRole     `json:"actorRole"`
	Comment       string              `json:"comment,omitempty"`
	OccurredAt    time.Time           `json:"occurredAt"`
}

// ToAuditEntryResponses converts a slice of domain audit entries.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditEntryResponse{
			AuditID:       e.AuditID,
			ExpenseID:     e.ExpenseID,
			PreviousState: e.PreviousState,
			NewState:      e.NewState,
			ActorID:       e.ActorID,
			ActorRole:     e.ActorRole,
			Comment:       e.Comment,
			OccurredAt:    e.OccurredAt,
		}
	}
	return res
}
