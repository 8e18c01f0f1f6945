package dto

import (
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExtractedFieldsDTO carries the confidence-gated values the client should
// pre-fill into the draft form. Fields that did not clear the threshold are nil.
type ExtractedFieldsDTO struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	CategoryID  *string          `json:"categoryID,omitempty"`
}

// ReceiptAnalysisDTO surfaces the gated values together with the raw
// per-field confidences for UI display.
type ReceiptAnalysisDTO struct {
	Fields          ExtractedFieldsDTO     `json:"fields"`
	Confidence      float64                `json:"confidence"`
	FieldConfidence domain.FieldConfidence `json:"fieldConfidence"`
}

// ProcessReceiptResponse is the merged best-effort result of the intake
// pipeline. Either branch may be absent without the other failing.
type ProcessReceiptResponse struct {
	Receipt  *ReceiptRefDTO      `json:"receipt,omitempty"`
	Analysis *ReceiptAnalysisDTO `json:"analysis,omitempty"`
	Warning  string              `json:"warning,omitempty"` // Set when manual entry is required
}

// DiscardReceiptRequest identifies a stored receipt to delete after the user
// abandons a draft.
type DiscardReceiptRequest struct {
	StorageID string `json:"storageID" binding:"required"`
}
