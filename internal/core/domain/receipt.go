package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldConfidence holds the extractor's per-field confidence scores, each in [0,1].
type FieldConfidence struct {
	Description float64 `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    float64 `json:"currency"`
	Date        float64 `json:"date"`
	Category    float64 `json:"category"`
}

// ReceiptAnalysisResult is the transient output of the external field
// extractor for one receipt image. It is consumed once by the intake
// pipeline and never persisted.
type ReceiptAnalysisResult struct {
	Description       *string          `json:"description,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	Currency          *string          `json:"currency,omitempty"` // ISO 4217 code
	Date              *time.Time       `json:"date,omitempty"`
	SuggestedCategory *string          `json:"suggestedCategory,omitempty"` // Category name as read from the receipt
	CategoryID        *string          `json:"categoryID,omitempty"`        // Matched category, if any
	Confidence        float64          `json:"confidence"`                  // Overall confidence in [0,1]
	FieldConfidence   FieldConfidence  `json:"fieldConfidence"`
}
