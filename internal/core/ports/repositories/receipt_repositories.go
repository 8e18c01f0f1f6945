package repositories

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptStorage is the external durable store for receipt images.
type ReceiptStorage interface {
	// Store uploads the image and returns a reference to it.
	Store(ctx context.Context, image []byte, contentType string, ownerID string) (*domain.ReceiptRef, error)

	// Delete removes a stored receipt. Deleting an unknown or already-deleted
	// storage ID is not an error; implementations must be idempotent.
	Delete(ctx context.Context, storageID string) error
}

// FieldExtractor is the external AI analysis collaborator. Inference itself
// is a black box; this port only consumes its result.
type FieldExtractor interface {
	// Extract analyzes a receipt image and returns per-field values with
	// confidence scores.
	Extract(ctx context.Context, image []byte, contentType string) (*domain.ReceiptAnalysisResult, error)
}

// CurrencyConverter resolves amounts into the reporting currency (EUR).
// It runs upstream of expense creation; created expenses always carry an
// already-converted amount.
type CurrencyConverter interface {
	// RateToEUR returns the conversion rate from the given ISO 4217 code to EUR.
	RateToEUR(ctx context.Context, currencyCode string) (decimal.Decimal, error)

	// ConvertToEUR converts an amount in the given currency to EUR.
	ConvertToEUR(ctx context.Context, amount decimal.Decimal, currencyCode string) (decimal.Decimal, error)
}
