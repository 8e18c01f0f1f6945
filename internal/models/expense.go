package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents an expense row in the database. Receipt and extraction
// columns are nullable; they only exist for expenses created from a receipt.
type Expense struct {
	ExpenseID          string          `db:"expense_id"`
	Description        string          `db:"description"`
	OriginalAmount     decimal.Decimal `db:"original_amount"`
	OriginalCurrency   string          `db:"original_currency"`
	ConvertedAmount    decimal.Decimal `db:"converted_amount"`
	ExchangeRate       decimal.Decimal `db:"exchange_rate"`
	State              string          `db:"state"`
	ClaimDate          time.Time       `db:"claim_date"`
	OwnerID            string          `db:"owner_id"`
	DepartmentID       string          `db:"department_id"`
	CategoryID         *string         `db:"category_id"` // Nullable
	ReceiptStorageID   *string         `db:"receipt_storage_id"`
	ReceiptURL         *string         `db:"receipt_url"`
	ReceiptDisplayName *string         `db:"receipt_display_name"`
	Analyzed           bool            `db:"analyzed"`
	Confidence         *float64        `db:"confidence"`
	AuditFields
}
