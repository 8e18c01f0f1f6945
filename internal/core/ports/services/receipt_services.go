package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/dto"
)

// ReceiptSvcFacade is the receipt intake pipeline: concurrent durable storage
// and AI field extraction over one image, merged into a best-effort draft patch.
type ReceiptSvcFacade interface {
	// ProcessReceipt validates the image, then runs the storage and
	// extraction branches concurrently. A failure in either branch degrades
	// the result for that branch only; it never fails the call. Only
	// pre-flight validation errors are returned.
	ProcessReceipt(ctx context.Context, image []byte, contentType string, displayName string, ownerID string) (*dto.ProcessReceiptResponse, error)

	// DiscardReceipt deletes a previously stored receipt when its draft is
	// abandoned. Idempotent: discarding an unknown ref succeeds.
	DiscardReceipt(ctx context.Context, storageID string) error
}
