package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
)

// confidenceThreshold is the minimum per-field confidence required for an
// extracted value to be surfaced to the client. Inclusive: a field at exactly
// this score is kept. Not configurable; changing it silently changes how much
// unreviewed AI output reaches draft forms.
const confidenceThreshold = 0.3

// warnManualEntry is returned to the client whenever the extraction branch
// produced nothing usable and the expense fields must be typed in by hand.
const warnManualEntry = "Automatic extraction is unavailable, please enter the expense details manually"

var (
	ErrEmptyImage      = fmt.Errorf("%w: receipt image is empty", apperrors.ErrValidation)
	ErrImageTooLarge   = fmt.Errorf("%w: receipt image exceeds the maximum allowed size", apperrors.ErrValidation)
	ErrNotAnImage      = fmt.Errorf("%w: receipt must be an image", apperrors.ErrValidation)
	ErrStorageRequired = fmt.Errorf("%w: a storage ID is required", apperrors.ErrValidation)
)

type receiptService struct {
	BaseService
	storage       portsrepo.ReceiptStorage
	extractor     portsrepo.FieldExtractor
	categoryRepo  portsrepo.CategoryRepository
	maxImageBytes int64
	branchTimeout time.Duration
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// NewReceiptService creates a new receipt intake pipeline service.
func NewReceiptService(
	storage portsrepo.ReceiptStorage,
	extractor portsrepo.FieldExtractor,
	categoryRepo portsrepo.CategoryRepository,
	userRepo portsrepo.UserRepository,
	maxImageBytes int64,
	branchTimeout time.Duration,
) portssvc.ReceiptSvcFacade {
	return &receiptService{
		BaseService:   BaseService{userRepo: userRepo},
		storage:       storage,
		extractor:     extractor,
		categoryRepo:  categoryRepo,
		maxImageBytes: maxImageBytes,
		branchTimeout: branchTimeout,
	}
}

// ProcessReceipt runs the storage and extraction branches concurrently over
// one image. The branches are isolated failure domains: either one failing
// degrades only its half of the response, never the whole call. Only
// pre-flight validation rejects the request.
func (s *receiptService) ProcessReceipt(ctx context.Context, image []byte, contentType string, displayName string, ownerID string) (*dto.ProcessReceiptResponse, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}
	if s.maxImageBytes > 0 && int64(len(image)) > s.maxImageBytes {
		return nil, ErrImageTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	var (
		wg         sync.WaitGroup
		receipt    *domain.ReceiptRef
		storeErr   error
		analysis   *domain.ReceiptAnalysisResult
		extractErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, s.branchTimeout)
		defer cancel()
		receipt, storeErr = s.storage.Store(branchCtx, image, contentType, ownerID)
	}()

	go func() {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, s.branchTimeout)
		defer cancel()
		analysis, extractErr = s.extractor.Extract(branchCtx, image, contentType)
	}()

	wg.Wait()

	// The caller walked away mid-flight. If the image already landed in
	// storage it is now orphaned, so undo that upload on a detached context
	// before reporting the cancellation.
	if ctx.Err() != nil {
		if storeErr == nil && receipt != nil {
			s.compensateStore(receipt.StorageID)
		}
		return nil, ctx.Err()
	}

	resp := &dto.ProcessReceiptResponse{}

	if storeErr != nil {
		s.LogError(ctx, storeErr, "Receipt storage branch failed", slog.String("owner_id", ownerID))
	} else {
		resp.Receipt = &dto.ReceiptRefDTO{
			StorageID:   receipt.StorageID,
			URL:         receipt.URL,
			DisplayName: displayName,
		}
	}

	if extractErr != nil || analysis == nil {
		if extractErr != nil {
			s.LogError(ctx, extractErr, "Receipt extraction branch failed", slog.String("owner_id", ownerID))
		}
		resp.Warning = warnManualEntry
	} else {
		resp.Analysis = s.gateAnalysis(ctx, analysis)
	}

	s.LogInfo(ctx, "Receipt processed",
		slog.Bool("stored", resp.Receipt != nil),
		slog.Bool("analyzed", resp.Analysis != nil),
	)
	return resp, nil
}

// gateAnalysis applies the confidence threshold per field and tries to match
// the suggested category name against the active catalog. Low-confidence
// values are dropped, not zeroed, so the client can tell "absent" from "empty".
func (s *receiptService) gateAnalysis(ctx context.Context, analysis *domain.ReceiptAnalysisResult) *dto.ReceiptAnalysisDTO {
	out := &dto.ReceiptAnalysisDTO{
		Confidence:      analysis.Confidence,
		FieldConfidence: analysis.FieldConfidence,
	}

	fc := analysis.FieldConfidence
	if analysis.Description != nil && fc.Description >= confidenceThreshold {
		out.Fields.Description = analysis.Description
	}
	if analysis.Amount != nil && fc.Amount >= confidenceThreshold {
		out.Fields.Amount = analysis.Amount
	}
	if analysis.Currency != nil && fc.Currency >= confidenceThreshold {
		code := strings.ToUpper(*analysis.Currency)
		out.Fields.Currency = &code
	}
	if analysis.Date != nil && fc.Date >= confidenceThreshold {
		out.Fields.Date = analysis.Date
	}
	if fc.Category >= confidenceThreshold {
		out.Fields.CategoryID = s.matchCategory(ctx, analysis)
	}
	return out
}

// matchCategory resolves the extractor's category hint to a known active
// category. A hint that matches nothing is simply dropped.
func (s *receiptService) matchCategory(ctx context.Context, analysis *domain.ReceiptAnalysisResult) *string {
	if analysis.CategoryID != nil {
		return analysis.CategoryID
	}
	if analysis.SuggestedCategory == nil {
		return nil
	}

	categories, err := s.categoryRepo.ListCategories(ctx, true)
	if err != nil {
		s.LogWarn(ctx, "Could not list categories to match extraction hint", slog.String("error", err.Error()))
		return nil
	}
	want := strings.TrimSpace(strings.ToLower(*analysis.SuggestedCategory))
	for _, c := range categories {
		if strings.ToLower(c.Name) == want {
			id := c.CategoryID
			return &id
		}
	}
	return nil
}

// compensateStore deletes an upload whose request was cancelled before the
// client ever learned the storage ID. Best effort on a background context;
// the cancelled request context would kill the delete too.
func (s *receiptService) compensateStore(storageID string) {
	go func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), s.branchTimeout)
		defer cancel()
		if err := s.storage.Delete(cleanupCtx, storageID); err != nil {
			slog.Default().Error("Compensating receipt delete failed",
				slog.String("storage_id", storageID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// DiscardReceipt deletes a stored receipt after its draft was abandoned.
// Discarding a storage ID that no longer exists succeeds; the desired end
// state is "not stored" either way.
func (s *receiptService) DiscardReceipt(ctx context.Context, storageID string) error {
	if strings.TrimSpace(storageID) == "" {
		return ErrStorageRequired
	}
	if err := s.storage.Delete(ctx, storageID); err != nil {
		s.LogError(ctx, err, "Failed to discard receipt", slog.String("storage_id", storageID))
		return fmt.Errorf("failed to discard receipt: %w", apperrors.ErrStorageUnavailable)
	}
	s.LogInfo(ctx, "Receipt discarded", slog.String("storage_id", storageID))
	return nil
}
