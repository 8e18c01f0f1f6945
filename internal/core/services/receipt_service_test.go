package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReceiptServiceTestSuite struct {
	suite.Suite
	mockStorage      *MockReceiptStorage
	mockExtractor    *MockFieldExtractor
	mockCategoryRepo *MockCategoryRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.ReceiptSvcFacade

	image   []byte
	ownerID string
}

func (suite *ReceiptServiceTestSuite) SetupTest() {
	suite.mockStorage = new(MockReceiptStorage)
	suite.mockExtractor = new(MockFieldExtractor)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewReceiptService(
		suite.mockStorage,
		suite.mockExtractor,
		suite.mockCategoryRepo,
		suite.mockUserRepo,
		1<<20,
		2*time.Second,
	)
	suite.image = []byte("fake-jpeg-bytes")
	suite.ownerID = uuid.NewString()
}

func (suite *ReceiptServiceTestSuite) storedRef() *domain.ReceiptRef {
	return &domain.ReceiptRef{
		StorageID: uuid.NewString(),
		URL:       "https://storage.example/receipt.jpg",
	}
}

func analysisWithConfidence(conf float64) *domain.ReceiptAnalysisResult {
	desc := "Taxi to airport"
	amount := decimal.NewFromFloat(23.40)
	currency := "EUR"
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	return &domain.ReceiptAnalysisResult{
		Description: &desc,
		Amount:      &amount,
		Currency:    &currency,
		Date:        &date,
		Confidence:  conf,
		FieldConfidence: domain.FieldConfidence{
			Description: conf,
			Amount:      conf,
			Currency:    conf,
			Date:        conf,
		},
	}
}

// --- Happy path and branch isolation ---

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_BothBranchesSucceed() {
	ctx := context.Background()
	ref := suite.storedRef()
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(ref, nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(analysisWithConfidence(0.9), nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "receipt.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Receipt)
	suite.Equal(ref.StorageID, resp.Receipt.StorageID)
	suite.Equal("receipt.jpg", resp.Receipt.DisplayName)
	suite.Require().NotNil(resp.Analysis)
	suite.NotNil(resp.Analysis.Fields.Amount)
	suite.Empty(resp.Warning)
	suite.mockStorage.AssertExpectations(suite.T())
	suite.mockExtractor.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_StorageFailsExtractionSurvives() {
	ctx := context.Background()
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(nil, assert.AnError).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(analysisWithConfidence(0.9), nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "receipt.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.Nil(resp.Receipt)
	suite.NotNil(resp.Analysis)
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_ExtractionFailsStorageSurvives() {
	ctx := context.Background()
	ref := suite.storedRef()
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(ref, nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(nil, assert.AnError).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "receipt.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Receipt)
	suite.Nil(resp.Analysis)
	suite.NotEmpty(resp.Warning)
}

// --- Pre-flight validation ---

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_EmptyImage() {
	_, err := suite.service.ProcessReceipt(context.Background(), nil, "image/jpeg", "r.jpg", suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStorage.AssertNotCalled(suite.T(), "Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_NotAnImage() {
	_, err := suite.service.ProcessReceipt(context.Background(), suite.image, "application/pdf", "r.pdf", suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotAnImage)
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_ImageTooLarge() {
	big := make([]byte, (1<<20)+1)
	_, err := suite.service.ProcessReceipt(context.Background(), big, "image/png", "r.png", suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrImageTooLarge)
}

// --- Confidence gating ---

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_FieldAtThresholdIsKept() {
	ctx := context.Background()
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(suite.storedRef(), nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(analysisWithConfidence(0.3), nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "r.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Analysis)
	suite.NotNil(resp.Analysis.Fields.Description)
	suite.NotNil(resp.Analysis.Fields.Amount)
	suite.NotNil(resp.Analysis.Fields.Currency)
	suite.NotNil(resp.Analysis.Fields.Date)
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_FieldBelowThresholdIsDropped() {
	ctx := context.Background()
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(suite.storedRef(), nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(analysisWithConfidence(0.29999), nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "r.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Analysis)
	suite.Nil(resp.Analysis.Fields.Description)
	suite.Nil(resp.Analysis.Fields.Amount)
	suite.Nil(resp.Analysis.Fields.Currency)
	suite.Nil(resp.Analysis.Fields.Date)
	// Raw confidences are still surfaced so the client can explain the gaps.
	suite.InDelta(0.29999, resp.Analysis.FieldConfidence.Amount, 1e-9)
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_MixedFieldConfidences() {
	ctx := context.Background()
	analysis := analysisWithConfidence(0.9)
	analysis.FieldConfidence.Date = 0.1
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(suite.storedRef(), nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(analysis, nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "r.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.NotNil(resp.Analysis.Fields.Amount)
	suite.Nil(resp.Analysis.Fields.Date)
}

func (suite *ReceiptServiceTestSuite) TestProcessReceipt_CategoryHintMatched() {
	ctx := context.Background()
	analysis := analysisWithConfidence(0.9)
	hint := "travel"
	analysis.SuggestedCategory = &hint
	analysis.FieldConfidence.Category = 0.8

	travelID := uuid.NewString()
	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(suite.storedRef(), nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").Return(analysis, nil).Once()
	suite.mockCategoryRepo.On("ListCategories", mock.Anything, true).
		Return([]domain.Category{{CategoryID: travelID, Name: "Travel", IsActive: true}}, nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "r.jpg", suite.ownerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Analysis.Fields.CategoryID)
	suite.Equal(travelID, *resp.Analysis.Fields.CategoryID)
}

// --- Cancellation ---

// The caller cancels while both branches run. The stored image is orphaned,
// so a compensating delete must fire even though the request is gone.
func (suite *ReceiptServiceTestSuite) TestProcessReceipt_CancelledAfterStoreCompensates() {
	ctx, cancel := context.WithCancel(context.Background())
	ref := suite.storedRef()

	suite.mockStorage.On("Store", mock.Anything, suite.image, "image/jpeg", suite.ownerID).Return(ref, nil).Once()
	suite.mockExtractor.On("Extract", mock.Anything, suite.image, "image/jpeg").
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	deleted := make(chan string, 1)
	suite.mockStorage.On("Delete", mock.Anything, ref.StorageID).
		Run(func(args mock.Arguments) { deleted <- args.String(1) }).
		Return(nil).Once()

	resp, err := suite.service.ProcessReceipt(ctx, suite.image, "image/jpeg", "r.jpg", suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, context.Canceled)
	suite.Nil(resp)

	select {
	case id := <-deleted:
		suite.Equal(ref.StorageID, id)
	case <-time.After(2 * time.Second):
		suite.Fail("compensating delete never ran")
	}
}

// --- Discard ---

func (suite *ReceiptServiceTestSuite) TestDiscardReceipt_Success() {
	storageID := uuid.NewString()
	suite.mockStorage.On("Delete", mock.Anything, storageID).Return(nil).Once()

	err := suite.service.DiscardReceipt(context.Background(), storageID)

	suite.Require().NoError(err)
	suite.mockStorage.AssertExpectations(suite.T())
}

// Discarding twice behaves like discarding once; the storage port absorbs
// the unknown ID.
func (suite *ReceiptServiceTestSuite) TestDiscardReceipt_Idempotent() {
	storageID := uuid.NewString()
	suite.mockStorage.On("Delete", mock.Anything, storageID).Return(nil).Twice()

	suite.Require().NoError(suite.service.DiscardReceipt(context.Background(), storageID))
	suite.Require().NoError(suite.service.DiscardReceipt(context.Background(), storageID))
}

func (suite *ReceiptServiceTestSuite) TestDiscardReceipt_StorageUnavailable() {
	storageID := uuid.NewString()
	suite.mockStorage.On("Delete", mock.Anything, storageID).Return(assert.AnError).Once()

	err := suite.service.DiscardReceipt(context.Background(), storageID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
}

func (suite *ReceiptServiceTestSuite) TestDiscardReceipt_BlankID() {
	err := suite.service.DiscardReceipt(context.Background(), "  ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStorage.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func TestReceiptServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
