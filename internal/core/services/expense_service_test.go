package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo  *MockExpenseRepository
	mockAuditRepo    *MockAuditRepository
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	mockConverter    *MockCurrencyConverter
	service          portssvc.ExpenseSvcFacade

	employee domain.User
	manager  domain.User
	admin    domain.User
	outsider domain.User // manager of a different team
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		suite.mockAuditRepo,
		suite.mockUserRepo,
		suite.mockCategoryRepo,
		suite.mockConverter,
	)

	managerID := uuid.NewString()
	suite.manager = domain.User{UserID: managerID, Role: domain.RoleManager, DepartmentID: "dept-1"}
	suite.employee = domain.User{UserID: uuid.NewString(), Role: domain.RoleEmployee, DepartmentID: "dept-1", ManagerID: &managerID}
	suite.admin = domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin, DepartmentID: "dept-1"}
	suite.outsider = domain.User{UserID: uuid.NewString(), Role: domain.RoleManager, DepartmentID: "dept-2"}
}

func (suite *ExpenseServiceTestSuite) expectUser(u domain.User) {
	user := u
	suite.mockUserRepo.On("FindUserByID", mock.Anything, u.UserID).Return(&user, nil)
}

func (suite *ExpenseServiceTestSuite) pendingExpense(ownerID string) *domain.Expense {
	return &domain.Expense{
		ExpenseID:        uuid.NewString(),
		Description:      "Team lunch",
		OriginalAmount:   decimal.NewFromInt(40),
		OriginalCurrency: "EUR",
		ConvertedAmount:  decimal.NewFromInt(40),
		ExchangeRate:     decimal.NewFromInt(1),
		State:            domain.StatePendingApproval,
		ClaimDate:        time.Now().UTC(),
		OwnerID:          ownerID,
		DepartmentID:     "dept-1",
	}
}

// --- Creation ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	amount := decimal.NewFromFloat(120.50)
	rate := decimal.NewFromFloat(0.92)
	converted := amount.Mul(rate)
	suite.mockConverter.On("RateToEUR", ctx, "USD").Return(rate, nil).Once()
	suite.mockConverter.On("ConvertToEUR", ctx, amount, "USD").Return(converted, nil).Once()

	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.State == domain.StateDraft &&
			e.OwnerID == suite.employee.UserID &&
			e.DepartmentID == suite.employee.DepartmentID &&
			e.ConvertedAmount.Equal(converted) &&
			e.ExchangeRate.Equal(rate)
	})).Return(nil).Once()

	req := dto.CreateExpenseRequest{
		Description:      "Conference flight",
		OriginalAmount:   amount,
		OriginalCurrency: "usd",
		ClaimDate:        time.Now().UTC(),
	}
	expense, err := suite.service.CreateExpense(ctx, req, suite.employee.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Equal(domain.StateDraft, expense.State)
	suite.Equal("USD", expense.OriginalCurrency)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmount() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	req := dto.CreateExpenseRequest{
		Description:      "Nothing",
		OriginalAmount:   decimal.Zero,
		OriginalCurrency: "EUR",
		ClaimDate:        time.Now().UTC(),
	}
	expense, err := suite.service.CreateExpense(ctx, req, suite.employee.UserID)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_InactiveCategory() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	categoryID := uuid.NewString()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).
		Return(&domain.Category{CategoryID: categoryID, IsActive: false}, nil).Once()

	req := dto.CreateExpenseRequest{
		Description:      "Old category",
		OriginalAmount:   decimal.NewFromInt(10),
		OriginalCurrency: "EUR",
		ClaimDate:        time.Now().UTC(),
		CategoryID:       &categoryID,
	}
	_, err := suite.service.CreateExpense(ctx, req, suite.employee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Submission ---

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_Success() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateDraft
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseState", ctx, expense.ExpenseID, domain.StateDraft, domain.StatePendingApproval, suite.employee.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.ExpenseID == expense.ExpenseID &&
			e.PreviousState == domain.StateDraft &&
			e.NewState == domain.StatePendingApproval &&
			e.ActorID == suite.employee.UserID &&
			e.ActorRole == domain.RoleEmployee
	})).Return(nil).Once()

	result, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatePendingApproval, result.State)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NotOwner() {
	ctx := context.Background()
	suite.expectUser(suite.outsider)

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateDraft
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.outsider.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "AppendAuditEntry", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NotDraft() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
}

// --- Approval ---

func (suite *ExpenseServiceTestSuite) TestApproveExpense_ByManager() {
	ctx := context.Background()
	suite.expectUser(suite.manager)
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseState", ctx, expense.ExpenseID, domain.StatePendingApproval, domain.StateApproved, suite.manager.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.NewState == domain.StateApproved && e.ActorRole == domain.RoleManager
	})).Return(nil).Once()

	result, err := suite.service.ApproveExpense(ctx, expense.ExpenseID, suite.manager.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StateApproved, result.State)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_ByUnrelatedManager() {
	ctx := context.Background()
	suite.expectUser(suite.outsider)
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.ApproveExpense(ctx, expense.ExpenseID, suite.outsider.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "AppendAuditEntry", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_ByEmployee() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.ApproveExpense(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *ExpenseServiceTestSuite) TestApproveExpense_AlreadyApproved() {
	ctx := context.Background()
	suite.expectUser(suite.admin)

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateApproved
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.expectUser(suite.employee)

	_, err := suite.service.ApproveExpense(ctx, expense.ExpenseID, suite.admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPending)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Two reviewers race to approve the same pending expense. The repository
// compare-and-swap lets exactly one transition through; exactly one audit
// entry is written.
func (suite *ExpenseServiceTestSuite) TestApproveExpense_ConcurrentRace() {
	ctx := context.Background()
	suite.expectUser(suite.admin)
	suite.expectUser(suite.manager)
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	fresh := func() *domain.Expense {
		e := *expense
		return &e
	}
	// Each caller sees its own pending snapshot, as it would from the database.
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(fresh(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(fresh(), nil).Once()

	suite.mockExpenseRepo.On("UpdateExpenseState", ctx, expense.ExpenseID, domain.StatePendingApproval, domain.StateApproved, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseState", ctx, expense.ExpenseID, domain.StatePendingApproval, domain.StateApproved, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidTransition).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", ctx, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	actors := []string{suite.manager.UserID, suite.admin.UserID}
	for i := range actors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.service.ApproveExpense(ctx, expense.ExpenseID, actors[i])
		}(i)
	}
	wg.Wait()

	var succeeded, lost int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			suite.ErrorIs(err, apperrors.ErrInvalidTransition)
			lost++
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, lost)
	suite.mockAuditRepo.AssertNumberOfCalls(suite.T(), "AppendAuditEntry", 1)
}

// --- Rejection and resubmission ---

func (suite *ExpenseServiceTestSuite) TestRejectExpense_Success() {
	ctx := context.Background()
	suite.expectUser(suite.manager)
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseState", ctx, expense.ExpenseID, domain.StatePendingApproval, domain.StateRejected, suite.manager.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.NewState == domain.StateRejected && e.Comment == "Missing receipt"
	})).Return(nil).Once()

	result, err := suite.service.RejectExpense(ctx, expense.ExpenseID, suite.manager.UserID, "Missing receipt")

	suite.Require().NoError(err)
	suite.Equal(domain.StateRejected, result.State)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestRejectExpense_BlankComment() {
	ctx := context.Background()

	_, err := suite.service.RejectExpense(ctx, uuid.NewString(), suite.manager.UserID, "   ")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCommentRequired)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindExpenseByID", mock.Anything, mock.Anything)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "AppendAuditEntry", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestResubmitExpense_Success() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateRejected
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseState", ctx, expense.ExpenseID, domain.StateRejected, domain.StatePendingApproval, suite.employee.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditRepo.On("AppendAuditEntry", ctx, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.PreviousState == domain.StateRejected && e.NewState == domain.StatePendingApproval
	})).Return(nil).Once()

	result, err := suite.service.ResubmitExpense(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatePendingApproval, result.State)
}

func (suite *ExpenseServiceTestSuite) TestResubmitExpense_NotRejected() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateDraft
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.ResubmitExpense(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotRejected)
}

// --- Draft editing ---

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NotDraft() {
	ctx := context.Background()

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	desc := "edited"
	_, err := suite.service.UpdateExpense(ctx, expense.ExpenseID, dto.UpdateExpenseRequest{Description: &desc}, suite.employee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_AmountChangeReconverts() {
	ctx := context.Background()

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateDraft
	expense.OriginalCurrency = "USD"
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	newAmount := decimal.NewFromInt(200)
	rate := decimal.NewFromFloat(0.9)
	suite.mockConverter.On("RateToEUR", ctx, "USD").Return(rate, nil).Once()
	suite.mockConverter.On("ConvertToEUR", ctx, newAmount, "USD").Return(newAmount.Mul(rate), nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.OriginalAmount.Equal(newAmount) && e.ConvertedAmount.Equal(newAmount.Mul(rate))
	})).Return(nil).Once()

	result, err := suite.service.UpdateExpense(ctx, expense.ExpenseID, dto.UpdateExpenseRequest{OriginalAmount: &newAmount}, suite.employee.UserID)

	suite.Require().NoError(err)
	suite.True(result.ConvertedAmount.Equal(newAmount.Mul(rate)))
	suite.mockConverter.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDeleteExpense_OnlyDrafts() {
	ctx := context.Background()

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	err := suite.service.DeleteExpense(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteExpense", mock.Anything, mock.Anything)
}

// --- History ---

func (suite *ExpenseServiceTestSuite) TestGetExpenseHistory_EmptyTrail() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	expense.State = domain.StateDraft
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockAuditRepo.On("FindAuditByExpenseID", ctx, expense.ExpenseID).Return([]domain.AuditEntry{}, nil).Once()

	entries, err := suite.service.GetExpenseHistory(ctx, expense.ExpenseID, suite.employee.UserID)

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseHistory_DeniedOutsideScope() {
	ctx := context.Background()
	suite.expectUser(suite.outsider)
	suite.expectUser(suite.employee)

	expense := suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.GetExpenseHistory(ctx, expense.ExpenseID, suite.outsider.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockAuditRepo.AssertNotCalled(suite.T(), "FindAuditByExpenseID", mock.Anything, mock.Anything)
}

// --- Listing and scoping ---

func (suite *ExpenseServiceTestSuite) TestListExpenses_EmployeeScopedToSelf() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	suite.mockExpenseRepo.On("ListExpensesByOwners", ctx, []string{suite.employee.UserID}, 20, (*string)(nil)).
		Return([]domain.Expense{*suite.pendingExpense(suite.employee.UserID)}, nil, nil).Once()

	resp, err := suite.service.ListExpenses(ctx, suite.employee.UserID, dto.ListExpensesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Expenses, 1)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_ManagerScopedToTeam() {
	ctx := context.Background()
	suite.expectUser(suite.manager)
	suite.mockUserRepo.On("FindTeamMemberIDs", ctx, suite.manager.UserID).
		Return([]string{suite.employee.UserID}, nil).Once()

	expectedScope := []string{suite.manager.UserID, suite.employee.UserID}
	suite.mockExpenseRepo.On("ListExpensesByOwners", ctx, expectedScope, 20, (*string)(nil)).
		Return([]domain.Expense{}, nil, nil).Once()

	_, err := suite.service.ListExpenses(ctx, suite.manager.UserID, dto.ListExpensesParams{})

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_AdminUnrestricted() {
	ctx := context.Background()
	suite.expectUser(suite.admin)

	suite.mockExpenseRepo.On("ListExpensesByOwners", ctx, ([]string)(nil), 20, (*string)(nil)).
		Return([]domain.Expense{}, nil, nil).Once()

	_, err := suite.service.ListExpenses(ctx, suite.admin.UserID, dto.ListExpensesParams{})

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_FilterAppliedWithinScope() {
	ctx := context.Background()
	suite.expectUser(suite.employee)

	approved := *suite.pendingExpense(suite.employee.UserID)
	approved.State = domain.StateApproved
	pending := *suite.pendingExpense(suite.employee.UserID)
	suite.mockExpenseRepo.On("ListExpensesByOwners", ctx, []string{suite.employee.UserID}, 20, (*string)(nil)).
		Return([]domain.Expense{approved, pending}, nil, nil).Once()

	state := "APPROVED"
	resp, err := suite.service.ListExpenses(ctx, suite.employee.UserID, dto.ListExpensesParams{State: &state})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Expenses, 1)
	suite.Equal(domain.StateApproved, resp.Expenses[0].State)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
