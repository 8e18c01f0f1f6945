package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
)

var (
	ErrCommentRequired   = fmt.Errorf("%w: a comment is required to reject an expense", apperrors.ErrValidation)
	ErrAmountNotPositive = fmt.Errorf("%w: original amount must be positive", apperrors.ErrValidation)
	ErrNotDraft          = fmt.Errorf("%w: expense is not a draft", apperrors.ErrInvalidTransition)
	ErrNotPending        = fmt.Errorf("%w: expense is not pending approval", apperrors.ErrInvalidTransition)
	ErrNotRejected       = fmt.Errorf("%w: expense is not rejected", apperrors.ErrInvalidTransition)
)

// expenseService owns the expense lifecycle: creation, draft editing, the
// approval state machine and its audit trail, and role-scoped listing.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	auditRepo    portsrepo.AuditRepository
	categoryRepo portsrepo.CategoryRepository
	converter    portsrepo.CurrencyConverter
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	auditRepo portsrepo.AuditRepository,
	userRepo portsrepo.UserRepository,
	categoryRepo portsrepo.CategoryRepository,
	converter portsrepo.CurrencyConverter,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService:  BaseService{userRepo: userRepo},
		expenseRepo:  expenseRepo,
		auditRepo:    auditRepo,
		categoryRepo: categoryRepo,
		converter:    converter,
	}
}

// Ensure expenseService implements the facade
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// --- Creation and draft editing ---

// CreateExpense creates a new draft expense owned by the actor. The converted
// amount is resolved here, before the expense enters the lifecycle, so every
// non-draft expense always carries it.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, actorID string) (*domain.Expense, error) {
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if req.OriginalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
	}

	currency := strings.ToUpper(req.OriginalCurrency)

	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, err)
		}
		if !category.IsActive {
			return nil, fmt.Errorf("%w: category %s is inactive", apperrors.ErrValidation, *req.CategoryID)
		}
	}

	rate, err := s.converter.RateToEUR(ctx, currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve exchange rate", slog.String("currency", currency))
		return nil, fmt.Errorf("failed to resolve exchange rate for %s: %w", currency, err)
	}
	converted, err := s.converter.ConvertToEUR(ctx, req.OriginalAmount, currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert amount", slog.String("currency", currency))
		return nil, fmt.Errorf("failed to convert amount to EUR: %w", err)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:        uuid.NewString(),
		Description:      req.Description,
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: currency,
		ConvertedAmount:  converted,
		ExchangeRate:     rate,
		State:            domain.StateDraft,
		ClaimDate:        req.ClaimDate,
		OwnerID:          actor.UserID,
		DepartmentID:     actor.DepartmentID,
		CategoryID:       req.CategoryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if req.Receipt != nil {
		expense.Receipt = &domain.ReceiptRef{
			StorageID:   req.Receipt.StorageID,
			URL:         req.Receipt.URL,
			DisplayName: req.Receipt.DisplayName,
		}
	}
	if req.AnalysisApplied {
		expense.Extraction = &domain.ExtractionInfo{Analyzed: true, Confidence: req.Confidence}
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense")
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

// UpdateExpense edits a draft owned by the actor. Amount or currency changes
// re-resolve the converted amount.
func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, actorID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the owner can edit an expense", apperrors.ErrUnauthorized)
	}
	if expense.State != domain.StateDraft {
		return nil, ErrNotDraft
	}

	updated := false
	reconvert := false
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
		}
		expense.Description = *req.Description
		updated = true
	}
	if req.OriginalAmount != nil {
		if req.OriginalAmount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrAmountNotPositive
		}
		expense.OriginalAmount = *req.OriginalAmount
		updated, reconvert = true, true
	}
	if req.OriginalCurrency != nil {
		expense.OriginalCurrency = strings.ToUpper(*req.OriginalCurrency)
		updated, reconvert = true, true
	}
	if req.ClaimDate != nil {
		expense.ClaimDate = *req.ClaimDate
		updated = true
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, err)
		}
		if !category.IsActive {
			return nil, fmt.Errorf("%w: category %s is inactive", apperrors.ErrValidation, *req.CategoryID)
		}
		expense.CategoryID = req.CategoryID
		updated = true
	}

	if !updated {
		return expense, nil
	}

	if reconvert {
		rate, err := s.converter.RateToEUR(ctx, expense.OriginalCurrency)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve exchange rate for %s: %w", expense.OriginalCurrency, err)
		}
		converted, err := s.converter.ConvertToEUR(ctx, expense.OriginalAmount, expense.OriginalCurrency)
		if err != nil {
			return nil, fmt.Errorf("failed to convert amount to EUR: %w", err)
		}
		expense.ExchangeRate = rate
		expense.ConvertedAmount = converted
	}

	now := time.Now().UTC()
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actorID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes a draft owned by the actor.
func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string, actorID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can delete an expense", apperrors.ErrUnauthorized)
	}
	if expense.State != domain.StateDraft {
		return ErrNotDraft
	}
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// --- State machine ---

// transition applies one state change via the repository's compare-and-swap
// and appends exactly one audit entry once the swap succeeded. A lost race
// surfaces as ErrInvalidTransition from the repository.
func (s *expenseService) transition(ctx context.Context, expense *domain.Expense, to domain.ExpenseState, actor *domain.User, comment string) (*domain.Expense, error) {
	from := expense.State
	now := time.Now().UTC()

	if err := s.expenseRepo.UpdateExpenseState(ctx, expense.ExpenseID, from, to, actor.UserID, now); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			s.LogWarn(ctx, "Expense transition lost precondition",
				slog.String("expense_id", expense.ExpenseID),
				slog.String("from", string(from)),
				slog.String("to", string(to)))
		}
		return nil, err
	}

	entry := domain.AuditEntry{
		AuditID:       uuid.NewString(),
		ExpenseID:     expense.ExpenseID,
		PreviousState: from,
		NewState:      to,
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		Comment:       comment,
		OccurredAt:    now,
	}
	if err := s.auditRepo.AppendAuditEntry(ctx, entry); err != nil {
		// The state change already applied; the trail is now incomplete,
		// which is worth more noise than a generic failure.
		s.LogError(ctx, err, "State changed but audit append failed",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("new_state", string(to)))
		return nil, fmt.Errorf("failed to append audit entry: %w", apperrors.ErrInternal)
	}

	expense.State = to
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Expense transitioned",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return expense, nil
}

// SubmitExpense moves an owned draft to PENDING_APPROVAL.
func (s *expenseService) SubmitExpense(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if expense.OwnerID != actor.UserID {
		return nil, fmt.Errorf("%w: only the owner can submit an expense", apperrors.ErrUnauthorized)
	}
	if expense.State != domain.StateDraft {
		return nil, ErrNotDraft
	}
	return s.transition(ctx, expense, domain.StatePendingApproval, actor, "")
}

// ResubmitExpense moves an owned rejected expense back to PENDING_APPROVAL.
// This is the only backward edge in the lifecycle.
func (s *expenseService) ResubmitExpense(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if expense.OwnerID != actor.UserID {
		return nil, fmt.Errorf("%w: only the owner can resubmit an expense", apperrors.ErrUnauthorized)
	}
	if expense.State != domain.StateRejected {
		return nil, ErrNotRejected
	}
	return s.transition(ctx, expense, domain.StatePendingApproval, actor, "")
}

// authorizeReviewer checks that the actor may review the expense owner's
// claims: admins globally, managers over their direct reports only.
func (s *expenseService) authorizeReviewer(ctx context.Context, actor *domain.User, ownerID string) error {
	if !actor.Role.IsReviewer() {
		return fmt.Errorf("%w: only a manager or admin can review expenses", apperrors.ErrUnauthorized)
	}
	owner, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("expense owner %s: %w", ownerID, err)
	}
	if !domain.CanReview(*actor, *owner) {
		return fmt.Errorf("%w: actor does not manage the expense owner", apperrors.ErrUnauthorized)
	}
	return nil
}

// ApproveExpense moves a pending expense to APPROVED.
func (s *expenseService) ApproveExpense(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReviewer(ctx, actor, expense.OwnerID); err != nil {
		return nil, err
	}
	if expense.State != domain.StatePendingApproval {
		return nil, ErrNotPending
	}
	return s.transition(ctx, expense, domain.StateApproved, actor, "")
}

// RejectExpense moves a pending expense to REJECTED. The comment is mandatory
// and is validated before any side effect.
func (s *expenseService) RejectExpense(ctx context.Context, expenseID string, actorID string, comment string) (*domain.Expense, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, ErrCommentRequired
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReviewer(ctx, actor, expense.OwnerID); err != nil {
		return nil, err
	}
	if expense.State != domain.StatePendingApproval {
		return nil, ErrNotPending
	}
	return s.transition(ctx, expense, domain.StateRejected, actor, comment)
}

// --- Reads ---

// GetExpenseByID retrieves an expense the actor is allowed to see.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, actorID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, expense.OwnerID); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpenseHistory returns the ordered audit trail; an expense with no
// recorded transitions yields an empty slice.
func (s *expenseService) GetExpenseHistory(ctx context.Context, expenseID string, actorID string) ([]domain.AuditEntry, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, expense.OwnerID); err != nil {
		return nil, err
	}
	entries, err := s.auditRepo.FindAuditByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit trail", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return entries, nil
}

// authorizeView allows the owner, the owner's manager, and admins.
func (s *expenseService) authorizeView(ctx context.Context, actor *domain.User, ownerID string) error {
	if actor.UserID == ownerID || actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.Role == domain.RoleManager {
		owner, err := s.userRepo.FindUserByID(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("expense owner %s: %w", ownerID, err)
		}
		if domain.CanReview(*actor, *owner) {
			return nil
		}
	}
	return fmt.Errorf("%w: expense is outside the actor's scope", apperrors.ErrUnauthorized)
}

// scopeOwnerIDs derives the set of owner IDs the actor may list. A nil slice
// means unrestricted (admin).
func (s *expenseService) scopeOwnerIDs(ctx context.Context, actor *domain.User) ([]string, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil, nil
	case domain.RoleManager:
		teamIDs, err := s.userRepo.FindTeamMemberIDs(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve team for manager %s: %w", actor.UserID, err)
		}
		return append([]string{actor.UserID}, teamIDs...), nil
	default:
		return []string{actor.UserID}, nil
	}
}

// ListExpenses retrieves one role-scoped page and applies the filter within
// it. A filtered page may carry fewer than limit items; the next token still
// advances through the scoped collection.
func (s *expenseService) ListExpenses(ctx context.Context, actorID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	actor, err := s.FetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	scope, err := s.scopeOwnerIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByOwners(ctx, scope, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	filtered := params.ToFilter().Apply(expenses)

	return &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(filtered),
		NextToken: nextToken,
	}, nil
}
