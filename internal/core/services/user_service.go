package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/expensio/expensio_backend/internal/utils"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken     = fmt.Errorf("%w: a user with this email already exists", apperrors.ErrDuplicate)
	ErrUnknownManager = fmt.Errorf("%w: manager not found", apperrors.ErrValidation)
)

type userService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepository
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, departmentRepo portsrepo.DepartmentRepository) portssvc.UserSvcFacade {
	return &userService{
		BaseService:    BaseService{userRepo: userRepo},
		departmentRepo: departmentRepo,
	}
}

// CreateUser registers a new user. Admin only. The password is bcrypt-hashed
// before it ever reaches the repository.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	actor, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.departmentRepo.FindDepartmentByID(ctx, req.DepartmentID); err != nil {
		return nil, fmt.Errorf("%w: department not found", apperrors.ErrValidation)
	}
	if req.ManagerID != nil {
		manager, err := s.userRepo.FindUserByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, ErrUnknownManager
		}
		if !manager.Role.IsReviewer() {
			return nil, fmt.Errorf("%w: manager must hold the manager or admin role", apperrors.ErrValidation)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRole(req.Role),
		DepartmentID: req.DepartmentID,
		ManagerID:    req.ManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", req.Role))
	return &user, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a page of users.
func (s *userService) ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.FindUsers(ctx, limit, offset)
}

// DeactivateUser soft-deletes a user. Admin only. Admins cannot deactivate
// themselves; that would leave the system without its acting administrator.
func (s *userService) DeactivateUser(ctx context.Context, userID string, actorID string) error {
	actor, err := s.RequireAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: cannot deactivate your own account", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), actor.UserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deactivated", slog.String("user_id", userID))
	return nil
}
