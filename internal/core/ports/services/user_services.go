package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// UserSvcFacade manages users.
type UserSvcFacade interface {
	// CreateUser registers a new user with a bcrypt-hashed password. Admin only.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)

	// GetUserByID retrieves a user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a page of users.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)

	// DeactivateUser soft-deletes a user. Admin only.
	DeactivateUser(ctx context.Context, userID string, actorID string) error
}

// AuthSvcFacade verifies credentials and issues bearer tokens.
type AuthSvcFacade interface {
	// Login checks the password against the stored hash and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
