package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/expensio/expensio_backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// ErrBadCredentials deliberately does not distinguish an unknown email from a
// wrong password.
var ErrBadCredentials = fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

type authService struct {
	BaseService
	jwtSecret   string
	tokenExpiry time.Duration
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo portsrepo.UserRepository, jwtSecret string, tokenExpiry time.Duration) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: BaseService{userRepo: userRepo},
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Login verifies the credentials and issues a signed JWT whose subject is the
// user ID.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrBadCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Failed login attempt", slog.String("user_id", user.UserID))
		return nil, ErrBadCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to sign token: %w", apperrors.ErrInternal)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}
