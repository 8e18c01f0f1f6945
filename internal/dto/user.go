package dto

import (
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Role         string  `json:"role" binding:"required,oneof=EMPLOYEE MANAGER ADMIN"`
	DepartmentID string  `json:"departmentID" binding:"required"`
	ManagerID    *string `json:"managerID"`
}

// UserResponse defines the data returned for a user. Password material never
// leaves the service layer.
type UserResponse struct {
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         domain.UserRole `json:"role"`
	DepartmentID string          `json:"departmentID"`
	ManagerID    *string         `json:"managerID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		ManagerID:    u.ManagerID,
		CreatedAt:    u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
