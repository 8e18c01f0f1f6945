package domain

import "time"

// UserRole defines the closed set of roles a user can hold.
type UserRole string

const (
	RoleEmployee UserRole = "EMPLOYEE"
	RoleManager  UserRole = "MANAGER"
	RoleAdmin    UserRole = "ADMIN"
)

// IsReviewer reports whether the role is allowed to approve or reject expenses at all.
func (r UserRole) IsReviewer() bool {
	return r == RoleManager || r == RoleAdmin
}

// User represents an employee of the company in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	DepartmentID string   `json:"departmentID"`
	ManagerID    *string  `json:"managerID,omitempty"` // UserID of the direct manager, nil for top-level users
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// CanReview is the authorization rule for approve/reject: admins review
// anyone, managers review their direct reports only. It is a pure function
// of the actor and the expense owner so it can be tested in isolation.
func CanReview(actor User, owner User) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return owner.ManagerID != nil && *owner.ManagerID == actor.UserID
	default:
		return false
	}
}
