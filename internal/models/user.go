package models

import "time"

// User represents a user row in the database.
type User struct {
	UserID       string  `db:"user_id"`
	Name         string  `db:"name"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	DepartmentID string  `db:"department_id"`
	ManagerID    *string `db:"manager_id"` // Nullable
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"` // Soft delete marker
}
