package models

// Category represents a category row in the database.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Color       string `db:"color"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
