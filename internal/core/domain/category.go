package domain

// Category classifies expenses for reporting. Categories are soft-deleted
// (deactivated) so historical expenses keep a valid reference.
type Category struct {
	CategoryID  string `json:"categoryID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"` // Hex color tag for presentation
	IsActive    bool   `json:"isActive"`
	AuditFields
}
