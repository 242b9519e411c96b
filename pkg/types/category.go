package types

import "time"

// DefaultCategoryIcon is the symbol name given to categories created without one.
const DefaultCategoryIcon = "tag"

// Category is a user-defined classification bucket, orthogonal to play type.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"` // Required, unique among categories.
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryInput holds the caller-supplied fields for creating a category.
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
}
