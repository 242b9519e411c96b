package types

import "time"

// DefaultPlayTypeIcon is the symbol name given to play types created without one.
const DefaultPlayTypeIcon = "mountain.2"

// PlayType is a user-defined activity or scene (for example "Basketball") that
// equipment can be associated with.
type PlayType struct {
	ID          string    `json:"id"`          // UUID, generated on creation.
	Name        string    `json:"name"`        // Required, unique among play types.
	Description string    `json:"description"` // Free text.
	Icon        string    `json:"icon"`        // Symbolic icon name.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlayTypeInput holds the caller-supplied fields for creating a play type.
type PlayTypeInput struct {
	Name        string
	Description string
	Icon        string
}
