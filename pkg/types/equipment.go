package types

import (
	"slices"
	"time"
)

// Rating bounds for Equipment.Rating.
const (
	MinRating = 0
	MaxRating = 5
)

// Equipment is an inventory item. PlayTypeID and CategoryID are weak
// references: the store nulls them when the referenced record is deleted.
type Equipment struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand"`
	Model        string     `json:"model"`
	Description  string     `json:"description"`
	Price        int64      `json:"price"` // Minor currency units, never negative.
	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
	Images       []string   `json:"images"` // Ordered image file paths.
	CategoryID   *string    `json:"categoryId,omitempty"`
	PlayTypeID   *string    `json:"playTypeId,omitempty"`
	Notes        string     `json:"notes"`
	Rating       int        `json:"rating"` // MinRating..MaxRating inclusive.
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// EquipmentInput holds the caller-supplied fields for creating equipment.
type EquipmentInput struct {
	Name         string
	Brand        string
	Model        string
	Description  string
	Price        int64
	PurchaseDate *time.Time
	Images       []string
	CategoryID   *string
	PlayTypeID   *string
	Notes        string
	Rating       int
}

// Clone returns a deep copy of e. Slices and pointer fields are not shared
// with the receiver.
func (e Equipment) Clone() Equipment {
	c := e
	c.Images = slices.Clone(e.Images)
	if c.Images == nil {
		c.Images = []string{}
	}
	c.PurchaseDate = cloneTime(e.PurchaseDate)
	c.CategoryID = cloneString(e.CategoryID)
	c.PlayTypeID = cloneString(e.PlayTypeID)
	return c
}

// HasPlayType reports whether e references the play type with the given ID.
func (e Equipment) HasPlayType(id string) bool {
	return e.PlayTypeID != nil && *e.PlayTypeID == id
}

// HasCategory reports whether e references the category with the given ID.
func (e Equipment) HasCategory(id string) bool {
	return e.CategoryID != nil && *e.CategoryID == id
}

// StringRef returns a pointer to a copy of s, or nil when s is empty.
// It is a convenience for filling optional reference fields.
func StringRef(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
