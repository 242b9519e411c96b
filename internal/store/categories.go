package store

import (
	"fmt"
	"slices"

	"github.com/petar-djukic/equipments/pkg/types"
)

// CreateCategory validates in and appends a new category. The name must be
// non-empty and not already used by another category.
func (s *Store) CreateCategory(in types.CategoryInput) (types.Category, error) {
	var created types.Category
	err := s.mutate(func() (Event, bool, error) {
		if err := s.checkName(in.Name); err != nil {
			return Event{}, false, fmt.Errorf("create category: %w", err)
		}
		for _, c := range s.categories {
			if sameName(c.Name, in.Name) {
				return Event{}, false, fmt.Errorf("create category %q: %w", in.Name, types.ErrDuplicateName)
			}
		}
		id, err := s.newID()
		if err != nil {
			return Event{}, false, fmt.Errorf("create category: %w", err)
		}
		icon := in.Icon
		if icon == "" {
			icon = types.DefaultCategoryIcon
		}
		now := s.clock()
		created = types.Category{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Icon:        icon,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.categories = append(s.categories, created)
		return Event{Collection: CollectionCategories, Op: OpCreate, ID: id}, true, nil
	})
	if created.ID == "" {
		return types.Category{}, err
	}
	return created, err
}

// Categories returns every category in insertion order.
func (s *Store) Categories() []types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Category returns the category with the given ID.
func (s *Store) Category(id string) (types.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.categoryIndex(id)
	if i < 0 {
		return types.Category{}, false
	}
	return s.categories[i], true
}

// UpdateCategory replaces the stored category with the same ID. CreatedAt is
// kept from the stored record and UpdatedAt is refreshed. Returns ErrNotFound
// if no category has that ID. Name uniqueness is not re-checked.
func (s *Store) UpdateCategory(c types.Category) (types.Category, error) {
	var updated types.Category
	err := s.mutate(func() (Event, bool, error) {
		if err := s.checkName(c.Name); err != nil {
			return Event{}, false, fmt.Errorf("update category: %w", err)
		}
		i := s.categoryIndex(c.ID)
		if i < 0 {
			return Event{}, false, fmt.Errorf("update category %s: %w", c.ID, types.ErrNotFound)
		}
		updated = c
		updated.CreatedAt = s.categories[i].CreatedAt
		updated.UpdatedAt = laterOf(s.clock(), updated.CreatedAt)
		s.categories[i] = updated
		return Event{Collection: CollectionCategories, Op: OpUpdate, ID: c.ID}, true, nil
	})
	if updated.ID == "" {
		return types.Category{}, err
	}
	return updated, err
}

// DeleteCategory removes the category and clears CategoryID on every
// equipment record that referenced it. Unknown IDs are a no-op.
func (s *Store) DeleteCategory(id string) error {
	return s.mutate(func() (Event, bool, error) {
		i := s.categoryIndex(id)
		if i < 0 {
			return Event{}, false, nil
		}
		s.categories = slices.Delete(s.categories, i, i+1)
		for j := range s.equipment {
			if s.equipment[j].HasCategory(id) {
				s.equipment[j].CategoryID = nil
			}
		}
		return Event{Collection: CollectionCategories, Op: OpDelete, ID: id}, true, nil
	})
}

// categoryIndex returns the position of id, or -1. The caller must hold s.mu.
func (s *Store) categoryIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.categories, func(c types.Category) bool { return c.ID == id })
}
