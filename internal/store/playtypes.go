package store

import (
	"fmt"
	"slices"

	"github.com/petar-djukic/equipments/pkg/types"
)

// CreatePlayType validates in and appends a new play type. The name must be
// non-empty and not already used by another play type.
func (s *Store) CreatePlayType(in types.PlayTypeInput) (types.PlayType, error) {
	var created types.PlayType
	err := s.mutate(func() (Event, bool, error) {
		if err := s.checkName(in.Name); err != nil {
			return Event{}, false, fmt.Errorf("create play type: %w", err)
		}
		for _, p := range s.playTypes {
			if sameName(p.Name, in.Name) {
				return Event{}, false, fmt.Errorf("create play type %q: %w", in.Name, types.ErrDuplicateName)
			}
		}
		id, err := s.newID()
		if err != nil {
			return Event{}, false, fmt.Errorf("create play type: %w", err)
		}
		icon := in.Icon
		if icon == "" {
			icon = types.DefaultPlayTypeIcon
		}
		now := s.clock()
		created = types.PlayType{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Icon:        icon,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.playTypes = append(s.playTypes, created)
		return Event{Collection: CollectionPlayTypes, Op: OpCreate, ID: id}, true, nil
	})
	if created.ID == "" {
		return types.PlayType{}, err
	}
	return created, err
}

// PlayTypes returns every play type in insertion order.
func (s *Store) PlayTypes() []types.PlayType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.playTypes)
}

// PlayType returns the play type with the given ID.
func (s *Store) PlayType(id string) (types.PlayType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.playTypeIndex(id)
	if i < 0 {
		return types.PlayType{}, false
	}
	return s.playTypes[i], true
}

// UpdatePlayType replaces the stored play type with the same ID. CreatedAt is
// kept from the stored record and UpdatedAt is refreshed. Returns ErrNotFound
// if no play type has that ID. Name uniqueness is not re-checked.
func (s *Store) UpdatePlayType(pt types.PlayType) (types.PlayType, error) {
	var updated types.PlayType
	err := s.mutate(func() (Event, bool, error) {
		if err := s.checkName(pt.Name); err != nil {
			return Event{}, false, fmt.Errorf("update play type: %w", err)
		}
		i := s.playTypeIndex(pt.ID)
		if i < 0 {
			return Event{}, false, fmt.Errorf("update play type %s: %w", pt.ID, types.ErrNotFound)
		}
		updated = pt
		updated.CreatedAt = s.playTypes[i].CreatedAt
		updated.UpdatedAt = laterOf(s.clock(), updated.CreatedAt)
		s.playTypes[i] = updated
		return Event{Collection: CollectionPlayTypes, Op: OpUpdate, ID: pt.ID}, true, nil
	})
	if updated.ID == "" {
		return types.PlayType{}, err
	}
	return updated, err
}

// DeletePlayType removes the play type and clears PlayTypeID on every
// equipment record that referenced it. Unknown IDs are a no-op.
func (s *Store) DeletePlayType(id string) error {
	return s.mutate(func() (Event, bool, error) {
		i := s.playTypeIndex(id)
		if i < 0 {
			return Event{}, false, nil
		}
		s.playTypes = slices.Delete(s.playTypes, i, i+1)
		for j := range s.equipment {
			if s.equipment[j].HasPlayType(id) {
				s.equipment[j].PlayTypeID = nil
			}
		}
		return Event{Collection: CollectionPlayTypes, Op: OpDelete, ID: id}, true, nil
	})
}

// playTypeIndex returns the position of id, or -1. The caller must hold s.mu.
func (s *Store) playTypeIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.playTypes, func(p types.PlayType) bool { return p.ID == id })
}
