package store

import (
	"fmt"
	"slices"

	"github.com/petar-djukic/equipments/pkg/types"
)

// CreateEquipment validates in and appends a new equipment record.
// Validation is fail-fast in this order: name, price, rating, image paths,
// play type reference, category reference.
func (s *Store) CreateEquipment(in types.EquipmentInput) (types.Equipment, error) {
	var created types.Equipment
	err := s.mutate(func() (Event, bool, error) {
		e := types.Equipment{
			Name:         in.Name,
			Brand:        in.Brand,
			Model:        in.Model,
			Description:  in.Description,
			Price:        in.Price,
			PurchaseDate: in.PurchaseDate,
			Images:       in.Images,
			CategoryID:   in.CategoryID,
			PlayTypeID:   in.PlayTypeID,
			Notes:        in.Notes,
			Rating:       in.Rating,
		}.Clone()
		if err := s.checkEquipment(&e); err != nil {
			return Event{}, false, fmt.Errorf("create equipment: %w", err)
		}
		id, err := s.newID()
		if err != nil {
			return Event{}, false, fmt.Errorf("create equipment: %w", err)
		}
		now := s.clock()
		e.ID = id
		e.CreatedAt = now
		e.UpdatedAt = now
		s.equipment = append(s.equipment, e)
		created = e.Clone()
		return Event{Collection: CollectionEquipment, Op: OpCreate, ID: id}, true, nil
	})
	if created.ID == "" {
		return types.Equipment{}, err
	}
	return created, err
}

// Equipment returns every equipment record in insertion order.
func (s *Store) Equipment() []types.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEquipment(func(types.Equipment) bool { return true })
}

// EquipmentByID returns the equipment record with the given ID.
func (s *Store) EquipmentByID(id string) (types.Equipment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.equipmentIndex(id)
	if i < 0 {
		return types.Equipment{}, false
	}
	return s.equipment[i].Clone(), true
}

// EquipmentForPlayType returns the equipment referencing the play type.
func (s *Store) EquipmentForPlayType(playTypeID string) []types.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEquipment(func(e types.Equipment) bool { return e.HasPlayType(playTypeID) })
}

// EquipmentForCategory returns the equipment referencing the category.
func (s *Store) EquipmentForCategory(categoryID string) []types.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterEquipment(func(e types.Equipment) bool { return e.HasCategory(categoryID) })
}

// UpdateEquipment validates e and replaces the stored record with the same
// ID, keeping CreatedAt and refreshing UpdatedAt. Returns ErrNotFound if no
// record has that ID or if e references a missing play type or category.
func (s *Store) UpdateEquipment(e types.Equipment) (types.Equipment, error) {
	var updated types.Equipment
	err := s.mutate(func() (Event, bool, error) {
		next := e.Clone()
		if err := s.checkEquipment(&next); err != nil {
			return Event{}, false, fmt.Errorf("update equipment: %w", err)
		}
		i := s.equipmentIndex(e.ID)
		if i < 0 {
			return Event{}, false, fmt.Errorf("update equipment %s: %w", e.ID, types.ErrNotFound)
		}
		next.CreatedAt = s.equipment[i].CreatedAt
		next.UpdatedAt = laterOf(s.clock(), next.CreatedAt)
		s.equipment[i] = next
		updated = next.Clone()
		return Event{Collection: CollectionEquipment, Op: OpUpdate, ID: e.ID}, true, nil
	})
	if updated.ID == "" {
		return types.Equipment{}, err
	}
	return updated, err
}

// DeleteEquipment removes the equipment record. Play types and categories
// are unaffected. Unknown IDs are a no-op.
func (s *Store) DeleteEquipment(id string) error {
	return s.mutate(func() (Event, bool, error) {
		i := s.equipmentIndex(id)
		if i < 0 {
			return Event{}, false, nil
		}
		s.equipment = slices.Delete(s.equipment, i, i+1)
		return Event{Collection: CollectionEquipment, Op: OpDelete, ID: id}, true, nil
	})
}

// filterEquipment returns clones of the matching records. The caller must
// hold s.mu.
func (s *Store) filterEquipment(keep func(types.Equipment) bool) []types.Equipment {
	out := []types.Equipment{}
	for _, e := range s.equipment {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// equipmentIndex returns the position of id, or -1. The caller must hold s.mu.
func (s *Store) equipmentIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.equipment, func(e types.Equipment) bool { return e.ID == id })
}
