package store

import (
	"fmt"
	"slices"

	"github.com/petar-djukic/equipments/pkg/types"
)

// Export snapshots all three collections into a bundle stamped with the
// current format version and the clock time.
func (s *Store) Export() types.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Bundle{
		Version:    types.BundleVersion,
		ExportDate: s.clock(),
		PlayTypes:  slices.Clone(s.playTypes),
		Categories: slices.Clone(s.categories),
		Equipments: s.filterEquipment(func(types.Equipment) bool { return true }),
	}
}

// Import replaces all three collections with the bundle contents and persists
// them. A bundle whose version differs from types.BundleVersion is rejected
// with ErrIncompatibleVersion before anything changes.
//
// Imported records are trusted as-is: they are not re-validated and their
// references are not checked.
func (s *Store) Import(b types.Bundle) error {
	return s.mutate(func() (Event, bool, error) {
		if b.Version != types.BundleVersion {
			return Event{}, false, fmt.Errorf("import version %q (want %q): %w",
				b.Version, types.BundleVersion, types.ErrIncompatibleVersion)
		}
		playTypes := slices.Clone(b.PlayTypes)
		if playTypes == nil {
			playTypes = []types.PlayType{}
		}
		categories := slices.Clone(b.Categories)
		if categories == nil {
			categories = []types.Category{}
		}
		equipment := make([]types.Equipment, 0, len(b.Equipments))
		for _, e := range b.Equipments {
			equipment = append(equipment, e.Clone())
		}
		s.playTypes = playTypes
		s.categories = categories
		s.equipment = equipment
		return Event{Collection: CollectionAll, Op: OpImport}, true, nil
	})
}
