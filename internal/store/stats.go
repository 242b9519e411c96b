package store

import "github.com/petar-djukic/equipments/pkg/types"

// Statistics summarizes the current collections.
func (s *Store) Statistics() types.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := types.Statistics{
		EquipmentCount: len(s.equipment),
		PlayTypeCount:  len(s.playTypes),
		CategoryCount:  len(s.categories),
	}
	for _, e := range s.equipment {
		st.TotalValue += e.Price
	}
	return st
}
