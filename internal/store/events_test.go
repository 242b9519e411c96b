package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/equipments/pkg/types"
)

func TestSubscribeReceivesCommittedMutations(t *testing.T) {
	s, _ := newFileStore(t)
	var got []Event
	cancel := s.Subscribe(func(ev Event) { got = append(got, ev) })

	p := mustPlayType(t, s, "Hiking")
	_, err := s.CreatePlayType(types.PlayTypeInput{Name: "Hiking"})
	require.ErrorIs(t, err, types.ErrDuplicateName)
	e := mustEquipment(t, s, types.EquipmentInput{Name: "Boots"})
	_, err = s.UpdateEquipment(e)
	require.NoError(t, err)
	require.NoError(t, s.DeletePlayType(p.ID))
	require.NoError(t, s.DeletePlayType(uuid.NewString()))
	require.NoError(t, s.Import(s.Export()))

	want := []Event{
		{Collection: CollectionPlayTypes, Op: OpCreate, ID: p.ID},
		{Collection: CollectionEquipment, Op: OpCreate, ID: e.ID},
		{Collection: CollectionEquipment, Op: OpUpdate, ID: e.ID},
		{Collection: CollectionPlayTypes, Op: OpDelete, ID: p.ID},
		{Collection: CollectionAll, Op: OpImport},
	}
	assert.Equal(t, want, got, "failed and no-op calls emit nothing")

	cancel()
	mustCategory(t, s, "Footwear")
	assert.Len(t, got, len(want), "cancelled subscriber is not called")
}

func TestSubscriberMayReadStore(t *testing.T) {
	s, _ := newFileStore(t)
	var counts []int
	s.Subscribe(func(Event) { counts = append(counts, len(s.PlayTypes())) })

	mustPlayType(t, s, "Hiking")
	mustPlayType(t, s, "Climbing")
	assert.Equal(t, []int{1, 2}, counts)
}

func TestEventCarriesPersistenceError(t *testing.T) {
	blobs := newMemBlobs()
	s, err := New(blobs)
	require.NoError(t, err)
	var got Event
	s.Subscribe(func(ev Event) { got = ev })

	blobs.failPut = true
	_, err = s.CreateCategory(types.CategoryInput{Name: "Bags"})
	require.Error(t, err)
	assert.ErrorIs(t, got.Err, types.ErrPersistenceFailed)
}

func TestStatistics(t *testing.T) {
	s, _ := newFileStore(t)
	assert.Equal(t, types.Statistics{}, s.Statistics())

	seed(t, s)
	st := s.Statistics()
	assert.Equal(t, 2, st.PlayTypeCount)
	assert.Equal(t, 1, st.CategoryCount)
	assert.Equal(t, 2, st.EquipmentCount)
	assert.Equal(t, int64(17100), st.TotalValue)
	assert.Equal(t, int64(8550), st.AverageEquipmentValue())
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newFileStore(t)
	hiking := mustPlayType(t, s, "Hiking")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := s.CreateEquipment(types.EquipmentInput{Name: "Item", PlayTypeID: types.StringRef(hiking.ID)})
				assert.NoError(t, err)
				_ = s.EquipmentForPlayType(hiking.ID)
				_ = s.Statistics()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, s.EquipmentForPlayType(hiking.ID), 80)
	seen := map[string]bool{}
	for _, e := range s.Equipment() {
		assert.False(t, seen[e.ID])
		seen[e.ID] = true
	}
}
