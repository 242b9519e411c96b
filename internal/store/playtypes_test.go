package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/equipments/pkg/types"
)

func TestCreatePlayType(t *testing.T) {
	s, _ := newFileStore(t)

	p, err := s.CreatePlayType(types.PlayTypeInput{Name: "Hiking", Description: "Trails"})
	require.NoError(t, err)

	_, err = uuid.Parse(p.ID)
	assert.NoError(t, err, "ID is a canonical UUID")
	assert.Equal(t, "Hiking", p.Name)
	assert.Equal(t, "Trails", p.Description)
	assert.Equal(t, types.DefaultPlayTypeIcon, p.Icon)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, ok := s.PlayType(p.ID)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestCreatePlayTypeValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty name", input: "", wantErr: types.ErrEmptyName},
		{name: "whitespace name", input: " \t\n", wantErr: types.ErrEmptyName},
		{name: "duplicate name", input: "Hiking", wantErr: types.ErrDuplicateName},
		{name: "duplicate after trimming", input: "  Hiking ", wantErr: types.ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newFileStore(t)
			mustPlayType(t, s, "Hiking")

			_, err := s.CreatePlayType(types.PlayTypeInput{Name: tt.input})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, types.ErrValidationFailed)
			assert.Len(t, s.PlayTypes(), 1, "collection unchanged")
		})
	}
}

func TestCreatePlayTypeUniqueIDs(t *testing.T) {
	s, _ := newFileStore(t)
	seen := map[string]bool{}
	for _, name := range []string{"Hiking", "Climbing", "Cycling", "Skiing", "Running"} {
		p := mustPlayType(t, s, name)
		assert.False(t, seen[p.ID], "duplicate ID %s", p.ID)
		seen[p.ID] = true
	}
}

func TestPlayTypesInsertionOrderAndSnapshot(t *testing.T) {
	s, _ := newFileStore(t)
	mustPlayType(t, s, "A")
	mustPlayType(t, s, "B")
	mustPlayType(t, s, "C")

	all := s.PlayTypes()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Name, all[1].Name, all[2].Name})

	all[0].Name = "mutated"
	assert.Equal(t, "A", s.PlayTypes()[0].Name, "callers cannot mutate store state")
}

func TestUpdatePlayType(t *testing.T) {
	s, _ := newFileStore(t)
	p := mustPlayType(t, s, "Basketball")
	mustPlayType(t, s, "Hiking")

	t.Run("replaces fields and bumps UpdatedAt", func(t *testing.T) {
		p.Description = "Indoor court"
		p.Icon = "basketball"
		got, err := s.UpdatePlayType(p)
		require.NoError(t, err)
		assert.Equal(t, "Indoor court", got.Description)
		assert.Equal(t, p.CreatedAt, got.CreatedAt)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))

		stored, _ := s.PlayType(p.ID)
		assert.Equal(t, got, stored)
	})

	t.Run("keeps stored CreatedAt", func(t *testing.T) {
		forged := p
		forged.CreatedAt = epoch.AddDate(5, 0, 0)
		got, err := s.UpdatePlayType(forged)
		require.NoError(t, err)
		assert.Equal(t, p.CreatedAt, got.CreatedAt)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		bad := p
		bad.Name = "  "
		_, err := s.UpdatePlayType(bad)
		assert.ErrorIs(t, err, types.ErrEmptyName)
		stored, _ := s.PlayType(p.ID)
		assert.Equal(t, "Basketball", stored.Name)
	})

	t.Run("duplicate name allowed on update", func(t *testing.T) {
		dup := p
		dup.Name = "Hiking"
		_, err := s.UpdatePlayType(dup)
		assert.NoError(t, err)
	})

	t.Run("missing ID is ErrNotFound", func(t *testing.T) {
		_, err := s.UpdatePlayType(types.PlayType{ID: uuid.NewString(), Name: "Ghost"})
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Len(t, s.PlayTypes(), 2)
	})
}

func TestDeletePlayType(t *testing.T) {
	s, _ := newFileStore(t)
	hiking := mustPlayType(t, s, "Hiking")
	climbing := mustPlayType(t, s, "Climbing")
	boots := mustEquipment(t, s, types.EquipmentInput{Name: "Boots", PlayTypeID: types.StringRef(hiking.ID)})
	rope := mustEquipment(t, s, types.EquipmentInput{Name: "Rope", PlayTypeID: types.StringRef(climbing.ID)})

	require.NoError(t, s.DeletePlayType(hiking.ID))

	_, ok := s.PlayType(hiking.ID)
	assert.False(t, ok)
	for _, e := range s.Equipment() {
		assert.False(t, e.HasPlayType(hiking.ID), "no equipment references the deleted play type")
	}
	got, _ := s.EquipmentByID(boots.ID)
	assert.Nil(t, got.PlayTypeID)
	got, _ = s.EquipmentByID(rope.ID)
	require.NotNil(t, got.PlayTypeID)
	assert.Equal(t, climbing.ID, *got.PlayTypeID)
	assert.Len(t, s.Equipment(), 2, "equipment is not deleted")
}

func TestDeletePlayTypeUnknownIsNoop(t *testing.T) {
	blobs := newMemBlobs()
	s, err := New(blobs)
	require.NoError(t, err)
	mustPlayType(t, s, "Hiking")
	before := blobs.putCount()

	assert.NoError(t, s.DeletePlayType(uuid.NewString()))
	assert.NoError(t, s.DeletePlayType(""))
	assert.Len(t, s.PlayTypes(), 1)
	assert.Equal(t, before, blobs.putCount(), "no write for a no-op delete")
}
