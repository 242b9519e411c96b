package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/equipments/internal/imagestore"
	"github.com/petar-djukic/equipments/pkg/types"
)

func TestCreateEquipmentValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   types.EquipmentInput
		wantErr error
	}{
		{name: "empty name", input: types.EquipmentInput{Name: " "}, wantErr: types.ErrEmptyName},
		{name: "negative price", input: types.EquipmentInput{Name: "Ball", Price: -1}, wantErr: types.ErrInvalidPrice},
		{name: "negative rating", input: types.EquipmentInput{Name: "Ball", Rating: -1}, wantErr: types.ErrInvalidRating},
		{name: "rating above five", input: types.EquipmentInput{Name: "Ball", Rating: 6}, wantErr: types.ErrInvalidRating},
		{name: "blank image path", input: types.EquipmentInput{Name: "Ball", Images: []string{"/a.jpg", "  "}}, wantErr: types.ErrInvalidImagePath},
		{name: "empty name wins over bad price", input: types.EquipmentInput{Name: "", Price: -5, Rating: 9}, wantErr: types.ErrEmptyName},
		{name: "price wins over rating", input: types.EquipmentInput{Name: "Ball", Price: -5, Rating: 9}, wantErr: types.ErrInvalidPrice},
		{name: "rating wins over images", input: types.EquipmentInput{Name: "Ball", Rating: 9, Images: []string{""}}, wantErr: types.ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newFileStore(t)
			_, err := s.CreateEquipment(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, types.ErrValidationFailed)
			assert.Empty(t, s.Equipment())
		})
	}
}

func TestCreateEquipmentBoundaries(t *testing.T) {
	s, _ := newFileStore(t)
	for _, rating := range []int{0, 5} {
		e, err := s.CreateEquipment(types.EquipmentInput{Name: "Ball", Rating: rating, Price: 0})
		require.NoError(t, err)
		assert.Equal(t, rating, e.Rating)
	}
	for _, e := range s.Equipment() {
		assert.GreaterOrEqual(t, e.Price, int64(0))
		assert.GreaterOrEqual(t, e.Rating, types.MinRating)
		assert.LessOrEqual(t, e.Rating, types.MaxRating)
	}
}

func TestCreateEquipmentMissingReference(t *testing.T) {
	s, _ := newFileStore(t)

	_, err := s.CreateEquipment(types.EquipmentInput{Name: "Ball", PlayTypeID: types.StringRef(uuid.NewString())})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.CreateEquipment(types.EquipmentInput{Name: "Ball", CategoryID: types.StringRef(uuid.NewString())})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Empty(t, s.Equipment())
}

func TestCreateEquipmentCopiesInput(t *testing.T) {
	s, _ := newFileStore(t)
	images := []string{"/a.jpg"}
	bought := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	e := mustEquipment(t, s, types.EquipmentInput{Name: "Racket", Images: images, PurchaseDate: &bought})

	images[0] = "/changed.jpg"
	bought = bought.AddDate(1, 0, 0)
	e.Images[0] = "/also-changed.jpg"

	got, ok := s.EquipmentByID(e.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"/a.jpg"}, got.Images)
	assert.Equal(t, 2025, got.PurchaseDate.Year())
}

func TestStrictImageValidation(t *testing.T) {
	dir := t.TempDir()
	images, err := imagestore.New(dir)
	require.NoError(t, err)
	existing := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("jpeg"), 0o644))

	s, _ := newFileStore(t, WithImageChecker(images))

	_, err = s.CreateEquipment(types.EquipmentInput{Name: "Ball", Images: []string{existing}})
	assert.NoError(t, err)

	_, err = s.CreateEquipment(types.EquipmentInput{Name: "Ball", Images: []string{filepath.Join(dir, "missing.jpg")}})
	assert.ErrorIs(t, err, types.ErrInvalidImagePath)
	assert.Len(t, s.Equipment(), 1)
}

func TestLenientImageValidationAcceptsUnknownPaths(t *testing.T) {
	s, _ := newFileStore(t)
	_, err := s.CreateEquipment(types.EquipmentInput{Name: "Ball", Images: []string{"/nowhere/photo.jpg"}})
	assert.NoError(t, err)
}

func TestEquipmentFilters(t *testing.T) {
	s, _ := newFileStore(t)
	hiking := mustPlayType(t, s, "Hiking")
	running := mustPlayType(t, s, "Running")
	footwear := mustCategory(t, s, "Footwear")

	boots := mustEquipment(t, s, types.EquipmentInput{Name: "Boots", PlayTypeID: types.StringRef(hiking.ID), CategoryID: types.StringRef(footwear.ID)})
	poles := mustEquipment(t, s, types.EquipmentInput{Name: "Poles", PlayTypeID: types.StringRef(hiking.ID)})
	trainers := mustEquipment(t, s, types.EquipmentInput{Name: "Trainers", PlayTypeID: types.StringRef(running.ID), CategoryID: types.StringRef(footwear.ID)})
	mustEquipment(t, s, types.EquipmentInput{Name: "Loose"})

	ids := func(es []types.Equipment) []string {
		out := []string{}
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{boots.ID, poles.ID}, ids(s.EquipmentForPlayType(hiking.ID)))
	assert.Equal(t, []string{trainers.ID}, ids(s.EquipmentForPlayType(running.ID)))
	assert.Equal(t, []string{boots.ID, trainers.ID}, ids(s.EquipmentForCategory(footwear.ID)))
	assert.Empty(t, s.EquipmentForPlayType(uuid.NewString()))
	assert.Len(t, s.Equipment(), 4)
}

func TestUpdateEquipment(t *testing.T) {
	s, _ := newFileStore(t)
	hiking := mustPlayType(t, s, "Hiking")
	e := mustEquipment(t, s, types.EquipmentInput{Name: "Boots", Price: 10000, Rating: 3})

	t.Run("replaces record", func(t *testing.T) {
		e.Price = 12000
		e.Rating = 4
		e.PlayTypeID = types.StringRef(hiking.ID)
		got, err := s.UpdateEquipment(e)
		require.NoError(t, err)
		assert.Equal(t, int64(12000), got.Price)
		assert.Equal(t, e.CreatedAt, got.CreatedAt)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))

		stored, _ := s.EquipmentByID(e.ID)
		assert.Equal(t, got, stored)
	})

	t.Run("invalid rating leaves record unchanged", func(t *testing.T) {
		bad := e
		bad.Rating = 7
		_, err := s.UpdateEquipment(bad)
		assert.ErrorIs(t, err, types.ErrInvalidRating)
		stored, _ := s.EquipmentByID(e.ID)
		assert.Equal(t, 4, stored.Rating)
	})

	t.Run("missing reference rejected", func(t *testing.T) {
		bad := e
		bad.CategoryID = types.StringRef(uuid.NewString())
		_, err := s.UpdateEquipment(bad)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("missing ID is ErrNotFound", func(t *testing.T) {
		ghost := e
		ghost.ID = uuid.NewString()
		_, err := s.UpdateEquipment(ghost)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Len(t, s.Equipment(), 1)
	})
}

func TestDeleteEquipment(t *testing.T) {
	s, _ := newFileStore(t)
	hiking := mustPlayType(t, s, "Hiking")
	e := mustEquipment(t, s, types.EquipmentInput{Name: "Boots", PlayTypeID: types.StringRef(hiking.ID)})

	require.NoError(t, s.DeleteEquipment(e.ID))
	_, ok := s.EquipmentByID(e.ID)
	assert.False(t, ok)
	_, ok = s.PlayType(hiking.ID)
	assert.True(t, ok, "play type survives equipment deletion")

	assert.NoError(t, s.DeleteEquipment(e.ID), "second delete is a no-op")
}

func TestBasketballScenario(t *testing.T) {
	s, dir := newFileStore(t)

	basketball := mustPlayType(t, s, "Basketball")
	shoes := mustEquipment(t, s, types.EquipmentInput{
		Name:       "Shoes",
		PlayTypeID: types.StringRef(basketball.ID),
		Price:      13990,
		Rating:     5,
	})

	got := s.EquipmentForPlayType(basketball.ID)
	require.Len(t, got, 1)
	assert.Equal(t, shoes.ID, got[0].ID)
	assert.Equal(t, "Shoes", got[0].Name)

	require.NoError(t, s.DeletePlayType(basketball.ID))

	after, ok := s.EquipmentByID(shoes.ID)
	require.True(t, ok)
	assert.Nil(t, after.PlayTypeID)

	reloaded, ok := reopen(t, dir).EquipmentByID(shoes.ID)
	require.True(t, ok)
	assert.Nil(t, reloaded.PlayTypeID, "nulled reference is persisted")
}
