package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/equipments/internal/blob"
	"github.com/petar-djukic/equipments/pkg/types"
)

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// newFileStore returns a store over a fresh file blob directory.
func newFileStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	blobs, err := blob.NewFileStore(dir)
	require.NoError(t, err)
	opts = append([]Option{WithClock(stepClock(epoch))}, opts...)
	s, err := New(blobs, opts...)
	require.NoError(t, err)
	return s, dir
}

// reopen builds a second store over the same directory.
func reopen(t *testing.T, dir string) *Store {
	t.Helper()
	blobs, err := blob.NewFileStore(dir)
	require.NoError(t, err)
	s, err := New(blobs)
	require.NoError(t, err)
	return s
}

// memBlobs is an in-memory BlobStore whose writes can be made to fail.
type memBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  map[string]error
	failPut bool
	puts    int
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}, getErr: map[string]error{}}
}

func (m *memBlobs) Get(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.getErr[name]; err != nil {
		return nil, err
	}
	d, ok := m.data[name]
	if !ok {
		return nil, types.ErrBlobNotFound
	}
	return append([]byte(nil), d...), nil
}

func (m *memBlobs) Put(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPut {
		return errors.New("disk full")
	}
	m.data[name] = append([]byte(nil), data...)
	return nil
}

func (m *memBlobs) Close() error { return nil }

func (m *memBlobs) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

func mustPlayType(t *testing.T, s *Store, name string) types.PlayType {
	t.Helper()
	p, err := s.CreatePlayType(types.PlayTypeInput{Name: name})
	require.NoError(t, err)
	return p
}

func mustCategory(t *testing.T, s *Store, name string) types.Category {
	t.Helper()
	c, err := s.CreateCategory(types.CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func mustEquipment(t *testing.T, s *Store, in types.EquipmentInput) types.Equipment {
	t.Helper()
	e, err := s.CreateEquipment(in)
	require.NoError(t, err)
	return e
}
