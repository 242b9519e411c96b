// Package store implements the equipment record store: three in-memory
// collections (play types, categories, equipment) that are validated,
// kept referentially intact, and persisted to three independent blobs after
// every successful mutation.
//
// A Store is safe for concurrent use; a single lock serializes all access.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/petar-djukic/equipments/pkg/types"
)

// Blob names, one per collection.
const (
	PlayTypesBlob  = "playtypes.jsonl"
	CategoriesBlob = "categories.jsonl"
	EquipmentBlob  = "equipments.jsonl"
)

// Store owns the three record collections.
type Store struct {
	mu       sync.RWMutex
	blobs    types.BlobStore
	clock    func() time.Time
	newID    func() (string, error)
	images   types.ImageChecker
	logger   *slog.Logger
	validate *validator.Validate

	playTypes  []types.PlayType
	categories []types.Category
	equipment  []types.Equipment

	loadWarnings []error

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator replaces the UUID v7 generator used for new records.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Store) { s.newID = gen }
}

// WithImageChecker enables strict image validation: every image path must
// resolve to an existing file according to checker.
func WithImageChecker(checker types.ImageChecker) Option {
	return func(s *Store) { s.images = checker }
}

// WithLogger sets the logger for load warnings and persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New constructs a store backed by blobs and loads the persisted collections.
// A blob that is missing yields an empty collection; a blob that cannot be
// read or decoded also yields an empty collection and is reported through
// LoadWarnings without preventing the other blobs from loading.
func New(blobs types.BlobStore, opts ...Option) (*Store, error) {
	if blobs == nil {
		return nil, errors.New("store: nil blob store")
	}
	s := &Store{
		blobs:  blobs,
		clock:  func() time.Time { return time.Now().UTC() },
		newID:  newUUID,
		logger: slog.Default(),
		subs:   make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	v, err := newValidator(s.images)
	if err != nil {
		return nil, err
	}
	s.validate = v
	s.load()
	return s, nil
}

// newUUID generates a UUID v7 string.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}

// LoadWarnings returns the non-fatal errors met while loading blobs at
// construction. Each wraps types.ErrPersistenceFailed.
func (s *Store) LoadWarnings() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]error(nil), s.loadWarnings...)
}

// mutate runs fn under the write lock. fn reports the event describing its
// change, whether anything changed, and a validation error. On change the
// collections are persisted and subscribers are notified after the lock is
// released. A persistence error is returned but the in-memory change stays.
func (s *Store) mutate(fn func() (Event, bool, error)) error {
	s.mu.Lock()
	ev, changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	ev.Err = s.persistLocked()
	s.mu.Unlock()

	s.notify(ev)
	return ev.Err
}

// persistLocked writes all three collections. Every blob is attempted even
// when an earlier one fails. The caller must hold s.mu.
func (s *Store) persistLocked() error {
	var errs []error
	if err := s.putBlob(PlayTypesBlob, s.playTypes); err != nil {
		errs = append(errs, err)
	}
	if err := s.putBlob(CategoriesBlob, s.categories); err != nil {
		errs = append(errs, err)
	}
	if err := s.putBlob(EquipmentBlob, s.equipment); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	err := fmt.Errorf("%w: %w", types.ErrPersistenceFailed, errors.Join(errs...))
	s.logger.Error("persisting collections", "error", err)
	return err
}

func (s *Store) putBlob(name string, records any) error {
	data, err := encodeRecords(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := s.blobs.Put(name, data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// load reads each blob independently.
func (s *Store) load() {
	s.playTypes = loadBlob(s, PlayTypesBlob, func(p types.PlayType) string { return p.ID })
	s.categories = loadBlob(s, CategoriesBlob, func(c types.Category) string { return c.ID })
	s.equipment = loadBlob(s, EquipmentBlob, func(e types.Equipment) string { return e.ID })
	for i := range s.equipment {
		if s.equipment[i].Images == nil {
			s.equipment[i].Images = []string{}
		}
	}
	s.dropDanglingReferences()
}

func loadBlob[T any](s *Store, name string, idOf func(T) string) []T {
	data, err := s.blobs.Get(name)
	if errors.Is(err, types.ErrBlobNotFound) {
		return []T{}
	}
	if err == nil {
		var records []T
		records, err = decodeRecords(data, idOf)
		if err == nil {
			return records
		}
	}
	err = fmt.Errorf("%w: loading %s: %w", types.ErrPersistenceFailed, name, err)
	s.loadWarnings = append(s.loadWarnings, err)
	s.logger.Warn("collection reset to empty", "blob", name, "error", err)
	return []T{}
}

// dropDanglingReferences nulls equipment references to records that did not
// load, so no reader ever sees a dangling foreign key.
func (s *Store) dropDanglingReferences() {
	for i := range s.equipment {
		e := &s.equipment[i]
		if e.PlayTypeID != nil && s.playTypeIndex(*e.PlayTypeID) < 0 {
			s.logger.Warn("dropping dangling play type reference", "equipment", e.ID, "play_type", *e.PlayTypeID)
			e.PlayTypeID = nil
		}
		if e.CategoryID != nil && s.categoryIndex(*e.CategoryID) < 0 {
			s.logger.Warn("dropping dangling category reference", "equipment", e.ID, "category", *e.CategoryID)
			e.CategoryID = nil
		}
	}
}

// laterOf returns t, or floor when t is before it. Keeps UpdatedAt from
// preceding CreatedAt when the clock steps backwards.
func laterOf(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}
