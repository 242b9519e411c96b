package store

// Collection names the record collection an Event concerns.
type Collection string

// Collections reported in events. CollectionAll is used by Import.
const (
	CollectionPlayTypes  Collection = "playtypes"
	CollectionCategories Collection = "categories"
	CollectionEquipment  Collection = "equipment"
	CollectionAll        Collection = "all"
)

// Op is the kind of mutation an Event reports.
type Op string

// Mutation kinds.
const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpImport Op = "import"
)

// Event describes one committed mutation. Err is non-nil when the change was
// applied in memory but could not be persisted.
type Event struct {
	Collection Collection
	Op         Op
	ID         string // Record ID; empty for imports.
	Err        error
}

// Subscribe registers fn to be called after every committed mutation.
// Callbacks run on the mutating goroutine after the store lock is released,
// so they may call back into the store. The returned func unregisters fn.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
