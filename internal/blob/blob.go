// Package blob implements the durable blob collaborator of the record store.
// Two backends are available: a directory of files written with the
// temp-file, fsync, rename pattern, and a single SQLite database holding one
// row per blob.
package blob

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/petar-djukic/equipments/pkg/types"
)

// sqliteFileName is the database file created in DataDir by the sqlite backend.
const sqliteFileName = "equipments.db"

// Open returns the blob store selected by cfg.Backend, rooted at cfg.DataDir.
// An empty DataDir means the current directory.
func Open(cfg types.Config) (types.BlobStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	switch cfg.Backend {
	case types.BackendFiles:
		return NewFileStore(dataDir)
	case types.BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, sqliteFileName))
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, cfg.Backend)
	}
}

// checkName rejects names that could escape the data directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", types.ErrInvalidBlobName, name)
	}
	return nil
}
