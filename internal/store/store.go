// Package store defines the local key/value persistence the task
// controller reads from and writes to, and opens a configured backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/worktravel/internal/store/jsonstore"
	"github.com/Makepad-fr/worktravel/internal/store/memstore"
	"github.com/Makepad-fr/worktravel/internal/store/sqlitestore"
)

// Keys used by the task controller.
const (
	TasksKey = "@toDos"
	ModeKey  = "@working"
	// LastIDKey holds the highest task ID ever issued, so IDs of deleted
	// tasks are not handed out again after a restart.
	LastIDKey = "@lastId"
)

// Store is a key/value store of opaque string blobs.
// Get reports ok=false with a nil error when the key was never written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Open returns the backend called name, keeping its data under dataDir.
func Open(name, dataDir string) (Store, error) {
	switch strings.ToLower(name) {
	case "", BackendFile:
		s, err := jsonstore.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("file store: %w", err)
		}
		return s, nil
	case BackendSQLite:
		s, err := sqlitestore.Open(dataDir)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return s, nil
	case BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// Backends lists the names Open accepts.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}
