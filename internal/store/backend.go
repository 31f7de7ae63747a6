package store

import (
	"context"
	"fmt"
)

// Backend names a Log implementation.
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

// ValidBackends lists the accepted backend names.
var ValidBackends = []Backend{BackendCSV, BackendSQLite}

// ParseBackend validates a backend name. The empty string selects CSV.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "", BackendCSV:
		return BackendCSV, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("invalid backend %q: must be one of %v", name, ValidBackends)
	}
}

// OpenLog builds the Log for backend at path.
func OpenLog(backend Backend, path string) (Log, error) {
	switch backend {
	case "", BackendCSV:
		return NewCSVLog(path), nil
	case BackendSQLite:
		return OpenSQLite(path, nil)
	default:
		return nil, fmt.Errorf("invalid backend %q: must be one of %v", backend, ValidBackends)
	}
}

// OpenPath is OpenLog followed by Open.
// As with Open, a partially loaded store is returned with its *ir.CorruptStoreError.
func OpenPath(ctx context.Context, backend Backend, path string) (*Store, error) {
	log, err := OpenLog(backend, path)
	if err != nil {
		return nil, err
	}
	s, err := Open(ctx, log)
	if s == nil {
		log.Close()
	}
	return s, err
}
