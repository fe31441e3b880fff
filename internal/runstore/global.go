package runstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &RunStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global run manager.
// backend can be NoneBackend to disable run tracking.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewRunStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.runs = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.runs != nil {
			if err := Manager.runs.Close(); err != nil {
				contract.LogWarn("Failed to close run store", err)
			}
			Manager.runs = nil
		}
	})
}

// ClearRuns removes all persisted run tracking data for the given backend.
// For SQLite this deletes the database file; for server backends it drops
// the run tables.
func ClearRuns(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.NoneBackend:
		return nil

	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRunDBFilePath()
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove run database %q: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName := "mysql"
		if backend == schema.PostgreSQLBackend {
			driverName = "pgx"
		}
		db, err := sql.Open(driverName, connStr)
		if err != nil {
			return fmt.Errorf("failed to open %s database: %w", backend, err)
		}
		defer func() { _ = db.Close() }()

		for _, table := range []string{trendSummariesTable, runsTable} {
			query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
			if _, err := db.Exec(query); err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}
