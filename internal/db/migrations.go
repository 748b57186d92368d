package db

import (
	"context"
	"fmt"
)

// migrations are applied in order; user_version records how many have run.
var migrations = []string{
	// Older builds stored applied_at via time.Time's String form.
	`UPDATE filter_history
	 SET applied_at = SUBSTR(applied_at, 1, 19)
	 WHERE length(applied_at) > 19 AND applied_at LIKE '% UTC'`,
}

// migrate brings an existing database up to the current schema version.
func (db *DB) migrate() error {
	ctx := context.Background()

	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}

	if version < len(migrations) {
		// PRAGMA does not accept bound parameters.
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}

// SchemaVersion returns the applied migration count.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version)
	return version, err
}
