package migrations

import (
	"database/sql"
	"fmt"

	"worker/internal/logging"
)

func init() {
	RegisterGoMigration(3, Up_000003_unregister_active_intervals, Down_000003_unregister_active_intervals)
}

// Up_000003_unregister_active_intervals clears the registered flag of rows
// without a clock out. An active interval cannot be registered, and such
// rows would otherwise fail to load.
func Up_000003_unregister_active_intervals(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT id FROM time_intervals WHERE registered <> 0 AND stop_ms = 0")
	if err != nil {
		return fmt.Errorf("failed to query time intervals: %w", err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan time interval: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating time intervals: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare("UPDATE time_intervals SET registered = 0 WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			return fmt.Errorf("failed to unregister time interval %d: %w", id, err)
		}
		logging.Debugf("  unregistered active time interval %d\n", id)
	}

	logging.Debugf("Migration 000003: %d active time interval(s) unregistered\n", len(ids))
	return nil
}

// Down_000003_unregister_active_intervals is a no-op, the cleared flags
// cannot be told apart from intervals that were never registered.
func Down_000003_unregister_active_intervals(tx *sql.Tx) error {
	return nil
}
