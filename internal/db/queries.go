package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/pedalgo-dashboard-tui/internal/logger"
	"github.com/j-veylop/pedalgo-dashboard-tui/internal/models"
)

var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	sqlTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700 MST",
}

func parseTimeString(s string) (time.Time, bool) {
	for _, format := range timeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

const filterHistoryColumns = `id, session_id, applied_at, date_from, date_to,
	season, weather, record_count, total_rentals`

// InsertFilterHistory records an applied filter. The entry's ID is set on
// success and a zero AppliedAt defaults to now.
func (db *DB) InsertFilterHistory(entry *models.FilterHistoryEntry) error {
	query := `
		INSERT INTO filter_history (
			session_id, applied_at, date_from, date_to, season, weather,
			record_count, total_rentals
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	appliedAt := entry.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		entry.SessionID,
		appliedAt.UTC().Format(sqlTimeLayout),
		entry.Criteria.DateFrom.Format(models.DateLayout),
		entry.Criteria.DateTo.Format(models.DateLayout),
		int(entry.Criteria.Season),
		int(entry.Criteria.Weather),
		entry.RecordCount,
		entry.TotalRentals,
	)
	if err != nil {
		return fmt.Errorf("failed to insert filter history: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}

	return nil
}

// GetRecentFilters returns up to limit entries, newest first.
func (db *DB) GetRecentFilters(limit int) ([]models.FilterHistoryEntry, error) {
	query := `
		SELECT ` + filterHistoryColumns + `
		FROM filter_history
		ORDER BY applied_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query filter history: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var entries []models.FilterHistoryEntry
	for rows.Next() {
		entry, err := scanFilterHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

// GetLastFilter returns the most recent entry, or nil if there is none.
func (db *DB) GetLastFilter() (*models.FilterHistoryEntry, error) {
	query := `
		SELECT ` + filterHistoryColumns + `
		FROM filter_history
		ORDER BY applied_at DESC, id DESC
		LIMIT 1
	`

	entry, err := scanFilterHistory(db.QueryRowContext(context.Background(), query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PruneFilterHistory keeps only the newest keep entries and returns how many
// rows were removed.
func (db *DB) PruneFilterHistory(keep int) (int64, error) {
	query := `
		DELETE FROM filter_history
		WHERE id NOT IN (
			SELECT id FROM filter_history
			ORDER BY applied_at DESC, id DESC
			LIMIT ?
		)
	`

	result, err := db.ExecContext(context.Background(), query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune filter history: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFilterHistory(row rowScanner) (*models.FilterHistoryEntry, error) {
	var entry models.FilterHistoryEntry
	var appliedAt sql.NullString
	var dateFrom, dateTo string
	var season, weather int

	err := row.Scan(
		&entry.ID,
		&entry.SessionID,
		&appliedAt,
		&dateFrom,
		&dateTo,
		&season,
		&weather,
		&entry.RecordCount,
		&entry.TotalRentals,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan filter history: %w", err)
	}

	if appliedAt.Valid {
		if t, ok := parseTimeString(appliedAt.String); ok {
			entry.AppliedAt = t
		}
	}
	if entry.Criteria.DateFrom, err = models.ParseDate(dateFrom); err != nil {
		return nil, fmt.Errorf("filter history %d: %w", entry.ID, err)
	}
	if entry.Criteria.DateTo, err = models.ParseDate(dateTo); err != nil {
		return nil, fmt.Errorf("filter history %d: %w", entry.ID, err)
	}
	entry.Criteria.Season = models.Season(season)
	entry.Criteria.Weather = models.Weather(weather)

	return &entry, nil
}

// InsertSessionEvent records a session lifecycle event.
func (db *DB) InsertSessionEvent(sessionID, eventType, detail string) error {
	query := `
		INSERT INTO session_events (session_id, event_type, detail, timestamp)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.ExecContext(context.Background(), query,
		sessionID,
		eventType,
		nullString(detail),
		time.Now().UTC().Format(sqlTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session event: %w", err)
	}
	return nil
}

// CountSessionEvents returns how many events of eventType the session logged.
func (db *DB) CountSessionEvents(sessionID, eventType string) (int, error) {
	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM session_events WHERE session_id = ? AND event_type = ?",
		sessionID, eventType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count session events: %w", err)
	}
	return n, nil
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
