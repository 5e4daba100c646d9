package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

// InsertSnapshot records one completed fetch and its per-sector counts.
func (db *DB) InsertSnapshot(ctx context.Context, snap *models.FetchSnapshot) error {
	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO fetches (fetched_at, source, status, total, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		fetchedAt.UTC().Format(timeLayout),
		snap.Source,
		string(snap.Status),
		snap.Total,
		snap.Duration.Milliseconds(),
		nullString(snap.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fetch: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read fetch id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fetch_sectors (fetch_id, position, label, count) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sector insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range snap.Sectors {
		if _, err := stmt.ExecContext(ctx, id, i, c.Label, c.Count); err != nil {
			return fmt.Errorf("failed to insert sector %q: %w", c.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit fetch: %w", err)
	}

	snap.ID = id
	snap.FetchedAt = fetchedAt
	return nil
}

// RecentSnapshots returns up to limit fetches, newest first, with their
// sector counts in the order they were recorded.
func (db *DB) RecentSnapshots(ctx context.Context, limit int) ([]models.FetchSnapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, fetched_at, source, status, total, duration_ms, error
		FROM fetches
		ORDER BY fetched_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent fetches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []models.FetchSnapshot
	index := make(map[int64]int)
	for rows.Next() {
		var s models.FetchSnapshot
		var fetchedAt, status string
		var durationMs int64
		var errStr sql.NullString

		if err := rows.Scan(&s.ID, &fetchedAt, &s.Source, &status, &s.Total, &durationMs, &errStr); err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}

		s.FetchedAt = parseTime(fetchedAt)
		s.Status = models.FetchStatus(status)
		s.Duration = time.Duration(durationMs) * time.Millisecond
		s.Error = errStr.String

		index[s.ID] = len(snaps)
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fetches: %w", err)
	}
	if len(snaps) == 0 {
		return snaps, nil
	}

	if err := db.loadSectors(ctx, snaps, index); err != nil {
		return nil, err
	}
	return snaps, nil
}

func (db *DB) loadSectors(ctx context.Context, snaps []models.FetchSnapshot, index map[int64]int) error {
	oldest, newest := snaps[0].ID, snaps[0].ID
	for _, s := range snaps[1:] {
		oldest = min(oldest, s.ID)
		newest = max(newest, s.ID)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT fetch_id, label, count
		FROM fetch_sectors
		WHERE fetch_id BETWEEN ? AND ?
		ORDER BY fetch_id, position
	`, oldest, newest)
	if err != nil {
		return fmt.Errorf("failed to query fetch sectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var c models.CategoryCount
		if err := rows.Scan(&id, &c.Label, &c.Count); err != nil {
			return fmt.Errorf("failed to scan fetch sector: %w", err)
		}
		if i, ok := index[id]; ok {
			snaps[i].Sectors = append(snaps[i].Sectors, c)
		}
	}
	return rows.Err()
}

// TotalsSeries returns the record totals of the last limit successful
// fetches, oldest first.
func (db *DB) TotalsSeries(ctx context.Context, limit int) ([]float64, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := db.QueryContext(ctx, `
		SELECT total FROM (
			SELECT id, fetched_at, total
			FROM fetches
			WHERE status = 'ok'
			ORDER BY fetched_at DESC, id DESC
			LIMIT ?
		) ORDER BY fetched_at ASC, id ASC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	series := []float64{}
	for rows.Next() {
		var total int
		if err := rows.Scan(&total); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		series = append(series, float64(total))
	}
	return series, rows.Err()
}

// StatusCounts returns how many fetches ended in each status.
func (db *DB) StatusCounts(ctx context.Context) (map[models.FetchStatus]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM fetches GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[models.FetchStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[models.FetchStatus(status)] = n
	}
	return counts, rows.Err()
}

// PruneSnapshots deletes all but the newest keep fetches.
func (db *DB) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	result, err := db.ExecContext(ctx, `
		DELETE FROM fetches
		WHERE id NOT IN (
			SELECT id FROM fetches ORDER BY fetched_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune fetches: %w", err)
	}
	return result.RowsAffected()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
