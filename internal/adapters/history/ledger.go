package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"breakdown/internal/ports"

	_ "modernc.org/sqlite"
)

// Ledger implements ports.RunLedger on SQLite.
type Ledger struct {
	db     *sql.DB
	dbPath string
}

var _ ports.RunLedger = (*Ledger)(nil)

// Open creates (or reopens) the run ledger under the given state directory.
func Open(stateDir string) (*Ledger, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, "runs.db")

	// WAL mode so a watcher and a history listing can overlap
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			article TEXT NOT NULL,
			folder TEXT NOT NULL,
			files INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Ledger{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Record inserts a finished run and fills in its assigned ID.
func (l *Ledger) Record(rec *ports.RunRecord) error {
	res, err := l.db.Exec(`
		INSERT INTO runs (article, folder, files, status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Article, rec.Folder, rec.Files, rec.Status, rec.Error,
		rec.StartedAt.UTC().Unix(), rec.FinishedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// List returns the most recent runs, newest first. limit <= 0 means all.
func (l *Ledger) List(limit int) ([]ports.RunRecord, error) {
	query := `
		SELECT id, article, folder, files, status, error, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ports.RunRecord
	for rows.Next() {
		var rec ports.RunRecord
		var started, finished int64
		if err := rows.Scan(&rec.ID, &rec.Article, &rec.Folder, &rec.Files,
			&rec.Status, &rec.Error, &started, &finished); err != nil {
			return nil, err
		}
		rec.StartedAt = time.Unix(started, 0).UTC()
		rec.FinishedAt = time.Unix(finished, 0).UTC()
		records = append(records, rec)
	}

	return records, rows.Err()
}
