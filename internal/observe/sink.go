package observe

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Sink writes collected frames to a SQLite database, one row per reporter
// value, tagged with a run id so multiple runs can share a file.
type Sink struct {
	conn  *sqlx.DB
	runID string
}

// OpenSink opens or creates a SQLite database at the given path and starts
// a new run. Use ":memory:" for a throwaway in-process database.
func OpenSink(path string, seed int64) (*Sink, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sink: %w", err)
	}

	s := &Sink{conn: conn, runID: uuid.NewString()}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	_, err = conn.Exec(
		"INSERT INTO runs (id, seed, started) VALUES (?, ?, ?)",
		s.runID, seed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	return s, nil
}

// RunID returns the identifier of the current run.
func (s *Sink) RunID() string {
	return s.runID
}

// Close closes the database connection.
func (s *Sink) Close() error {
	return s.conn.Close()
}

func (s *Sink) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS frames (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, step, name)
	);

	CREATE INDEX IF NOT EXISTS idx_frames_run_step ON frames(run_id, step);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Write stores one frame. names carries the reporter order so rows are
// inserted deterministically.
func (s *Sink) Write(step int, names []string, values map[string]float64) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(
		"INSERT INTO frames (run_id, step, name, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, name := range names {
		if _, err := stmt.Exec(s.runID, step, name, values[name]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReadSeries returns one reporter's values for the current run in step order.
func (s *Sink) ReadSeries(name string) ([]float64, error) {
	var out []float64
	err := s.conn.Select(&out,
		"SELECT value FROM frames WHERE run_id = ? AND name = ? ORDER BY step",
		s.runID, name)
	if err != nil {
		return nil, fmt.Errorf("read series: %w", err)
	}
	return out, nil
}
