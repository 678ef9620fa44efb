// Package persistence provides SQLite-based run history storage. It records
// results only; a run can be analyzed afterwards but never restored.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/invasion/internal/engine"
)

// DB wraps a SQLite connection for run history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		grid_x INTEGER NOT NULL,
		grid_y INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		turns INTEGER,
		outcome TEXT,
		humans_start INTEGER NOT NULL,
		hunters_start INTEGER NOT NULL,
		zombies_start INTEGER NOT NULL,
		humans_end INTEGER,
		hunters_end INTEGER,
		zombies_end INTEGER
	);

	CREATE TABLE IF NOT EXISTS turn_stats (
		run_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		humans INTEGER NOT NULL,
		hunters INTEGER NOT NULL,
		zombies INTEGER NOT NULL,
		PRIMARY KEY (run_id, turn)
	);

	CREATE INDEX IF NOT EXISTS idx_turn_stats_run ON turn_stats(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Recorder writes one run's history. Safe to use as a nil pointer: every
// method is then a no-op, so callers can wire recording unconditionally.
type Recorder struct {
	db    *DB
	runID string
}

// BeginRun registers a new run and returns its recorder.
func (db *DB) BeginRun(sim *engine.Simulation) (*Recorder, error) {
	id := uuid.NewString()
	stats := sim.Stats()
	snap := sim.Snapshot()

	_, err := db.conn.Exec(`INSERT INTO runs
		(id, seed, grid_x, grid_y, started_at, humans_start, hunters_start, zombies_start)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, sim.Seed(), snap.Bounds.X, snap.Bounds.Y,
		time.Now().UTC().Format(time.RFC3339),
		stats.Humans, stats.Hunters, stats.Zombies,
	)
	if err != nil {
		return nil, fmt.Errorf("begin run: %w", err)
	}
	return &Recorder{db: db, runID: id}, nil
}

// RunID returns the identifier of the recorded run.
func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.runID
}

// RecordTurn appends one turn's population counts.
func (r *Recorder) RecordTurn(stats engine.Stats) error {
	if r == nil {
		return nil
	}
	_, err := r.db.conn.Exec(
		"INSERT INTO turn_stats (run_id, turn, humans, hunters, zombies) VALUES (?, ?, ?, ?, ?)",
		r.runID, stats.Turn, stats.Humans, stats.Hunters, stats.Zombies,
	)
	if err != nil {
		return fmt.Errorf("record turn %d: %w", stats.Turn, err)
	}
	return nil
}

// FinishRun stores the outcome and final counts.
func (r *Recorder) FinishRun(outcome engine.Outcome, stats engine.Stats) error {
	if r == nil {
		return nil
	}
	_, err := r.db.conn.Exec(`UPDATE runs SET
		finished_at = ?, turns = ?, outcome = ?,
		humans_end = ?, hunters_end = ?, zombies_end = ?
		WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339),
		stats.Turn, string(outcome),
		stats.Humans, stats.Hunters, stats.Zombies,
		r.runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RunRecord is one completed or in-flight run as stored.
type RunRecord struct {
	ID           string  `db:"id" json:"id"`
	Seed         int64   `db:"seed" json:"seed"`
	GridX        int     `db:"grid_x" json:"grid_x"`
	GridY        int     `db:"grid_y" json:"grid_y"`
	StartedAt    string  `db:"started_at" json:"started_at"`
	FinishedAt   *string `db:"finished_at" json:"finished_at,omitempty"`
	Turns        *int64  `db:"turns" json:"turns,omitempty"`
	Outcome      *string `db:"outcome" json:"outcome,omitempty"`
	HumansStart  int     `db:"humans_start" json:"humans_start"`
	HuntersStart int     `db:"hunters_start" json:"hunters_start"`
	ZombiesStart int     `db:"zombies_start" json:"zombies_start"`
	HumansEnd    *int64  `db:"humans_end" json:"humans_end,omitempty"`
	HuntersEnd   *int64  `db:"hunters_end" json:"hunters_end,omitempty"`
	ZombiesEnd   *int64  `db:"zombies_end" json:"zombies_end,omitempty"`
}

// RunHistory returns the most recent runs, newest first.
func (db *DB) RunHistory(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("run history: %w", err)
	}
	return runs, nil
}

// TurnHistory returns the recorded per-turn counts for a run.
func (db *DB) TurnHistory(runID string) ([]engine.Stats, error) {
	var stats []engine.Stats
	err := db.conn.Select(&stats,
		"SELECT turn, humans, hunters, zombies FROM turn_stats WHERE run_id = ? ORDER BY turn", runID)
	if err != nil {
		return nil, fmt.Errorf("turn history: %w", err)
	}
	return stats, nil
}
