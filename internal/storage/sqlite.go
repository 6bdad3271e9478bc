// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// A replay is the seed and configuration a round started from plus every
// input frame that advanced it, which is enough to re-simulate the round
// exactly. Scores are not stored; they are derived by replaying.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a replay ID does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Replay is the header of a recorded game.
type Replay struct {
	ID        int64
	GameID    string
	Seed      int64
	Preset    string // Difficulty preset name, for display
	TickRate  int
	Config    string // YAML of the game configuration used
	Ticks     int    // Number of stored frames
	CreatedAt time.Time
}

// Frame is one recorded input frame.
type Frame struct {
	Tick    int
	Bits    uint16  // Action bitmask, see core.InputFrame.Bits
	Elapsed float64 // Seconds since the previous frame
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			tick_rate INTEGER NOT NULL,
			config TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			bits INTEGER NOT NULL,
			elapsed REAL NOT NULL,
			PRIMARY KEY (replay_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay header and its frames in one transaction.
// The Ticks and ID fields of r are ignored. Returns the new replay ID.
func (s *Store) SaveReplay(r Replay, frames []Frame) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec(
		`INSERT INTO replays (game_id, seed, preset, tick_rate, config, ticks)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.Preset, r.TickRate, r.Config, len(frames),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO replay_frames (replay_id, tick, bits, elapsed) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range frames {
		if _, err := stmt.Exec(id, i, int64(f.Bits), f.Elapsed); err != nil {
			return 0, fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Replay loads a replay header and its frames in tick order.
// Returns ErrNotFound if the ID does not exist.
func (s *Store) Replay(id int64) (Replay, []Frame, error) {
	var r Replay
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, game_id, seed, preset, tick_rate, config, ticks, created_at
		 FROM replays WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.Seed, &r.Preset, &r.TickRate, &r.Config, &r.Ticks, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, nil, ErrNotFound
	}
	if err != nil {
		return Replay{}, nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT tick, bits, elapsed FROM replay_frames WHERE replay_id = ? ORDER BY tick`,
		id,
	)
	if err != nil {
		return Replay{}, nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	frames := make([]Frame, 0, r.Ticks)
	for rows.Next() {
		var f Frame
		var bits int64
		if err := rows.Scan(&f.Tick, &bits, &f.Elapsed); err != nil {
			return Replay{}, nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		f.Bits = uint16(bits)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return Replay{}, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return r, frames, nil
}

// ListReplays returns the most recent replay headers, newest first.
func (s *Store) ListReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, preset, tick_rate, config, ticks, created_at
		 FROM replays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		var r Replay
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Seed, &r.Preset, &r.TickRate, &r.Config, &r.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// DeleteReplay removes a replay and its frames.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM replay_frames WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
