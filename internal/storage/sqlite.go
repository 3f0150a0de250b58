// Package storage provides SQLite-based persistence for saved games and
// finished-game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
	"github.com/vovakirdan/wordwar/internal/session"
)

var (
	// ErrNotFound is returned when no game is stored under the requested id.
	ErrNotFound = errors.New("storage: game not found")

	// ErrAmbiguousID is returned when an id prefix matches more than one game.
	ErrAmbiguousID = errors.New("storage: ambiguous game id")
)

// Store manages the SQLite database connection for game persistence.
type Store struct {
	db *sql.DB
}

// GameRecord summarizes a saved game without decoding its board.
type GameRecord struct {
	ID            string
	Phase         core.Phase
	Player1Points int
	Player2Points int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ResultRecord is a finished game.
type ResultRecord struct {
	ID            int64
	GameID        string
	Result        core.GameResult
	Player1Points int
	Player2Points int
	Words         int // Number of words played
	CreatedAt     time.Time
}

// Stats aggregates finished games.
type Stats struct {
	Games       int
	Player1Wins int
	Player2Wins int
	Draws       int
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			player1_points INTEGER NOT NULL DEFAULT 0,
			player2_points INTEGER NOT NULL DEFAULT 0,
			snapshot BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_updated ON games(updated_at DESC);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			result TEXT NOT NULL,
			player1_points INTEGER NOT NULL,
			player2_points INTEGER NOT NULL,
			words INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_result ON results(result);
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

// SaveGame inserts or replaces the snapshot stored under id.
func (s *Store) SaveGame(id string, snap core.Snapshot) error {
	if id == "" {
		return errors.New("storage: empty game id")
	}
	blob, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO games (id, phase, player1_points, player2_points, snapshot)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   phase = excluded.phase,
		   player1_points = excluded.player1_points,
		   player2_points = excluded.player2_points,
		   snapshot = excluded.snapshot,
		   updated_at = CURRENT_TIMESTAMP`,
		id, snap.Phase.String(), snap.Player1Points, snap.Player2Points, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game %s: %w", id, err)
	}
	return nil
}

// ImportGame stores snap under a freshly generated id and returns the id.
func (s *Store) ImportGame(snap core.Snapshot) (string, error) {
	id := uuid.NewString()
	if err := s.SaveGame(id, snap); err != nil {
		return "", err
	}
	return id, nil
}

// LoadGame returns the snapshot stored under id.
func (s *Store) LoadGame(id string) (core.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRow("SELECT snapshot FROM games WHERE id = ?", id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("storage: cannot query game %s: %w", id, err)
	}

	snap, err := DecodeSnapshot(blob)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("storage: game %s: %w", id, err)
	}
	return snap, nil
}

// ResolveID expands a unique id prefix to the full id of a saved game.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.db.Query(
		"SELECT id FROM games WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot resolve id %s: %w", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		// An exact match wins over longer ids sharing the prefix
		if ids[0] == prefix {
			return prefix, nil
		}
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// DeleteGame removes a saved game. Recorded results are kept.
func (s *Store) DeleteGame(id string) error {
	res, err := s.db.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete game %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete game %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// DeleteAll removes every saved game and result.
func (s *Store) DeleteAll() error {
	if _, err := s.db.Exec("DELETE FROM games; DELETE FROM results;"); err != nil {
		return fmt.Errorf("storage: cannot clear database: %w", err)
	}
	return nil
}

// ListGames returns saved games, most recently updated first.
func (s *Store) ListGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, phase, player1_points, player2_points, created_at, updated_at
		 FROM games
		 ORDER BY updated_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var r GameRecord
		var phase string
		var createdAt, updatedAt any
		if err := rows.Scan(&r.ID, &phase, &r.Player1Points, &r.Player2Points, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.Phase, err = core.ParsePhase(phase); err != nil {
			return nil, fmt.Errorf("storage: game %s: %w", r.ID, err)
		}
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RecordResult stores the outcome of a finished game. Recording the same game
// twice keeps the first result.
func (s *Store) RecordResult(id string, snap core.Snapshot) error {
	result, ok := snap.Result()
	if !ok {
		return fmt.Errorf("storage: game %s is not over", id)
	}

	_, err := s.db.Exec(
		`INSERT INTO results (game_id, result, player1_points, player2_points, words)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(game_id) DO NOTHING`,
		id, result.String(), snap.Player1Points, snap.Player2Points, len(snap.PlayedWords),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result for %s: %w", id, err)
	}
	return nil
}

// RecentResults returns the most recently finished games.
func (s *Store) RecentResults(limit int) ([]ResultRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, result, player1_points, player2_points, words, created_at
		 FROM results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var r ResultRecord
		var result string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &result, &r.Player1Points, &r.Player2Points, &r.Words, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.Result, err = parseResult(result); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Ensure Store implements session.Saver
var _ session.Saver = (*Store)(nil)

// Stats counts finished games by outcome.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(result = ?), 0),
		        COALESCE(SUM(result = ?), 0),
		        COALESCE(SUM(result = ?), 0)
		 FROM results`,
		core.Player1Win.String(), core.Player2Win.String(), core.Draw.String(),
	).Scan(&st.Games, &st.Player1Wins, &st.Player2Wins, &st.Draws)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

func parseResult(name string) (core.GameResult, error) {
	for _, r := range []core.GameResult{core.Player1Win, core.Player2Win, core.Draw} {
		if r.String() == name {
			return r, nil
		}
	}
	return core.Draw, fmt.Errorf("storage: unknown result %q", name)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
