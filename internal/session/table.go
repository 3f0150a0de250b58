// Package session keeps live games in memory and serializes access to each
// one. Every mutation goes through the table, which persists the game
// afterwards when a Saver is configured.
package session

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
)

// ErrUnknownGame is returned for ids that are neither live nor stored.
var ErrUnknownGame = errors.New("session: unknown game")

// Saver persists game snapshots.
// This allows the table to save games without depending on the storage package.
type Saver interface {
	SaveGame(id string, snap core.Snapshot) error
	LoadGame(id string) (core.Snapshot, error)
	RecordResult(id string, snap core.Snapshot) error
}

// State is a read-only copy of a game taken under its lock.
type State struct {
	ID          string
	Grid        *core.Grid
	Pending     []int
	Word        string
	Phase       core.Phase
	Points      [2]int // Committed, indexed by core.Player
	Projected   [2]int // Including the pending selection
	HasPassed   bool
	PlayedWords []string
	Result      core.GameResult
	Over        bool
}

// Mover returns the player whose turn it is.
func (s State) Mover() (core.Player, bool) {
	return s.Phase.Mover()
}

// Selected reports whether tile index is part of the pending selection.
func (s State) Selected(index int) bool {
	return slices.Contains(s.Pending, index)
}

type entry struct {
	mu   sync.Mutex
	game *core.Game
}

// Table tracks live games.
// Thread-safe for concurrent access; each game has its own lock.
type Table struct {
	saver  Saver // Optional, can be nil
	dict   core.Dictionary
	layout core.Layout
	logger *log.Logger

	mu    sync.RWMutex
	games map[string]*entry
}

// New creates a table. saver and logger may be nil.
func New(saver Saver, dict core.Dictionary, layout core.Layout, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{
		saver:  saver,
		dict:   dict,
		layout: layout,
		logger: logger,
		games:  make(map[string]*entry),
	}
}

// Create starts a new game and returns its id. A zero seed picks one from
// the clock.
func (t *Table) Create(seed int64) (string, error) {
	id := uuid.NewString()
	g := core.NewGame(t.dict, core.WithLayout(t.layout), core.WithSeed(seed))

	if t.saver != nil {
		if err := t.saver.SaveGame(id, g.Snapshot()); err != nil {
			return "", fmt.Errorf("session: cannot save new game: %w", err)
		}
	}

	t.mu.Lock()
	t.games[id] = &entry{game: g}
	t.mu.Unlock()

	t.logger.Debug("game created", "id", id, "seed", seed)
	return id, nil
}

// Open makes a stored game live. Opening a live game is a no-op.
func (t *Table) Open(id string) error {
	if _, ok := t.get(id); ok {
		return nil
	}
	if t.saver == nil {
		return fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}

	snap, err := t.saver.LoadGame(id)
	if err != nil {
		return fmt.Errorf("session: cannot open %s: %w", id, err)
	}
	g, err := core.Restore(snap, t.dict)
	if err != nil {
		return fmt.Errorf("session: cannot open %s: %w", id, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Another caller may have opened it meanwhile
	if _, ok := t.games[id]; !ok {
		t.games[id] = &entry{game: g}
		t.logger.Debug("game opened", "id", id, "phase", g.Phase())
	}
	return nil
}

// Close drops a game from memory. The stored copy is untouched.
func (t *Table) Close(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.games, id)
}

// Count returns the number of live games.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.games)
}

// IDs returns the live game ids in sorted order.
func (t *Table) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.games))
	for id := range t.games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (t *Table) get(id string) (*entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.games[id]
	return e, ok
}

// Do runs fn with exclusive access to the game, then saves it. If the game
// ended during fn its result is recorded as well. An error from fn skips
// saving and is returned as is.
func (t *Table) Do(id string, fn func(*core.Game) error) error {
	return t.do(id, func(g *core.Game) (bool, error) {
		return true, fn(g)
	})
}

// do runs fn under the game lock and saves the game when fn reports a change.
func (t *Table) do(id string, fn func(*core.Game) (changed bool, err error)) error {
	e, ok := t.get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	wasOver := e.game.Phase() == core.GameOver
	changed, err := fn(e.game)
	if err != nil || !changed {
		return err
	}

	snap := e.game.Snapshot()
	endedNow := !wasOver && snap.Phase == core.GameOver
	if endedNow {
		result, _ := snap.Result()
		t.logger.Info("game over", "id", id, "result", result,
			"player1", snap.Player1Points, "player2", snap.Player2Points)
	}

	if t.saver == nil {
		return nil
	}
	if err := t.saver.SaveGame(id, snap); err != nil {
		t.logger.Warn("cannot save game", "id", id, "err", err)
		return fmt.Errorf("session: %w", err)
	}
	if endedNow {
		if err := t.saver.RecordResult(id, snap); err != nil {
			t.logger.Warn("cannot record result", "id", id, "err", err)
			return fmt.Errorf("session: %w", err)
		}
	}
	return nil
}

// View runs fn with the game locked. fn must not mutate the game.
func (t *Table) View(id string, fn func(*core.Game)) error {
	return t.do(id, func(g *core.Game) (bool, error) {
		fn(g)
		return false, nil
	})
}

// State returns a copy of the game's current state.
func (t *Table) State(id string) (State, error) {
	var s State
	err := t.View(id, func(g *core.Game) {
		s = State{
			ID:          id,
			Grid:        g.Grid(),
			Pending:     g.Pending(),
			Word:        g.Word(),
			Phase:       g.Phase(),
			HasPassed:   g.HasPassed(),
			PlayedWords: g.PlayedWords(),
		}
		for _, p := range []core.Player{core.Player1, core.Player2} {
			s.Points[p] = g.Points(p)
			s.Projected[p] = g.CurrentScore(p)
		}
		s.Result, s.Over = g.Result()
	})
	return s, err
}

// Select replaces the pending selection. Selections are not persisted.
func (t *Table) Select(id string, indices []int) error {
	return t.do(id, func(g *core.Game) (bool, error) {
		if g.Phase() == core.GameOver {
			return false, fmt.Errorf("session: game %s is over", id)
		}
		// SetPendingWord panics on a bad index; callers here pass user input.
		for _, i := range indices {
			if i < 0 || i >= g.Size() {
				return false, fmt.Errorf("session: tile %d out of range", i)
			}
		}
		g.SetPendingWord(indices)
		return false, nil
	})
}

// Submit plays the pending selection for the player to move. A rejected word
// leaves the game as it was, so nothing is saved.
func (t *Table) Submit(id string) (core.Turn, error) {
	var turn core.Turn
	err := t.do(id, func(g *core.Game) (bool, error) {
		if g.Phase() == core.GameOver {
			return false, fmt.Errorf("session: game %s is over", id)
		}
		turn = g.Submit()
		return turn.Result == core.Success, nil
	})
	if err != nil {
		return turn, err
	}
	t.logger.Debug("turn", "id", id, "player", turn.Player, "word", turn.Word,
		"result", turn.Result, "captures", len(turn.Captures))
	return turn, nil
}

// Pass passes the turn for the player to move. Two passes in a row end the game.
func (t *Table) Pass(id string) error {
	return t.Do(id, func(g *core.Game) error {
		if g.Phase() == core.GameOver {
			return fmt.Errorf("session: game %s is over", id)
		}
		player, _ := g.Mover()
		g.PassTurn()
		t.logger.Debug("pass", "id", id, "player", player)
		return nil
	})
}
