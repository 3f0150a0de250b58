package core

import (
	"errors"
	"fmt"
)

// ErrCorruptState is returned when persisted game data cannot be turned back
// into a consistent game.
var ErrCorruptState = errors.New("wordwar: corrupt game state")

// Snapshot is the flat persisted form of a game. It is enough to rebuild a
// game without replaying history. The pending selection is not included.
type Snapshot struct {
	Rows          int           `yaml:"rows"`
	Cols          int           `yaml:"cols"`
	Letters       string        `yaml:"letters"` // Row-major, one letter per tile
	States        []LetterState `yaml:"states"`
	Phase         Phase         `yaml:"phase"`
	Player1Points int           `yaml:"player1_points"`
	Player2Points int           `yaml:"player2_points"`
	HasPassed     bool          `yaml:"has_passed"`
	PlayedWords   []string      `yaml:"played_words,omitempty"`
}

// Snapshot captures the current state for persistence.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Rows:          g.grid.rows,
		Cols:          g.grid.cols,
		Letters:       string(g.grid.Letters()),
		States:        g.grid.States(),
		Phase:         g.phase,
		Player1Points: g.points[Player1],
		Player2Points: g.points[Player2],
		HasPassed:     g.hasPassed,
		PlayedWords:   g.played.Words(),
	}
}

// Result returns the outcome implied by a finished snapshot.
func (s Snapshot) Result() (GameResult, bool) {
	if s.Phase != GameOver {
		return Draw, false
	}
	return ResultFor(s.Player1Points, s.Player2Points), true
}

// Restore rebuilds a game from a snapshot. Malformed snapshots are rejected
// with an error wrapping ErrCorruptState; nothing is repaired.
func Restore(s Snapshot, dict Dictionary) (*Game, error) {
	if dict == nil {
		panic("wordwar: nil dictionary")
	}

	grid, err := NewGrid(s.Rows, s.Cols, []rune(s.Letters), s.States)
	if err != nil {
		return nil, err
	}
	if int(s.Phase) >= len(phaseNames) {
		return nil, fmt.Errorf("%w: phase %d", ErrCorruptState, uint8(s.Phase))
	}
	if s.Phase != GameOver && grid.Full() {
		return nil, fmt.Errorf("%w: board is full but game is not over", ErrCorruptState)
	}

	played := NewWordTrie()
	for _, w := range s.PlayedWords {
		if len([]rune(normalize(w))) < 2 {
			return nil, fmt.Errorf("%w: played word %q is too short", ErrCorruptState, w)
		}
		played.Add(w)
	}

	g := &Game{
		grid:      grid,
		phase:     s.Phase,
		points:    [2]int{s.Player1Points, s.Player2Points},
		hasPassed: s.HasPassed,
		played:    played,
		dict:      dict,
	}
	if s.Phase == GameOver {
		g.result = ResultFor(s.Player1Points, s.Player2Points)
	}
	return g, nil
}
