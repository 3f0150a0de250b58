package core

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Reference board parameters.
const (
	DefaultRows       = 5
	DefaultCols       = 5
	DefaultVowels     = 4
	DefaultVowelSet   = "AEIOU"
	DefaultConsonants = "BCDFHJKLMNPRSTVWXYZQ"
)

// Layout describes the fixed dimensions and alphabets of a board.
type Layout struct {
	Rows       int
	Cols       int
	Vowels     int    // Number of vowel tiles placed on the board
	VowelSet   string // Alphabet vowels are drawn from
	Consonants string // Alphabet consonants are drawn from; 'Q' needs a 'U' on the board
}

// DefaultLayout returns the reference 5x5 layout with four vowels.
func DefaultLayout() Layout {
	return Layout{
		Rows:       DefaultRows,
		Cols:       DefaultCols,
		Vowels:     DefaultVowels,
		VowelSet:   DefaultVowelSet,
		Consonants: DefaultConsonants,
	}
}

// Size returns the number of tiles on the board.
func (l Layout) Size() int {
	return l.Rows * l.Cols
}

// Validate checks that a board can be generated from this layout.
func (l Layout) Validate() error {
	switch {
	case l.Rows <= 0 || l.Cols <= 0:
		return fmt.Errorf("layout: dimensions must be positive, got %dx%d", l.Rows, l.Cols)
	case l.Vowels < 0 || l.Vowels > l.Size():
		return fmt.Errorf("layout: %d vowels do not fit on %d tiles", l.Vowels, l.Size())
	case l.Vowels > 0 && l.VowelSet == "":
		return errors.New("layout: vowel alphabet is empty")
	case l.Vowels < l.Size() && strings.Trim(l.Consonants, "Q") == "":
		return errors.New("layout: consonant alphabet has no letters besides Q")
	}
	if err := checkAlphabet("vowel", l.VowelSet); err != nil {
		return err
	}
	return checkAlphabet("consonant", l.Consonants)
}

// checkAlphabet accepts only the upper-case letters a board can hold.
func checkAlphabet(name, alphabet string) error {
	for i := 0; i < len(alphabet); i++ {
		if c := alphabet[i]; c < 'A' || c > 'Z' {
			return fmt.Errorf("layout: %s alphabet has invalid letter %q", name, rune(c))
		}
	}
	return nil
}

// Tile is one grid cell.
type Tile struct {
	Letter rune
	State  LetterState
}

// Grid is the fixed row-major array of tiles for one game.
// Letters never change after construction; only states do.
type Grid struct {
	rows  int
	cols  int
	tiles []Tile
}

// NewGrid builds a grid from explicit letters and states.
// len(letters) and len(states) must both equal rows*cols.
func NewGrid(rows, cols int, letters []rune, states []LetterState) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrCorruptState, rows, cols)
	}
	n := rows * cols
	if len(letters) != n {
		return nil, fmt.Errorf("%w: %d letters for %d tiles", ErrCorruptState, len(letters), n)
	}
	if len(states) != n {
		return nil, fmt.Errorf("%w: %d states for %d tiles", ErrCorruptState, len(states), n)
	}

	g := &Grid{rows: rows, cols: cols, tiles: make([]Tile, n)}
	for i := range n {
		if letters[i] < 'A' || letters[i] > 'Z' {
			return nil, fmt.Errorf("%w: tile %d has letter %q", ErrCorruptState, i, letters[i])
		}
		if !states[i].Valid() {
			return nil, fmt.Errorf("%w: tile %d has state %d", ErrCorruptState, i, uint8(states[i]))
		}
		g.tiles[i] = Tile{Letter: letters[i], State: states[i]}
	}
	return g, nil
}

// Generate creates a fresh board. Vowels are placed at distinct random
// positions; every other tile gets a random consonant, with 'Q' excluded
// unless at least one placed vowel is 'U'. All tiles start unplayed.
func Generate(rng *rand.Rand, l Layout) *Grid {
	if err := l.Validate(); err != nil {
		panic("wordwar: " + err.Error())
	}

	n := l.Size()
	g := &Grid{rows: l.Rows, cols: l.Cols, tiles: make([]Tile, n)}
	isVowel := make([]bool, n)

	// Pick vowel positions without replacement
	hasU := false
	for placed := 0; placed < l.Vowels; {
		idx := rng.Intn(n)
		if isVowel[idx] {
			continue
		}
		isVowel[idx] = true
		c := rune(l.VowelSet[rng.Intn(len(l.VowelSet))])
		g.tiles[idx] = Tile{Letter: c}
		hasU = hasU || c == 'U'
		placed++
	}

	consonants := l.Consonants
	if !hasU {
		consonants = strings.ReplaceAll(consonants, "Q", "")
	}

	for i := range n {
		if isVowel[i] {
			continue
		}
		g.tiles[i] = Tile{Letter: rune(consonants[rng.Intn(len(consonants))])}
	}

	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return len(g.tiles)
}

func (g *Grid) check(index int) {
	if index < 0 || index >= len(g.tiles) {
		panic(fmt.Sprintf("wordwar: tile index %d out of range [0,%d)", index, len(g.tiles)))
	}
}

// Letter returns the letter at index. Panics if index is out of range.
func (g *Grid) Letter(index int) rune {
	g.check(index)
	return g.tiles[index].Letter
}

// State returns the state at index. Panics if index is out of range.
func (g *Grid) State(index int) LetterState {
	g.check(index)
	return g.tiles[index].State
}

// SetState updates the state at index. Panics if index is out of range.
func (g *Grid) SetState(index int, s LetterState) {
	g.check(index)
	g.tiles[index].State = s
}

// Tile returns the tile at index.
func (g *Grid) Tile(index int) Tile {
	g.check(index)
	return g.tiles[index]
}

// Index converts a row and column to a tile index.
func (g *Grid) Index(row, col int) int {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("wordwar: cell (%d,%d) out of %dx%d grid", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}

// RowCol converts a tile index to its row and column.
func (g *Grid) RowCol(index int) (row, col int) {
	g.check(index)
	return index / g.cols, index % g.cols
}

// Neighbors returns the indices of the left, right, above and below tiles.
// Missing neighbours at the edges are reported as -1; there is no wraparound.
func (g *Grid) Neighbors(index int) [4]int {
	row, col := g.RowCol(index)
	n := [4]int{-1, -1, -1, -1}
	if col > 0 {
		n[0] = index - 1
	}
	if col < g.cols-1 {
		n[1] = index + 1
	}
	if row > 0 {
		n[2] = index - g.cols
	}
	if row < g.rows-1 {
		n[3] = index + g.cols
	}
	return n
}

// Full reports whether no tile is unplayed.
func (g *Grid) Full() bool {
	for _, t := range g.tiles {
		if t.State == Unplayed {
			return false
		}
	}
	return true
}

// Count returns the number of tiles in the given state.
func (g *Grid) Count(s LetterState) int {
	count := 0
	for _, t := range g.tiles {
		if t.State == s {
			count++
		}
	}
	return count
}

// Letters returns the letters in row-major order.
func (g *Grid) Letters() []rune {
	letters := make([]rune, len(g.tiles))
	for i, t := range g.tiles {
		letters[i] = t.Letter
	}
	return letters
}

// States returns the states in row-major order.
func (g *Grid) States() []LetterState {
	states := make([]LetterState, len(g.tiles))
	for i, t := range g.tiles {
		states[i] = t.State
	}
	return states
}

// Decode concatenates the letters at the given indices in order.
func (g *Grid) Decode(indices []int) string {
	var sb strings.Builder
	sb.Grow(len(indices))
	for _, i := range indices {
		sb.WriteRune(g.Letter(i))
	}
	return sb.String()
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{rows: g.rows, cols: g.cols, tiles: tiles}
}

// String renders the letters as rows separated by newlines.
func (g *Grid) String() string {
	var sb strings.Builder
	for i, t := range g.tiles {
		if i > 0 && i%g.cols == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(t.Letter)
	}
	return sb.String()
}
