package core

import (
	"math/rand"
	"time"
)

// Dictionary answers word membership queries. Lookups must be
// case-insensitive. The engine never mutates it.
type Dictionary interface {
	Contains(word string) bool
}

// Game is the state of one match. It is not safe for concurrent use;
// callers serialize access per game.
type Game struct {
	grid      *Grid
	phase     Phase
	points    [2]int
	result    GameResult
	hasPassed bool
	played    *WordTrie
	pending   []int
	dict      Dictionary
}

// Turn describes the outcome of one submission.
type Turn struct {
	Player   Player
	Word     string
	Indices  []int
	Result   TurnResult
	Captures []Transition
	GameOver bool
}

type options struct {
	rng    *rand.Rand
	layout Layout
}

// Option configures NewGame.
type Option func(*options)

// WithRand sets the random source used for board generation.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed seeds board generation. A zero seed keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed != 0 {
			o.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithLayout overrides the board dimensions and alphabets.
func WithLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// NewGame starts a fresh game on a newly generated board with player 1 to move.
// Panics if dict is nil or the layout is invalid.
func NewGame(dict Dictionary, opts ...Option) *Game {
	if dict == nil {
		panic("wordwar: nil dictionary")
	}

	o := options{layout: DefaultLayout()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Game{
		grid:   Generate(o.rng, o.layout),
		phase:  Player1Turn,
		played: NewWordTrie(),
		dict:   dict,
	}
}

func (g *Game) mustBeLive(op string) Player {
	mover, ok := g.phase.Mover()
	if !ok {
		panic("wordwar: " + op + " called after game over")
	}
	return mover
}

// Phase returns the current turn phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Mover returns the player to move. ok is false once the game is over.
func (g *Game) Mover() (Player, bool) {
	return g.phase.Mover()
}

// Result returns the final result. ok is false while the game is running.
func (g *Game) Result() (result GameResult, ok bool) {
	if g.phase != GameOver {
		return Draw, false
	}
	return g.result, true
}

// HasPassed reports whether the previous turn was a pass.
func (g *Game) HasPassed() bool {
	return g.hasPassed
}

// Points returns the committed score of p, ignoring any pending selection.
func (g *Game) Points(p Player) int {
	return g.points[p]
}

// Grid returns a copy of the board. Changes to the copy do not affect the game.
func (g *Game) Grid() *Grid {
	return g.grid.Clone()
}

// Size returns the number of tiles on the board.
func (g *Game) Size() int {
	return g.grid.Len()
}

// PlayedWords returns the words played so far in lexical order.
func (g *Game) PlayedWords() []string {
	return g.played.Words()
}

// SetPendingWord stores the current selection of tile indices. The selection
// is not validated beyond bounds checking. Passing nil clears it.
func (g *Game) SetPendingWord(indices []int) {
	g.mustBeLive("SetPendingWord")
	for _, i := range indices {
		g.grid.check(i)
	}
	if indices == nil {
		g.pending = nil
		return
	}
	g.pending = append([]int(nil), indices...)
}

// Pending returns a copy of the current selection.
func (g *Game) Pending() []int {
	return append([]int(nil), g.pending...)
}

// Word returns the pending selection decoded as a word.
func (g *Game) Word() string {
	return g.grid.Decode(g.pending)
}

// tentative returns both scores as they would be if the pending selection
// were played by the mover: unplayed tiles are claimed and plainly owned
// opponent tiles are flipped. Surrounded tiles are not affected. Each tile
// counts once even if selected twice.
func (g *Game) tentative() [2]int {
	pts := g.points
	mover, ok := g.phase.Mover()
	if !ok || len(g.pending) == 0 {
		return pts
	}

	opp := mover.Opponent()
	seen := make(map[int]bool, len(g.pending))
	for _, i := range g.pending {
		if seen[i] {
			continue
		}
		seen[i] = true
		switch g.grid.tiles[i].State {
		case Unplayed:
			pts[mover]++
		case opp.Owned():
			pts[mover]++
			pts[opp]--
		}
	}
	return pts
}

// CurrentScore returns p's committed score plus the projected effect of the
// pending selection. It does not modify the game.
func (g *Game) CurrentScore(p Player) int {
	return g.tentative()[p]
}

// validate applies the rules in fixed order; the first failing rule wins.
func (g *Game) validate(word string) TurnResult {
	if len([]rune(word)) < 2 {
		return WordLessThanTwoLetters
	}
	if g.played.Contains(word) {
		return WordAlreadyPlayed
	}
	if g.played.ContainsPrefix(word) {
		return WordIsPrefixOfPreviousTurn
	}
	if !g.dict.Contains(word) {
		return WordNotInDictionary
	}
	return Success
}

// SubmitTurn plays the pending selection for the player to move.
func (g *Game) SubmitTurn() TurnResult {
	return g.Submit().Result
}

// Submit plays the pending selection and reports what happened. On any rule
// violation the game and the selection are left untouched.
func (g *Game) Submit() Turn {
	mover := g.mustBeLive("Submit")

	word := g.Word()
	turn := Turn{
		Player:  mover,
		Word:    word,
		Indices: g.Pending(),
		Result:  g.validate(word),
	}
	if turn.Result != Success {
		return turn
	}

	g.hasPassed = false
	g.played.Add(word)
	g.points = g.tentative()

	owned := mover.Owned()
	for _, i := range g.pending {
		if !g.grid.tiles[i].State.Surrounded() {
			g.grid.tiles[i].State = owned
		}
	}
	g.pending = nil

	capture := Capture(g.grid)
	g.points[Player1] += capture.Player1Delta
	g.points[Player2] += capture.Player2Delta
	turn.Captures = capture.Transitions

	if g.grid.Full() {
		g.end()
		turn.GameOver = true
		return turn
	}
	g.phase = turnOf(mover.Opponent())
	return turn
}

// PassTurn skips the mover's turn. A pass directly after another pass ends
// the game with the current scores.
func (g *Game) PassTurn() {
	mover := g.mustBeLive("PassTurn")
	if g.hasPassed {
		g.end()
		return
	}
	g.phase = turnOf(mover.Opponent())
	g.hasPassed = true
}

func (g *Game) end() {
	g.phase = GameOver
	g.pending = nil
	g.result = ResultFor(g.points[Player1], g.points[Player2])
}
