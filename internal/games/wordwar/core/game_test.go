package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// mapDict is a mutable in-memory dictionary for tests.
type mapDict map[string]bool

func (d mapDict) Contains(word string) bool {
	return d[strings.ToUpper(word)]
}

func newDict(words ...string) mapDict {
	d := make(mapDict)
	for _, w := range words {
		d[strings.ToUpper(w)] = true
	}
	return d
}

// acceptAll treats every word as valid.
type acceptAll struct{}

func (acceptAll) Contains(string) bool { return true }

// testBoard is a fixed 5x5 board:
//
//	C A T S X
//	D O G E B
//	H I J K L
//	M N P R S
//	T V W Y Z
const testBoard = "CATSXDOGEBHIJKLMNPRSTVWYZ"

// restoreGame builds a running game on a fixed board with all tiles unplayed.
func restoreGame(t *testing.T, rows, cols int, letters string, dict Dictionary) *Game {
	t.Helper()
	g, err := Restore(Snapshot{
		Rows:    rows,
		Cols:    cols,
		Letters: letters,
		States:  make([]LetterState, rows*cols),
		Phase:   Player1Turn,
	}, dict)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return g
}

func play(t *testing.T, g *Game, indices ...int) TurnResult {
	t.Helper()
	g.SetPendingWord(indices)
	return g.SubmitTurn()
}

func TestNewGameInitialState(t *testing.T) {
	g := NewGame(acceptAll{}, WithSeed(99))

	if g.Phase() != Player1Turn {
		t.Errorf("Phase() = %v, want %v", g.Phase(), Player1Turn)
	}
	if g.Points(Player1) != 0 || g.Points(Player2) != 0 {
		t.Errorf("points = (%d, %d), want (0, 0)", g.Points(Player1), g.Points(Player2))
	}
	if _, ok := g.Result(); ok {
		t.Error("new game should have no result")
	}
	if g.Grid().Count(Unplayed) != DefaultRows*DefaultCols {
		t.Error("new board should be entirely unplayed")
	}
	if g.Size() != DefaultRows*DefaultCols {
		t.Errorf("Size() = %d, want %d", g.Size(), DefaultRows*DefaultCols)
	}
}

func TestNewGameNilDictionaryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewGame(nil) did not panic")
		}
	}()
	NewGame(nil)
}

func TestSubmitRuleOrder(t *testing.T) {
	tests := []struct {
		name    string
		dict    mapDict
		setup   [][]int // Successful turns played first
		indices []int
		want    TurnResult
	}{
		{
			name:    "nil selection",
			dict:    newDict("CAT"),
			indices: nil,
			want:    WordLessThanTwoLetters,
		},
		{
			name:    "single letter not in dictionary",
			dict:    newDict(),
			indices: []int{4},
			want:    WordLessThanTwoLetters,
		},
		{
			name:    "prefix of previous word",
			dict:    newDict("CATS", "CAT"),
			setup:   [][]int{{0, 1, 2, 3}},
			indices: []int{0, 1, 2},
			want:    WordIsPrefixOfPreviousTurn,
		},
		{
			name:    "prefix rule beats dictionary",
			dict:    newDict("CATS"),
			setup:   [][]int{{0, 1, 2, 3}},
			indices: []int{0, 1},
			want:    WordIsPrefixOfPreviousTurn,
		},
		{
			name:    "extending previous word is allowed",
			dict:    newDict("CAT", "CATS"),
			setup:   [][]int{{0, 1, 2}},
			indices: []int{0, 1, 2, 3},
			want:    Success,
		},
		{
			name:    "not in dictionary",
			dict:    newDict("CAT"),
			indices: []int{4, 5},
			want:    WordNotInDictionary,
		},
		{
			name:    "valid word",
			dict:    newDict("DOG"),
			indices: []int{5, 6, 7},
			want:    Success,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := restoreGame(t, 5, 5, testBoard, tt.dict)
			for _, turn := range tt.setup {
				if res := play(t, g, turn...); res != Success {
					t.Fatalf("setup turn %v = %v", turn, res)
				}
			}
			if got := play(t, g, tt.indices...); got != tt.want {
				t.Errorf("SubmitTurn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmitAlreadyPlayedBeatsDictionary(t *testing.T) {
	dict := newDict("AT")
	g := restoreGame(t, 5, 5, testBoard, dict)

	if res := play(t, g, 1, 2); res != Success {
		t.Fatalf("first AT = %v", res)
	}

	// Remove the word so the dictionary would also reject it
	delete(dict, "AT")
	if res := play(t, g, 1, 2); res != WordAlreadyPlayed {
		t.Errorf("second AT = %v, want %v", res, WordAlreadyPlayed)
	}
}

func TestFailedSubmitLeavesStateUnchanged(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict())
	g.SetPendingWord([]int{0, 1, 2})
	before := g.Snapshot()

	if res := g.SubmitTurn(); res != WordNotInDictionary {
		t.Fatalf("SubmitTurn() = %v, want %v", res, WordNotInDictionary)
	}

	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("snapshot changed after failed turn:\nbefore %+v\nafter  %+v", before, after)
	}
	if got := g.Pending(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Pending() = %v, want selection retained", got)
	}
	if g.Word() != "CAT" {
		t.Errorf("Word() = %q, want %q", g.Word(), "CAT")
	}
}

func TestSubmitClaimsAndFlipsTiles(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict("AT", "CAT"))

	if res := play(t, g, 1, 2); res != Success {
		t.Fatalf("AT = %v", res)
	}
	if g.Phase() != Player2Turn {
		t.Errorf("Phase() = %v, want %v", g.Phase(), Player2Turn)
	}
	if g.Points(Player1) != 2 || g.Points(Player2) != 0 {
		t.Errorf("after AT points = (%d, %d), want (2, 0)", g.Points(Player1), g.Points(Player2))
	}
	if g.Pending() != nil && len(g.Pending()) != 0 {
		t.Errorf("selection not cleared: %v", g.Pending())
	}

	// Player 2 takes C and steals A and T
	if res := play(t, g, 0, 1, 2); res != Success {
		t.Fatalf("CAT = %v", res)
	}
	if g.Points(Player1) != 0 || g.Points(Player2) != 3 {
		t.Errorf("after CAT points = (%d, %d), want (0, 3)", g.Points(Player1), g.Points(Player2))
	}
	grid := g.Grid()
	for _, i := range []int{0, 1, 2} {
		if !grid.State(i).ControlledBy(Player2) {
			t.Errorf("tile %d = %v, want player 2 control", i, grid.State(i))
		}
	}
	if g.Phase() != Player1Turn {
		t.Errorf("Phase() = %v, want %v", g.Phase(), Player1Turn)
	}
}

func TestSurroundedTileCannotBeOverwritten(t *testing.T) {
	states := make([]LetterState, 25)
	states[0] = Player1Surrounded
	states[1] = Player1Owned
	states[5] = Player1Owned
	g, err := Restore(Snapshot{
		Rows: 5, Cols: 5, Letters: testBoard, States: states,
		Phase: Player2Turn, Player1Points: 3,
	}, newDict("CAT"))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	g.SetPendingWord([]int{0, 1, 2})
	// C is surrounded and ignored, A flips, T is claimed
	if got := g.CurrentScore(Player2); got != 2 {
		t.Errorf("CurrentScore(P2) = %d, want 2", got)
	}
	if got := g.CurrentScore(Player1); got != 2 {
		t.Errorf("CurrentScore(P1) = %d, want 2", got)
	}

	if res := g.SubmitTurn(); res != Success {
		t.Fatalf("CAT = %v", res)
	}
	grid := g.Grid()
	if grid.State(0) == Player2Owned {
		t.Error("surrounded tile was overwritten by a play")
	}
}

func TestCurrentScoreIsIdempotent(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict())
	g.SetPendingWord([]int{0, 1, 1})

	first := g.CurrentScore(Player1)
	for range 5 {
		if got := g.CurrentScore(Player1); got != first {
			t.Fatalf("CurrentScore changed from %d to %d", first, got)
		}
	}
	if first != 2 {
		t.Errorf("CurrentScore(P1) = %d, want 2 (duplicate tile counted once)", first)
	}
	if g.Points(Player1) != 0 {
		t.Errorf("Points(P1) = %d, preview must not commit", g.Points(Player1))
	}
	if g.CurrentScore(Player2) != 0 {
		t.Errorf("CurrentScore(P2) = %d, want 0", g.CurrentScore(Player2))
	}
}

func TestCaptureDuringTurn(t *testing.T) {
	g := restoreGame(t, 1, 3, "TOE", newDict("TO", "OE"))

	if res := play(t, g, 0, 1); res != Success {
		t.Fatalf("TO = %v", res)
	}
	grid := g.Grid()
	if grid.State(0) != Player1Surrounded {
		t.Errorf("tile 0 = %v, want %v", grid.State(0), Player1Surrounded)
	}

	if res := play(t, g, 1, 2); res != Success {
		t.Fatalf("OE = %v", res)
	}

	want := []LetterState{Player1Owned, Player2Owned, Player2Surrounded}
	if got := g.Grid().States(); !reflect.DeepEqual(got, want) {
		t.Errorf("states = %v, want %v", got, want)
	}
	if g.Phase() != GameOver {
		t.Fatalf("Phase() = %v, want %v", g.Phase(), GameOver)
	}
	if g.Points(Player1) != 1 || g.Points(Player2) != 2 {
		t.Errorf("points = (%d, %d), want (1, 2)", g.Points(Player1), g.Points(Player2))
	}
	if res, _ := g.Result(); res != Player2Win {
		t.Errorf("Result() = %v, want %v", res, Player2Win)
	}
}

func TestSubmitReportsCaptures(t *testing.T) {
	g := restoreGame(t, 1, 3, "TOE", newDict("TO"))
	g.SetPendingWord([]int{0, 1})

	turn := g.Submit()

	if turn.Result != Success || turn.Player != Player1 || turn.Word != "TO" {
		t.Fatalf("turn = %+v", turn)
	}
	want := []Transition{{Index: 0, From: Player1Owned, To: Player1Surrounded}}
	if !reflect.DeepEqual(turn.Captures, want) {
		t.Errorf("Captures = %+v, want %+v", turn.Captures, want)
	}
	if turn.GameOver {
		t.Error("board is not full, game should continue")
	}
}

func TestFullBoardEndsGame(t *testing.T) {
	g := restoreGame(t, 1, 2, "AT", newDict("AT"))

	turn := func() Turn { g.SetPendingWord([]int{0, 1}); return g.Submit() }()

	if !turn.GameOver || g.Phase() != GameOver {
		t.Fatalf("Phase() = %v, want %v", g.Phase(), GameOver)
	}
	res, ok := g.Result()
	if !ok || res != Player1Win {
		t.Errorf("Result() = %v, %v; want %v", res, ok, Player1Win)
	}
}

func TestConsecutivePassesEndGame(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict())

	g.PassTurn()
	if g.Phase() != Player2Turn || !g.HasPassed() {
		t.Fatalf("after one pass: phase %v, passed %v", g.Phase(), g.HasPassed())
	}

	g.PassTurn()
	if g.Phase() != GameOver {
		t.Fatalf("Phase() = %v after two passes, want %v", g.Phase(), GameOver)
	}
	if res, ok := g.Result(); !ok || res != Draw {
		t.Errorf("Result() = %v, %v; want %v", res, ok, Draw)
	}
}

func TestPassThenPlayResetsPassFlag(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict("DOG"))

	g.PassTurn()
	if res := play(t, g, 5, 6, 7); res != Success {
		t.Fatalf("DOG = %v", res)
	}
	if g.HasPassed() {
		t.Error("successful turn should clear the pass flag")
	}

	g.PassTurn()
	if g.Phase() == GameOver {
		t.Error("pass after a successful play must not end the game")
	}
	if g.Phase() != Player2Turn {
		t.Errorf("Phase() = %v, want %v", g.Phase(), Player2Turn)
	}
}

func TestPassEndsGameWithCurrentScores(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict("DOG"))

	if res := play(t, g, 5, 6, 7); res != Success {
		t.Fatalf("DOG = %v", res)
	}
	g.PassTurn()
	g.PassTurn()

	if res, ok := g.Result(); !ok || res != Player1Win {
		t.Errorf("Result() = %v, %v; want %v", res, ok, Player1Win)
	}
}

func TestOperationsAfterGameOverPanic(t *testing.T) {
	ops := map[string]func(g *Game){
		"SubmitTurn":     func(g *Game) { g.SubmitTurn() },
		"PassTurn":       func(g *Game) { g.PassTurn() },
		"SetPendingWord": func(g *Game) { g.SetPendingWord([]int{0, 1}) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			g := restoreGame(t, 5, 5, testBoard, newDict())
			g.PassTurn()
			g.PassTurn()

			defer func() {
				if recover() == nil {
					t.Errorf("%s after game over did not panic", name)
				}
			}()
			op(g)
		})
	}
}

func TestSetPendingWordOutOfRangePanics(t *testing.T) {
	g := restoreGame(t, 5, 5, testBoard, newDict())

	defer func() {
		if recover() == nil {
			t.Error("SetPendingWord with bad index did not panic")
		}
	}()
	g.SetPendingWord([]int{0, 25})
}

func TestTwoLetterWordOnGeneratedBoard(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		g := NewGame(acceptAll{}, WithSeed(seed))
		grid := g.Grid()

		unplayed := 0
		for _, i := range []int{0, 1} {
			if grid.State(i) == Unplayed {
				unplayed++
			}
		}

		if res := play(t, g, 0, 1); res != Success {
			t.Fatalf("seed %d: SubmitTurn() = %v", seed, res)
		}
		if g.Phase() != Player2Turn {
			t.Errorf("seed %d: Phase() = %v, want %v", seed, g.Phase(), Player2Turn)
		}
		if g.Points(Player1) != unplayed {
			t.Errorf("seed %d: Points(P1) = %d, want %d", seed, g.Points(Player1), unplayed)
		}
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	dict := newDict("AT", "DOG")
	g := restoreGame(t, 5, 5, testBoard, dict)
	play(t, g, 1, 2)
	play(t, g, 5, 6, 7)
	g.PassTurn()

	snap := g.Snapshot()
	restored, err := Restore(snap, dict)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if got := restored.Snapshot(); !reflect.DeepEqual(got, snap) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
	if !restored.HasPassed() {
		t.Error("pass flag lost in round trip")
	}

	// Played words survive, so repeat plays are still rejected
	if res := play(t, restored, 1, 2); res != WordAlreadyPlayed {
		t.Errorf("replaying AT after restore = %v, want %v", res, WordAlreadyPlayed)
	}

	// A second pass ends the restored game
	restored.PassTurn()
	if restored.Phase() != GameOver {
		t.Errorf("Phase() = %v, want %v", restored.Phase(), GameOver)
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{Rows: 1, Cols: 2, Letters: "AT", States: []LetterState{Unplayed, Unplayed}}
	}

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"letters length", func(s *Snapshot) { s.Letters = "A" }},
		{"states length", func(s *Snapshot) { s.States = s.States[:1] }},
		{"bad letter", func(s *Snapshot) { s.Letters = "A1" }},
		{"bad state", func(s *Snapshot) { s.States[1] = LetterState(42) }},
		{"bad phase", func(s *Snapshot) { s.Phase = Phase(9) }},
		{"full board still running", func(s *Snapshot) {
			s.States = []LetterState{Player1Owned, Player2Owned}
		}},
		{"short played word", func(s *Snapshot) { s.PlayedWords = []string{"A"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			_, err := Restore(s, newDict())
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("Restore error = %v, want ErrCorruptState", err)
			}
		})
	}
}

func TestRestoreFinishedGameDerivesResult(t *testing.T) {
	g, err := Restore(Snapshot{
		Rows: 1, Cols: 2, Letters: "AT",
		States:        []LetterState{Player2Owned, Player2Owned},
		Phase:         GameOver,
		Player2Points: 2,
	}, newDict())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if res, ok := g.Result(); !ok || res != Player2Win {
		t.Errorf("Result() = %v, %v; want %v", res, ok, Player2Win)
	}
}
