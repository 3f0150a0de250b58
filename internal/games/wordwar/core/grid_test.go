package core

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateVowelPlacement(t *testing.T) {
	layout := DefaultLayout()

	for seed := int64(1); seed <= 500; seed++ {
		g := Generate(rand.New(rand.NewSource(seed)), layout)

		if g.Len() != layout.Size() {
			t.Fatalf("seed %d: Len() = %d, want %d", seed, g.Len(), layout.Size())
		}

		vowels := 0
		hasU := false
		hasQ := false
		for i := range g.Len() {
			tile := g.Tile(i)
			if tile.State != Unplayed {
				t.Errorf("seed %d: tile %d starts %v, want unplayed", seed, i, tile.State)
			}
			switch {
			case strings.ContainsRune(layout.VowelSet, tile.Letter):
				vowels++
				hasU = hasU || tile.Letter == 'U'
			case strings.ContainsRune(layout.Consonants, tile.Letter):
				hasQ = hasQ || tile.Letter == 'Q'
			default:
				t.Errorf("seed %d: tile %d has letter %q outside both alphabets", seed, i, tile.Letter)
			}
		}

		if vowels != layout.Vowels {
			t.Errorf("seed %d: %d vowels on board, want %d", seed, vowels, layout.Vowels)
		}
		if hasQ && !hasU {
			t.Errorf("seed %d: board has Q without a U:\n%s", seed, g)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(42)), DefaultLayout())
	b := Generate(rand.New(rand.NewSource(42)), DefaultLayout())

	if a.String() != b.String() {
		t.Errorf("same seed produced different boards:\n%s\n---\n%s", a, b)
	}
}

func TestGenerateCustomLayout(t *testing.T) {
	layout := Layout{Rows: 3, Cols: 4, Vowels: 12, VowelSet: "U", Consonants: "Q"}
	g := Generate(rand.New(rand.NewSource(7)), layout)

	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("dimensions = %dx%d, want 3x4", g.Rows(), g.Cols())
	}
	if got := g.String(); got != "UUUU\nUUUU\nUUUU" {
		t.Errorf("board = %q, want all U", got)
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		wantErr bool
	}{
		{"default", DefaultLayout(), false},
		{"zero rows", Layout{Rows: 0, Cols: 5, Vowels: 0, Consonants: "B"}, true},
		{"too many vowels", Layout{Rows: 2, Cols: 2, Vowels: 5, VowelSet: "A", Consonants: "B"}, true},
		{"no vowel alphabet", Layout{Rows: 2, Cols: 2, Vowels: 1, Consonants: "B"}, true},
		{"only Q consonant", Layout{Rows: 2, Cols: 2, Vowels: 1, VowelSet: "A", Consonants: "Q"}, true},
		{"all vowels needs no consonants", Layout{Rows: 1, Cols: 2, Vowels: 2, VowelSet: "A"}, false},
		{"lowercase vowels", Layout{Rows: 2, Cols: 2, Vowels: 1, VowelSet: "aeiou", Consonants: "B"}, true},
		{"lowercase consonants", Layout{Rows: 2, Cols: 2, Vowels: 1, VowelSet: "A", Consonants: "bq"}, true},
		{"non-letter consonant", Layout{Rows: 2, Cols: 2, Vowels: 1, VowelSet: "A", Consonants: "B-"}, true},
		{"non-ascii vowel", Layout{Rows: 2, Cols: 2, Vowels: 1, VowelSet: "AÉ", Consonants: "B"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(1)), DefaultLayout())

	tests := []struct {
		index int
		want  [4]int
	}{
		{0, [4]int{-1, 1, -1, 5}},
		{4, [4]int{3, -1, -1, 9}},
		{5, [4]int{-1, 6, 0, 10}},
		{12, [4]int{11, 13, 7, 17}},
		{20, [4]int{-1, 21, 15, -1}},
		{24, [4]int{23, -1, 19, -1}},
	}

	for _, tt := range tests {
		if got := g.Neighbors(tt.index); got != tt.want {
			t.Errorf("Neighbors(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestGridIndexRoundTrip(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(1)), DefaultLayout())

	for i := range g.Len() {
		row, col := g.RowCol(i)
		if back := g.Index(row, col); back != i {
			t.Errorf("Index(RowCol(%d)) = %d", i, back)
		}
	}
}

func TestGridAccessorsPanicOutOfRange(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(1)), DefaultLayout())

	for _, idx := range []int{-1, 25, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("State(%d) did not panic", idx)
				}
			}()
			g.State(idx)
		}()
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := Generate(rand.New(rand.NewSource(3)), DefaultLayout())
	c := g.Clone()
	c.SetState(0, Player1Owned)

	if g.State(0) != Unplayed {
		t.Error("modifying clone changed the original grid")
	}
}

func TestNewGridRejectsCorruptData(t *testing.T) {
	states := func(n int) []LetterState { return make([]LetterState, n) }

	tests := []struct {
		name    string
		rows    int
		cols    int
		letters string
		states  []LetterState
	}{
		{"short letters", 2, 2, "ABC", states(4)},
		{"short states", 2, 2, "ABCD", states(3)},
		{"lowercase letter", 2, 2, "ABcD", states(4)},
		{"unknown state", 2, 2, "ABCD", []LetterState{0, 0, 9, 0}},
		{"zero size", 0, 2, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.rows, tt.cols, []rune(tt.letters), tt.states)
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("NewGrid error = %v, want ErrCorruptState", err)
			}
		})
	}
}
