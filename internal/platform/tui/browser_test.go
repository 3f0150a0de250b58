package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
	"github.com/vovakirdan/wordwar/internal/storage"
)

type fakeStore struct {
	games []storage.GameRecord
}

func (f *fakeStore) ListGames(limit int) ([]storage.GameRecord, error) {
	return append([]storage.GameRecord(nil), f.games...), nil
}

func (f *fakeStore) DeleteGame(id string) error {
	for i, g := range f.games {
		if g.ID == id {
			f.games = append(f.games[:i], f.games[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func newFakeStore() *fakeStore {
	now := time.Now()
	return &fakeStore{games: []storage.GameRecord{
		{ID: "aaaaaaaa-1111", Phase: core.Player1Turn, UpdatedAt: now},
		{ID: "bbbbbbbb-2222", Phase: core.GameOver, Player1Points: 4, UpdatedAt: now},
	}}
}

func TestBrowserOpensSelectedGame(t *testing.T) {
	m := NewBrowserModel(newFakeStore(), 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	if got := next.(BrowserModel).Chosen(); got != "bbbbbbbb-2222" {
		t.Errorf("Chosen() = %q, want bbbbbbbb-2222", got)
	}
}

func TestBrowserDeletesGame(t *testing.T) {
	store := newFakeStore()
	m := NewBrowserModel(store, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

	if len(store.games) != 1 || store.games[0].ID != "bbbbbbbb-2222" {
		t.Errorf("games after delete = %+v", store.games)
	}
	if got := len(next.(BrowserModel).games); got != 1 {
		t.Errorf("browser shows %d games, want 1", got)
	}
}

func TestBrowserQuitChoosesNothing(t *testing.T) {
	m := NewBrowserModel(newFakeStore(), 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if got := next.(BrowserModel).Chosen(); got != "" {
		t.Errorf("Chosen() = %q after quit", got)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}
