package tui

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
	"github.com/vovakirdan/wordwar/internal/session"
)

// GameModel is the Bubble Tea model for a hot-seat game. It never touches the
// game directly; every read and write goes through the session table.
type GameModel struct {
	table    *session.Table
	id       string
	live     *atomic.Pointer[string] // Current id, shared by copies of the model
	state    session.State
	cursor   int
	captured map[int]bool // Tiles that changed in the last capture pass
	message  string
	err      error
	keys     GameKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewGameModel creates a model for a live game in table.
func NewGameModel(table *session.Table, id string) (GameModel, error) {
	m := GameModel{
		table: table,
		id:    id,
		live:  new(atomic.Pointer[string]),
		keys:  DefaultGameKeyMap(),
		help:  help.New(),
	}
	m.live.Store(&id)
	if err := m.refresh(); err != nil {
		return m, err
	}
	return m, nil
}

// refresh reloads the state copy from the table.
func (m *GameModel) refresh() error {
	st, err := m.table.State(m.id)
	if err != nil {
		return err
	}
	m.state = st
	m.keys.setGameOver(st.Over)
	return nil
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.state.Grid
	row, col := g.RowCol(m.cursor)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.cursor = g.Index((row-1+g.Rows())%g.Rows(), col)
	case key.Matches(msg, m.keys.Down):
		m.cursor = g.Index((row+1)%g.Rows(), col)
	case key.Matches(msg, m.keys.Left):
		m.cursor = g.Index(row, (col-1+g.Cols())%g.Cols())
	case key.Matches(msg, m.keys.Right):
		m.cursor = g.Index(row, (col+1)%g.Cols())

	case key.Matches(msg, m.keys.Toggle):
		pending := m.state.Pending
		if i := slices.Index(pending, m.cursor); i >= 0 {
			pending = slices.Delete(pending, i, i+1)
		} else {
			pending = append(pending, m.cursor)
		}
		m.selectTiles(pending)

	case key.Matches(msg, m.keys.Undo):
		if n := len(m.state.Pending); n > 0 {
			m.selectTiles(m.state.Pending[:n-1])
		}

	case key.Matches(msg, m.keys.Clear):
		m.selectTiles(nil)

	case key.Matches(msg, m.keys.Submit):
		m.submit()

	case key.Matches(msg, m.keys.Pass):
		mover, _ := m.state.Mover()
		m.captured = nil
		if m.setErr(m.table.Pass(m.id)) {
			m.message = fmt.Sprintf("%s passed.", mover)
		}

	case key.Matches(msg, m.keys.NewGame):
		m.newGame()
	}

	return m, nil
}

func (m *GameModel) selectTiles(indices []int) {
	if m.setErr(m.table.Select(m.id, indices)) {
		m.message = ""
	}
}

func (m *GameModel) submit() {
	turn, err := m.table.Submit(m.id)
	if !m.setErr(err) {
		return
	}
	if turn.Result != core.Success {
		m.message = turn.Result.Message()
		return
	}

	m.captured = make(map[int]bool, len(turn.Captures))
	for _, c := range turn.Captures {
		m.captured[c.Index] = true
	}
	m.message = fmt.Sprintf("%s played %s.", turn.Player, turn.Word)
	if n := len(turn.Captures); n > 0 {
		m.message += fmt.Sprintf(" %d tile(s) changed hands or were surrounded.", n)
	}
}

func (m *GameModel) newGame() {
	id, err := m.table.Create(0)
	if err != nil {
		m.err = err
		return
	}
	m.table.Close(m.id)
	m.id = id
	m.live.Store(&id)
	m.cursor = 0
	m.captured = nil
	m.message = "New game started."
	m.setErr(nil)
}

// setErr records err and refreshes state. It reports whether err was nil.
func (m *GameModel) setErr(err error) bool {
	m.err = err
	if rerr := m.refresh(); rerr != nil && m.err == nil {
		m.err = rerr
	}
	return err == nil
}

// View renders the game screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("WORD WAR"))
	b.WriteString("\n\n")
	b.WriteString(renderScores(m.state))
	b.WriteString("\n")
	b.WriteString(RenderBoard(m.state, m.cursor, m.captured))
	b.WriteString("\n")
	b.WriteString(renderStatus(m.state))
	b.WriteString("\n")

	if !m.state.Over {
		word := m.state.Word
		if word == "" {
			word = dimStyle.Render("(pick letters with space)")
		}
		b.WriteString("Word: " + word + "\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	case m.message != "":
		b.WriteString(m.message + "\n")
	}

	b.WriteString("\n")
	b.WriteString(renderPlayed(m.state.PlayedWords, m.width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// ID returns the id of the game being shown.
func (m GameModel) ID() string {
	return m.id
}

// LiveID returns the id of the game most recently shown by this model or any
// copy of it. Bubble Tea keeps its own copy, so callers outside the program
// use this to find the current game.
func (m GameModel) LiveID() string {
	return *m.live.Load()
}

// State returns the last state copy read from the table.
func (m GameModel) State() session.State {
	return m.state
}

// RunGame runs the game screen for a live game until the user quits.
func RunGame(table *session.Table, id string) error {
	model, err := NewGameModel(table, id)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
