package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
	"github.com/vovakirdan/wordwar/internal/session"
)

// tileStyles maps each letter state to its board style.
var tileStyles = map[core.LetterState]lipgloss.Style{
	core.Unplayed:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.Player1Owned:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.Player1Surrounded: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Bold(true),
	core.Player2Owned:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.Player2Surrounded: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Bold(true),
}

var (
	playerStyles = [2]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	boardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// renderTile draws one tile. The cursor is shown with brackets so it stays
// visible on every background.
func renderTile(st session.State, index, cursor int, captured bool) string {
	tile := st.Grid.Tile(index)
	style, ok := tileStyles[tile.State]
	if !ok {
		style = tileStyles[core.Unplayed]
	}
	if st.Selected(index) {
		style = selectedStyle
	}
	if captured {
		style = style.Underline(true)
	}

	left, right := " ", " "
	if index == cursor && !st.Over {
		left, right = "[", "]"
	}
	return left + style.Render(string(tile.Letter)) + right
}

// RenderBoard renders the grid with cursor, selection and recent captures.
func RenderBoard(st session.State, cursor int, captured map[int]bool) string {
	var sb strings.Builder
	g := st.Grid
	for row := range g.Rows() {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range g.Cols() {
			i := g.Index(row, col)
			sb.WriteString(renderTile(st, i, cursor, captured[i]))
		}
	}
	return boardStyle.Render(sb.String())
}

// renderScores shows committed points and the change the pending word would make.
func renderScores(st session.State) string {
	mover, live := st.Mover()
	parts := make([]string, 0, 2)
	for _, p := range []core.Player{core.Player1, core.Player2} {
		marker := "  "
		if live && p == mover {
			marker = "> "
		}
		text := fmt.Sprintf("%s%s: %d", marker, p, st.Points[p])
		if d := st.Projected[p] - st.Points[p]; d != 0 {
			text += fmt.Sprintf(" (%+d)", d)
		}
		parts = append(parts, playerStyles[p].Render(text))
	}
	return strings.Join(parts, "    ")
}

// renderStatus describes whose turn it is or how the game ended.
func renderStatus(st session.State) string {
	if st.Over {
		switch st.Result {
		case core.Player1Win:
			return titleStyle.Render("Game over: " + core.Player1.String() + " wins!")
		case core.Player2Win:
			return titleStyle.Render("Game over: " + core.Player2.String() + " wins!")
		default:
			return titleStyle.Render("Game over: draw")
		}
	}
	mover, _ := st.Mover()
	status := fmt.Sprintf("%s to play", mover)
	if st.HasPassed {
		status += dimStyle.Render("  (opponent passed; passing again ends the game)")
	}
	return status
}

// renderPlayed lists played words, wrapped to width.
func renderPlayed(words []string, width int) string {
	if len(words) == 0 {
		return dimStyle.Render("No words played yet.")
	}
	if width <= 0 {
		width = 80
	}
	return dimStyle.Width(width).Render("Played: " + strings.Join(words, " "))
}
