package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
	"github.com/vovakirdan/wordwar/internal/platform/tui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved game",
	Long: `Print the board, scores and played words of a saved game.

Each tile is shown as its letter followed by its owner:
  .   unplayed
  1   owned by player 1      1*  surrounded by player 1
  2   owned by player 2      2*  surrounded by player 2

Examples:
  wordwar show 3f2a91c0`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := withStore()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.store.ResolveID(args[0])
	if err != nil {
		return err
	}
	snap, err := a.store.LoadGame(id)
	if err != nil {
		return err
	}
	g, err := core.Restore(snap, a.dict)
	if err != nil {
		return err
	}

	printGame(cmd.OutOrStdout(), id, g)
	return nil
}

func printGame(out io.Writer, id string, g *core.Game) {
	fmt.Fprintf(out, "Game %s  (%s)\n", tui.ShortID(id), g.Phase())
	fmt.Fprintf(out, "%s: %d   %s: %d\n\n",
		core.Player1, g.Points(core.Player1), core.Player2, g.Points(core.Player2))
	fmt.Fprintln(out, formatBoard(g.Grid()))
	fmt.Fprintln(out)

	if words := g.PlayedWords(); len(words) > 0 {
		fmt.Fprintf(out, "Played: %s\n", strings.Join(words, " "))
	} else {
		fmt.Fprintln(out, "Played: (none)")
	}

	if result, over := g.Result(); over {
		switch result {
		case core.Player1Win:
			fmt.Fprintf(out, "Result: %s wins\n", core.Player1)
		case core.Player2Win:
			fmt.Fprintf(out, "Result: %s wins\n", core.Player2)
		default:
			fmt.Fprintln(out, "Result: draw")
		}
		return
	}
	mover, _ := g.Mover()
	fmt.Fprintf(out, "Next: %s", mover)
	if g.HasPassed() {
		fmt.Fprint(out, " (opponent passed)")
	}
	fmt.Fprintln(out)
}

// tileMarks are the owner suffixes printed after each letter.
var tileMarks = map[core.LetterState]string{
	core.Unplayed:          ".",
	core.Player1Owned:      "1",
	core.Player1Surrounded: "1*",
	core.Player2Owned:      "2",
	core.Player2Surrounded: "2*",
}

func formatBoard(g *core.Grid) string {
	var sb strings.Builder
	for row := range g.Rows() {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(" ")
		for col := range g.Cols() {
			tile := g.Tile(g.Index(row, col))
			fmt.Fprintf(&sb, " %c%-2s", tile.Letter, tileMarks[tile.State])
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
