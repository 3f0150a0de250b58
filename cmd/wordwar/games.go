package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wordwar/internal/platform/tui"
)

var (
	flagBrowse bool
	flagLimit  int
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List saved games",
	Long: `Show saved games, most recently played first.

With --browse, open an interactive list: Enter resumes the highlighted
game and D deletes it.

Examples:
  wordwar games
  wordwar games --limit 5
  wordwar games --browse`,
	Args: cobra.NoArgs,
	RunE: runGames,
}

func init() {
	gamesCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Pick a game interactively and resume it")
	gamesCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of games to list")
}

func runGames(cmd *cobra.Command, args []string) error {
	a, err := withStore()
	if err != nil {
		return err
	}
	defer a.Close()

	if flagBrowse {
		return browseGames(a)
	}

	games, err := a.store.ListGames(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(games) == 0 {
		fmt.Fprintln(out, "No saved games.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'wordwar play' to start one.")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-8s  %-12s  %4s  %4s  %s\n", "ID", "Status", "P1", "P2", "Updated")
	fmt.Fprintf(out, "  %-8s  %-12s  %4s  %4s  %s\n", "--", "------", "--", "--", "-------")

	for _, g := range games {
		fmt.Fprintf(out, "  %-8s  %-12s  %4d  %4d  %s\n",
			tui.ShortID(g.ID), g.Phase, g.Player1Points, g.Player2Points,
			g.UpdatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'wordwar play <id>' to resume a game.")
	return nil
}

func browseGames(a *app) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("--browse needs an interactive terminal")
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	id, err := tui.RunBrowser(a.store, width, height)
	if err != nil || id == "" {
		return err
	}

	table := a.table()
	if err := table.Open(id); err != nil {
		return err
	}
	return tui.RunGame(table, id)
}
