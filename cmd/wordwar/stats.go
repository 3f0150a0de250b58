package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordwar/internal/platform/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show results of finished games",
	Long: `Show how many games each player has won and list the most recent results.

Examples:
  wordwar stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := withStore()
	if err != nil {
		return err
	}
	defer a.Close()

	st, err := a.store.Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if st.Games == 0 {
		fmt.Fprintln(out, "No finished games yet.")
		return nil
	}

	fmt.Fprintf(out, "Finished games: %d\n", st.Games)
	fmt.Fprintf(out, "  Player 1 wins: %d\n", st.Player1Wins)
	fmt.Fprintf(out, "  Player 2 wins: %d\n", st.Player2Wins)
	fmt.Fprintf(out, "  Draws:         %d\n", st.Draws)
	fmt.Fprintln(out)

	recent, err := a.store.RecentResults(10)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Recent results:")
	fmt.Fprintf(out, "  %-8s  %-12s  %5s  %5s  %s\n", "ID", "Result", "P1", "P2", "Words")
	fmt.Fprintf(out, "  %-8s  %-12s  %5s  %5s  %s\n", "--", "------", "--", "--", "-----")
	for _, r := range recent {
		fmt.Fprintf(out, "  %-8s  %-12s  %5d  %5d  %d\n",
			tui.ShortID(r.GameID), r.Result, r.Player1Points, r.Player2Points, r.Words)
	}
	return nil
}
