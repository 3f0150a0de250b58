package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordwar/internal/platform/tui"
)

var flagDeleteAll bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved game",
	Long: `Remove a saved game. Results of finished games are kept for 'wordwar stats'.
With --all, every saved game and every result is removed.

Examples:
  wordwar delete 3f2a91c0
  wordwar delete --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&flagDeleteAll, "all", false, "Delete all games and results")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if flagDeleteAll == (len(args) == 1) {
		return errors.New("give either a game id or --all")
	}

	a, err := withStore()
	if err != nil {
		return err
	}
	defer a.Close()

	if flagDeleteAll {
		if err := a.store.DeleteAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted all games and results.")
		return nil
	}

	id, err := a.store.ResolveID(args[0])
	if err != nil {
		return err
	}
	if err := a.store.DeleteGame(id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted game %s\n", tui.ShortID(id))
	return nil
}
