package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wordwar/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [id]",
	Short: "Play a new game, or resume a saved one",
	Long: `Start a hot-seat game in the terminal. With an id (or any unique
prefix of one), resume that saved game instead.

Controls:
  Arrows/hjkl  - Move the cursor
  Space        - Add or remove the letter under the cursor
  Backspace    - Remove the last letter
  Esc          - Clear the word
  Enter        - Play the word
  P            - Pass (two passes in a row end the game)
  N            - New game (after game over)
  ?            - Show all keys
  Q/Ctrl+C     - Quit (the game is saved)

Examples:
  wordwar play
  wordwar play --seed 42
  wordwar play 3f2a91c0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openStore(); err != nil {
		if len(args) > 0 {
			return err
		}
		// A new game is still playable, it just won't be saved
		a.logger.Warn("could not open games database, game will not be saved", "error", err)
	}

	table := a.table()
	var id string
	if len(args) > 0 {
		if id, err = a.store.ResolveID(args[0]); err != nil {
			return err
		}
		if err := table.Open(id); err != nil {
			return err
		}
	} else {
		if id, err = table.Create(flagSeed); err != nil {
			return err
		}
	}

	if err := tui.RunGame(table, id); err != nil {
		return err
	}

	if a.store != nil {
		fmt.Printf("Game %s saved. Resume with: wordwar play %s\n", tui.ShortID(id), tui.ShortID(id))
	}
	return nil
}
