// wordwar is a two-player word game for the terminal. Players take turns
// spelling words from a shared letter grid to claim and surround tiles.
//
// Usage:
//
//	wordwar play [id]        - Start a new game, or resume a saved one
//	wordwar games            - List saved games (--browse for a picker)
//	wordwar show <id>        - Print a saved game's board and scores
//	wordwar export <id> [f]  - Write a saved game as YAML
//	wordwar import <file>    - Load a YAML game into the database
//	wordwar delete <id>      - Remove a saved game
//	wordwar stats            - Show results of finished games
//	wordwar check <word>...  - Look words up in the dictionary
//	wordwar serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.wordwar, ./configs)
//	--db <path>         - Database path (overrides storage.path)
//	--seed <value>      - RNG seed for new games
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordwar",
	Short: "Word War - a two-player word game in your terminal",
	Long: `Word War is a hot-seat word game played on a grid of letters.

Players take turns picking letters to spell a word. Every letter used is
claimed for the player, and claimed letters whose neighbours all belong to
the same player become surrounded and can no longer be taken.

Available commands:
  play     - Play a new game or resume a saved one
  games    - List saved games
  show     - Print a saved game
  export   - Export a game as YAML
  import   - Import a YAML game
  delete   - Delete a saved game
  stats    - Results of finished games
  check    - Dictionary lookup
  serve    - Start SSH server for remote play

Examples:
  wordwar play
  wordwar play 3f2a91c0
  wordwar games --browse
  wordwar serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to games database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for new games (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
}
