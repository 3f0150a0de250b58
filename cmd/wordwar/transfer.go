package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordwar/internal/games/wordwar/core"
	"github.com/vovakirdan/wordwar/internal/platform/tui"
	"github.com/vovakirdan/wordwar/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <id> [file]",
	Short: "Export a saved game as YAML",
	Long: `Write a saved game as YAML to a file, or to stdout if no file is given.
The output can be loaded again with 'wordwar import'.

Examples:
  wordwar export 3f2a91c0
  wordwar export 3f2a91c0 game.yaml`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML game",
	Long: `Load a game written by 'wordwar export' and save it under a new id.
Use - to read from stdin. The game is checked before it is saved.

Examples:
  wordwar import game.yaml
  cat game.yaml | wordwar import -`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
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
	data, err := storage.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", args[1], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported game %s to %s\n", tui.ShortID(id), args[1])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := withStore()
	if err != nil {
		return err
	}
	defer a.Close()

	var data []byte
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", args[0], err)
	}

	snap, err := storage.DecodeSnapshot(data)
	if err != nil {
		return err
	}
	// Reject anything that would not load later
	if _, err := core.Restore(snap, a.dict); err != nil {
		return err
	}

	id, err := a.store.ImportGame(snap)
	if err != nil {
		return err
	}
	if _, over := snap.Result(); over {
		if err := a.store.RecordResult(id, snap); err != nil {
			return err
		}
	}

	a.logger.Debug("game imported", "id", id, "phase", snap.Phase)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported game %s\n", tui.ShortID(id))
	return nil
}
