package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <word>...",
	Short: "Look words up in the dictionary",
	Long: `Report whether each word is in the configured dictionary.

Examples:
  wordwar check cat
  wordwar check toe oe tao`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, w := range args {
		word := strings.ToUpper(strings.TrimSpace(w))
		verdict := "not in dictionary"
		if len([]rune(word)) < 2 {
			verdict = "too short"
		} else if a.dict.Contains(word) {
			verdict = "ok"
		}
		fmt.Fprintf(out, "%s: %s\n", word, verdict)
	}
	return nil
}
