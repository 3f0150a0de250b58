package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordwar/internal/config"
	"github.com/vovakirdan/wordwar/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wordwar SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own hot-seat game on a fresh board. Games are
saved to the server's database and can be resumed locally with 'wordwar play'.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.wordwar/host_key

Examples:
  wordwar serve                           # Listen on the configured address
  wordwar serve --ssh :2222               # Listen on port 2222
  wordwar serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openStore(); err != nil {
		a.logger.Warn("could not open games database, games will not be saved", "error", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     a.cfg.Server.Address,
		HostKeyPath: a.cfg.Server.HostKey,
		IdleTimeout: a.cfg.Server.IdleTimeout,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if cfg.HostKeyPath, err = config.ExpandHome(cfg.HostKeyPath); err != nil {
		return err
	}

	server, err := tui.NewSSHServer(cfg, a.table(), a.logger.WithPrefix("wordwar-ssh"))
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting wordwar SSH server on %s\n", server.Addr())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
