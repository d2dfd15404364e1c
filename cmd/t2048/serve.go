package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server that lets players connect and play remotely.
Each connection gets its own board.

Example:
  t2048 serve --ssh :2222
  ssh -p 2222 localhost`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig.SSH
	if cmd.Flags().Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.HostKey = flagHostKey
	}
	if err := checkVariant(appConfig.Game.Variant); err != nil {
		return err
	}

	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Address,
		HostKeyPath: cfg.HostKey,
		IdleTimeout: cfg.IdleTimeout,
		Variant:     appConfig.Game.Variant,
		Rules:       rules(0, 0),
	}, logger.WithPrefix("t2048-ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx)
}
