package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/ws"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start WebSocket server",
	Long: `Serve games over WebSocket at /ws. Each connection gets its own board;
pick the size with the variant query parameter.

Example:
  t2048 web --addr :8080
  websocat 'ws://localhost:8080/ws?variant=2048_large'`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from config)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	addr := appConfig.Web.Address
	if cmd.Flags().Changed("addr") {
		addr = flagWebAddr
	}
	if err := checkVariant(appConfig.Game.Variant); err != nil {
		return err
	}

	srv := ws.NewServer(ws.Config{
		Variant:      appConfig.Game.Variant,
		ReadLimit:    appConfig.Web.ReadLimit,
		PingInterval: appConfig.Web.PingInterval,
		Rules:        rules(0, 0),
	}, logger.WithPrefix("t2048-web"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, addr)
}
