package main

import (
	"context"
	"dailydigest/internal/serve"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dev server with live reload",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Serve.Addr = serveAddr
		}
		if serveNoWatch {
			cfg.Serve.Watch = false
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := serve.New(cfg, cfg.Build.IndexPath, cfg.Build.ThemeDir, cfg.Site.Theme)
		if err != nil {
			return fmt.Errorf("serve init: %w", err)
		}
		defer s.Close()

		return s.ListenAndServe(ctx, cfg.Serve.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides serve.addr)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "disable file watching")
}
