package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/doctrans/internal/app"
	"github.com/ZaguanLabs/doctrans/internal/server"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := map[string]any{}
			if addr != "" {
				overrides["server.addr"] = addr
			}
			cfg, err := loadConfig(cmd, g, overrides)
			if err != nil {
				return err
			}
			l := newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.NewFromConfig(ctx, cfg, l)
			if err != nil {
				return err
			}
			defer a.Close()

			l.Info("Configured translation service",
				"provider", cfg.Translation.Provider,
				"target", cfg.Translation.TargetLanguage,
				"store", cfg.Store.Backend,
			)

			srv := server.New(a, server.Config{
				Addr:           cfg.Server.Addr,
				MaxUploadBytes: cfg.Server.MaxUploadBytes,
			}, l)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: :8080)")
	return cmd
}
