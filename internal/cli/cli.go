// Package cli builds the command line entry point shared by the status
// services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coast-guide/agent-fleet/internal/config"
	"github.com/coast-guide/agent-fleet/internal/server"
	"github.com/coast-guide/agent-fleet/pkg/version"
)

// NewRootCommand returns the command for app. Without a subcommand it
// serves until SIGINT or SIGTERM.
func NewRootCommand(app config.App) *cobra.Command {
	var port int

	root := &cobra.Command{
		Use:          app.Name,
		Short:        app.Title,
		Long:         fmt.Sprintf("%s serves GET /status for %q.\nConfiguration is read from %s* environment variables.", app.Name, app.Title, app.EnvPrefix),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app, port)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	root.PersistentFlags().IntVar(&port, "port", 0, fmt.Sprintf("listen port (overrides %sPORT)", app.EnvPrefix))
	root.AddCommand(newVersionCommand(app))
	return root
}

func newVersionCommand(app config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit: %s, built: %s)\n",
				app.Name, version.Version, version.Commit, version.Date)
		},
	}
}

func loadConfig(app config.App, port int) (*config.Config, error) {
	cfg, err := config.Load(app)
	if err != nil {
		return nil, err
	}
	if port != 0 {
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--port: %w", err)
		}
	}
	return cfg, nil
}

// serve runs the server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	deps, err := server.NewDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.Warn("close dependencies", zap.Error(err))
		}
	}()

	srv := server.New(cfg, log, deps)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
