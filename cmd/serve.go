package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marcus/sitegate/internal/api"
	"github.com/marcus/sitegate/internal/metrics"
	"github.com/marcus/sitegate/internal/output"
	"github.com/marcus/sitegate/internal/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only HTTP API",
	Long: `Serve feature decisions, template settings and navigation over HTTP.

Server settings come from SITEGATE_* environment variables (SITEGATE_LISTEN_ADDR,
SITEGATE_LOG_FORMAT, SITEGATE_LOG_LEVEL, SITEGATE_RATE_LIMIT,
SITEGATE_CORS_ALLOWED_ORIGINS, SITEGATE_TRUSTED_PROXIES,
SITEGATE_SHUTDOWN_TIMEOUT). SIGHUP reloads the
project and generated config; --watch reloads them when they change on disk.`,
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := api.LoadConfig(nil)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}
		slog.SetDefault(newServerLogger(cfg))

		holder, err := snapshot.NewHolder(snapshot.Options{
			Dir:           getBaseDir(),
			GeneratedPath: generatedFlag,
			Logger:        slog.Default(),
			Observer:      metrics.RecordDecision,
		})
		if err != nil {
			slog.Error("load snapshot", "err", err)
			return err
		}

		srv, err := api.NewServer(cfg, holder)
		if err != nil {
			slog.Error("create server", "err", err)
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.Run(gctx) })
		g.Go(func() error { return reloadOnHangup(gctx, holder) })
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			g.Go(func() error { return holder.Watch(gctx) })
		}
		return g.Wait()
	},
}

// newServerLogger builds the process logger from the server config.
func newServerLogger(cfg api.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.LogFormat) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// reloadOnHangup reloads the snapshot on SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, h *snapshot.Holder) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hup:
			slog.Info("SIGHUP received, reloading")
			// Reload logs and keeps the previous snapshot on failure.
			_ = h.Reload(ctx)
		}
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides SITEGATE_LISTEN_ADDR)")
	serveCmd.Flags().Bool("watch", false, "reload when the project or generated config changes")
	rootCmd.AddCommand(serveCmd)
}
