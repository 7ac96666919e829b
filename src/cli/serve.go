package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"512b.it/drawday/src/game"
	"512b.it/drawday/src/judge"
	"512b.it/drawday/src/logging"
	"512b.it/drawday/src/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.String("host", "", "listen host (default 127.0.0.1)")
	f.Int("port", 0, "listen port (default 5000, or $PORT)")
	f.Bool("debug", false, "run gin in debug mode")
	f.String("provider", "", "judge provider: openai or gemini")
	f.String("model", "", "judge model identifier")
	f.String("log-level", "", "log level: debug, info, warn, error")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.load(cmd, map[string]string{
		"server.host":    "host",
		"server.port":    "port",
		"server.debug":   "debug",
		"judge.provider": "provider",
		"judge.model":    "model",
		"log.level":      "log-level",
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	j, err := judge.New(ctx, cfg.Judge, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := game.NewService(catalog, j, game.WithLogger(logger.Named("game")))
	srv := server.NewServer(svc, logger.Named("http"), server.MustNewMetrics(reg))
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           server.NewRouter(srv, reg, cfg.Server.Debug),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", httpServer.Addr),
			zap.String("provider", cfg.Judge.Provider),
			zap.Int("targets", catalog.Len()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
