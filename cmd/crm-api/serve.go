package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/outcome"
	outpgx "github.com/blackwell-systems/outcome/integrations/pgx"
	"github.com/blackwell-systems/outcome/internal/config"
	"github.com/blackwell-systems/outcome/internal/deals"
	"github.com/blackwell-systems/outcome/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		env        string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if env != "" {
				cfg.Environment = env
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger, err := logging.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			handler, closeStore, err := newHandler(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			ln, err := net.Listen("tcp", cfg.HTTP.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.HTTP.Addr, err)
			}
			return serve(ctx, logger, &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}, ln, cfg.GetShutdownTimeout())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "crm.yaml", "path to the YAML config file")
	cmd.Flags().StringVar(&env, "env", "", "environment override (development, production)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address override")
	return cmd
}

// newHandler wires the deal service onto the configured store. The
// returned func releases the store.
func newHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, func(), error) {
	var store deals.Store = deals.NewMemoryStore()
	closeStore := func() {}

	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		if err := deals.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store = deals.NewPostgresStore(pool)
		closeStore = pool.Close
		logger.Info("using postgres deal store")
	} else {
		logger.Info("using in-memory deal store")
	}

	h := outcome.NewExceptionHandler(logger, cfg.IsDevelopment(), outpgx.Classifier)
	return deals.NewRouter(deals.NewService(store), h), closeStore, nil
}

// serve runs srv on ln until ctx is done, then shuts it down within
// timeout.
func serve(ctx context.Context, logger *zap.Logger, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
