package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fincalc-agent/config"
	"fincalc-agent/logger"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Start the HTTP API. Configuration comes from config.yaml, a .env file
and FINCALC_* environment variables, in increasing order of precedence.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			cfg, err := config.Load(rootOpts.ConfigFile)
			if err != nil {
				return formatter.Fail(WrapExitError(ExitCommandError, "load config", err))
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			level := cfg.Logging.Level
			if rootOpts.Verbose {
				level = "debug"
			}
			log, err := logger.NewStructured(level, cfg.Logging.Format)
			if err != nil {
				return formatter.Fail(WrapExitError(ExitCommandError, "create logger", err))
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := runServer(ctx, cfg, log, nil); err != nil {
				log.WithError(err).Error("server stopped with error", nil)
				return WrapExitError(ExitCommandError, "serve", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout. ready, when set, receives the bound
// address once the listener is open.
func runServer(ctx context.Context, cfg *config.Config, log logger.Logger, ready func(addr string)) error {
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Warn("failed to release resources", nil)
		}
	}()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", map[string]interface{}{"addr": ln.Addr().String()})
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if ready != nil {
		ready(ln.Addr().String())
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exited", nil)
	return nil
}
