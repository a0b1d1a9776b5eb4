package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/porbotenet-wq/facadeflow/internal/transport"
)

func newServeCmd(a *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Mini App HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.Config.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.Config.Server.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", a.Config.Server.Addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", ln.Addr())
			return serve(ctx, a, newHTTPServer(a), ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newHTTPServer(a *App) *http.Server {
	handler := transport.NewRouter(transport.Dependencies{
		Config:    a.Config,
		Logger:    a.Logger,
		Metrics:   a.Metrics,
		Now:       a.now,
		Projects:  a.Projects,
		Users:     a.Users,
		Objects:   a.Objects,
		Tasks:     a.Tasks,
		Dashboard: a.Dashboard,
		PlanFact:  a.PlanFact,
		Facades:   a.Facades,
		Gantt:     a.Gantt,
		Workflow:  a.Workflow,
	})
	return &http.Server{
		Addr:              a.Config.Server.Addr,
		Handler:           handler,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		ReadHeaderTimeout: a.Config.Server.ReadTimeout,
		WriteTimeout:      a.Config.Server.WriteTimeout,
	}
}

// serve runs srv on ln until ctx is done, then drains in-flight requests
// within the configured shutdown timeout.
func serve(ctx context.Context, a *App, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down", "timeout", a.Config.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http: %w", err)
	}
	return nil
}
