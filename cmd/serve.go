package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/nsl/internal/adapters/http/api"
	"github.com/okian/nsl/internal/adapters/mcpserver"
	"github.com/okian/nsl/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and the MCP endpoint",
		Long:  "Serves the squad API under /api/v1, Prometheus metrics at /healthz and the streamable MCP endpoint at mcp_path.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides NSL_ADDR)")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, addr string) error {
	st, err := bootstrap(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := st.cfg
	if addr == "" {
		addr = cfg.Addr
	}

	tools := mcpserver.NewServer(st.svc, Version, mcpserver.WithLogger(st.logger.Named("mcp")))
	opts := []api.Option{
		api.WithLogger(st.logger.Named("http")),
		api.WithCORSOrigins(cfg.CORSAllowOrigins),
		api.WithMCPHandler(cfg.MCPPath, tools.HTTPHandler()),
	}
	if cfg.RateLimitEnabled {
		opts = append(opts, api.WithRateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow()))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(st.svc, opts...).Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		st.logger.Info(ctx, "starting HTTP server",
			logger.String("addr", addr),
			logger.String("mcp_path", cfg.MCPPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or a listener failure.
	select {
	case err := <-errCh:
		if err != nil {
			st.logger.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	st.logger.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		st.logger.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	st.logger.Info(ctx, "server stopped")
	return nil
}
