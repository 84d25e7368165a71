package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kazzababe/gridui/internal/demo"
	"github.com/kazzababe/gridui/pkg/engine"
	"github.com/kazzababe/gridui/pkg/observability"
	"github.com/kazzababe/gridui/pkg/wsrenderer"
)

func serveCmd() *cobra.Command {
	var (
		addr           string
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo inventory view over a websocket",
		Long: `Serve starts an HTTP server exposing the demo inventory view's
websocket handshake endpoint at /ws and a health check at /healthz. Each
connecting client gets its own Session mounted against a fresh
InventoryView (internal/demo).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, shutdownTimeout)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "grace period for in-flight sessions on shutdown")

	return cmd
}

func runServe(addr string, shutdownTimeout time.Duration) error {
	logger := slog.Default()
	metrics := observability.NewMetrics(observability.WithNamespace("gridui"))
	tracer := observability.NewTracer("gridui-server")

	server := wsrenderer.NewServer(wsrenderer.ServerConfig{Logger: logger})
	server.OnConnect = func(sess *wsrenderer.Session) {
		root := demo.NewDefaultInventory()

		session, err := engine.Mount(root, nil, nil, sess, sess,
			engine.WithColumns(demo.Columns),
			engine.WithLogger(logger),
			engine.WithMetrics(metrics),
			engine.WithTracer(tracer),
		)
		if err != nil {
			logger.Error("gridui: mount failed", "error", err)
			sess.Close()
			return
		}

		sess.Start()
		_ = session
	}

	httpServer := &http.Server{Addr: addr, Handler: server}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gridui: listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("gridui: serve failed: %w", err)
		}
		return nil
	case <-shutdown:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}
