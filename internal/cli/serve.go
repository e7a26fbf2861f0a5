package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"recordboard/internal/api"
)

// ServeCmd loads the collection once and serves the board until SIGINT/SIGTERM.
type ServeCmd struct {
	Addr string `short:"a" long:"addr" env:"RB_HTTP_ADDR" description:"listen address (overrides config addr)"`
}

func (c *ServeCmd) Execute(_ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(ctx, rootOptions())
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Addr = c.Addr
	}

	board, cancel, err := newBoard(ctx, cfg)
	if err != nil {
		return err
	}
	defer cancel()

	// A failed initial load leaves the list empty; the page still comes up.
	_, _ = board.Load(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(board, api.Options{CORSOrigins: cfg.CORSOrigins}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s (upstream %s)", cfg.Addr, cfg.UpstreamURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
