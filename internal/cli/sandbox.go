package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"recordboard/internal/config"
	"recordboard/internal/sandbox"
)

// SandboxCmd serves an in-memory collection compatible with the public demo API.
type SandboxCmd struct {
	Addr        string        `short:"a" long:"addr" default:":8787" description:"listen address"`
	Seed        string        `long:"seed" description:"YAML/JSON list of records to start with (demo users when empty)"`
	Latency     time.Duration `long:"latency" description:"artificial latency per request"`
	FailRate    float64       `long:"fail-rate" description:"share of requests answered with --fail-code"`
	FailCode    int           `long:"fail-code" default:"500" description:"status used for injected failures"`
	FailMethods []string      `long:"fail-method" description:"restrict failure injection to these HTTP methods"`
}

func (c *SandboxCmd) Execute(_ []string) error {
	ctx := context.Background()
	seed := sandbox.DemoUsers()
	if c.Seed != "" {
		loaded, err := config.LoadSeed(ctx, c.Seed)
		if err != nil {
			return err
		}
		seed = loaded
	}
	if c.FailRate < 0 || c.FailRate > 1 {
		return fmt.Errorf("--fail-rate must be within [0,1], got %v", c.FailRate)
	}

	handler := sandbox.NewServer(sandbox.NewStore(seed),
		sandbox.WithLatency(c.Latency),
		sandbox.WithFailure(sandbox.Failure{Rate: c.FailRate, Code: c.FailCode, Methods: c.FailMethods}),
	)
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	host := c.Addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	log.Printf("sandbox listening on %s with %d records", c.Addr, len(seed))
	fmt.Fprintf(stdout, "export RB_UPSTREAM_URL=http://%s%s\n", host, sandbox.CollectionPath)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("sandbox failed: %w", err)
	}
	return nil
}
