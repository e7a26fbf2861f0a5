package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"recordboard/internal/config"
	"recordboard/internal/engine"
	"recordboard/internal/model"
	"recordboard/internal/remote"
)

var (
	stdout io.Writer = os.Stdout

	rootMu   sync.Mutex
	rootOpts *Options
)

// setRootOptions remembers the global flags so that sub-commands can resolve
// the configuration once go-flags has populated them.
func setRootOptions(o *Options) {
	rootMu.Lock()
	defer rootMu.Unlock()
	rootOpts = o
}

func rootOptions() *Options {
	rootMu.Lock()
	defer rootMu.Unlock()
	if rootOpts == nil {
		return &Options{}
	}
	return rootOpts
}

// resolveConfig layers defaults, the optional config document and explicit flags, in that order.
func resolveConfig(ctx context.Context, o *Options) (*config.Config, error) {
	cfg := config.Default()
	if o.Config != "" {
		loaded, err := config.Load(ctx, o.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.Upstream != "" {
		cfg.UpstreamURL = o.Upstream
	}
	if o.Timeout > 0 {
		cfg.RequestTimeout = o.Timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBoard builds a record manager talking to the configured upstream collection.
func newBoard(ctx context.Context, cfg *config.Config) (*engine.RecordManager, context.CancelFunc, error) {
	headers := http.Header{"Accept": {"application/json"}}
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}
	client, err := remote.NewClient(cfg.UpstreamURL,
		remote.WithTimeout(cfg.RequestTimeout),
		remote.WithUserAgent("recordboard"),
		remote.WithHeaders(headers),
	)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewRecordManager(ctx, client, engine.RecordManagerCfg{
		EnqueueTimeout:  cfg.EnqueueTimeout,
		MaxQueuedEvents: cfg.EventQueue,
	})
}

// loadBoard resolves the config, builds a board and loads the collection once.
// A failed load is fatal for one-shot commands.
func loadBoard(ctx context.Context) (*engine.RecordManager, context.CancelFunc, error) {
	cfg, err := resolveConfig(ctx, rootOptions())
	if err != nil {
		return nil, nil, err
	}
	board, cancel, err := newBoard(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if _, err := board.Load(ctx); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("load collection: %w", err)
	}
	return board, cancel, nil
}

// printTable writes the list the way the page renders it: 1-based index, name, email.
func printTable(w io.Writer, st model.State) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tEmail")
	for i, r := range st.Records {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, sanitize(r.Name), sanitize(r.Email))
	}
	return tw.Flush()
}

func sanitize(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ").Replace(s)
}
