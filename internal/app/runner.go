package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Adda-Baaj/swapi-curl/internal/config"
	"github.com/Adda-Baaj/swapi-curl/internal/logger"
	"github.com/Adda-Baaj/swapi-curl/internal/scripts"
	"github.com/Adda-Baaj/swapi-curl/pkg/dump"
	"github.com/Adda-Baaj/swapi-curl/pkg/httpclient"
)

// Runner sends one scripted request and dumps whatever came back.
type Runner struct {
	cfg      *config.Config
	registry *scripts.Registry
	client   httpclient.Client
	dumper   *dump.Dumper
	out      io.Writer
	log      logger.Logger
}

// NewRunner wires a runner. A nil client gets the default resty client and a
// nil out writes to stdout.
func NewRunner(cfg *config.Config, log logger.Logger, client httpclient.Client, out io.Writer) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if client == nil {
		rc := httpclient.NewRestyClient(cfg.RequestTimeout)
		if logger.S != nil {
			rc.SetLogger(logger.S)
		}
		client = rc
	}
	if out == nil {
		out = os.Stdout
	}

	registry, err := scripts.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("load scripts: %w", err)
	}

	return &Runner{
		cfg:      cfg,
		registry: registry,
		client:   client,
		dumper:   dump.New(),
		out:      out,
		log:      log,
	}, nil
}

// Run executes the script with the given id once. Transport failures are not
// returned: the falsy result false is dumped in place of a response.
func (r *Runner) Run(ctx context.Context, scriptID string) error {
	if r == nil || r.registry == nil || r.client == nil {
		return fmt.Errorf("runner is not initialized")
	}

	script, ok := r.registry.ByID(scriptID)
	if !ok {
		return fmt.Errorf("unknown script %q", scriptID)
	}
	req, err := script.Request()
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	r.log.DebugObj("sending request", "request", map[string]any{
		"script_id":       script.ID,
		"method":          req.Method,
		"url":             req.URL,
		"headers":         req.HeaderMap(),
		"include_headers": req.IncludeHeaders,
	})

	var result interface{}
	resp, err := r.client.Do(ctx, req)
	if err != nil {
		r.log.DebugObj("request failed; dumping falsy result", "request_error", map[string]any{
			"script_id": script.ID,
			"error":     err.Error(),
		})
		result = false
	} else {
		result = httpclient.Capture(resp, req.IncludeHeaders)
		r.log.DebugObj("response received", "response_meta", map[string]any{
			"script_id":   script.ID,
			"status_code": resp.StatusCode(),
			"body_bytes":  len(resp.Body()),
		})
	}

	if err := r.dumper.Dump(r.out, req.OutputTag, result); err != nil {
		return fmt.Errorf("dump result: %w", err)
	}
	return nil
}
