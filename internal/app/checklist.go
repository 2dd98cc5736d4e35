package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samvad-hq/placeholder-checklist/internal/checklist"
	"github.com/samvad-hq/placeholder-checklist/internal/config"
	"github.com/samvad-hq/placeholder-checklist/internal/logger"
	"github.com/samvad-hq/placeholder-checklist/pkg/httpclient"
	"github.com/samvad-hq/placeholder-checklist/pkg/placeholder"
)

// ErrRender marks a run whose API calls all succeeded but whose report could
// not be written.
var ErrRender = errors.New("render report")

// Checklist represents the driver runtime: one API client and one pass over
// the checklist, rendered to an output stream.
type Checklist struct {
	cfg    *config.Config
	runner *checklist.Runner
	out    io.Writer
	log    logger.Logger
}

// NewChecklist builds the runtime from config.
func NewChecklist(cfg *config.Config, out io.Writer, log logger.Logger) (*Checklist, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if out == nil {
		return nil, fmt.Errorf("output writer must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	transport := httpclient.NewRestyClient(cfg.RequestTimeout)
	client, err := placeholder.NewClient(cfg.BaseURL, transport, log)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	log.InfoObj("api client initialized", "client_config", map[string]any{
		"endpoint":        client.Endpoint(),
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
	})

	return &Checklist{
		cfg:    cfg,
		runner: checklist.NewRunner(client, log),
		out:    out,
		log:    log,
	}, nil
}

// Run executes the checklist once and writes the report.
func (c *Checklist) Run(ctx context.Context) error {
	if c == nil || c.runner == nil {
		return fmt.Errorf("checklist is not initialized")
	}

	start := time.Now()
	report, err := c.runner.Run(ctx)
	if err != nil {
		return err
	}
	c.log.InfoObj("checklist completed", "checklist_meta", map[string]any{
		"elapsed_ms":    time.Since(start).Milliseconds(),
		"report_format": c.cfg.ReportFormat,
	})

	if err := report.Render(c.out, c.cfg.ReportFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}
