package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/placeholder-checklist/internal/app"
	"github.com/samvad-hq/placeholder-checklist/internal/config"
	"github.com/samvad-hq/placeholder-checklist/internal/logger"
)

// Exit codes: 1 when the checklist could not run, 2 when it ran but the
// report could not be written.
const (
	exitFailure      = 1
	exitRenderFailed = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "checklist failed: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, app.ErrRender) {
		return exitRenderFailed
	}
	return exitFailure
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("checklist starting", "startup_meta", map[string]any{
		"app_name":        cfg.AppName,
		"env":             cfg.Env,
		"endpoint":        cfg.BaseURL,
		"timeout_seconds": cfg.RequestTimeoutSeconds,
		"report_format":   cfg.ReportFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checklist, err := app.NewChecklist(cfg, os.Stdout, log)
	if err != nil {
		log.ErrorObj("failed to initialize checklist", "error", err)
		return err
	}

	if err := checklist.Run(ctx); err != nil {
		if errors.Is(err, app.ErrRender) {
			log.ErrorObj("checklist report not written", "report_error", map[string]any{
				"report_format": cfg.ReportFormat,
				"error":         err.Error(),
			})
		}
		return fmt.Errorf("checklist run: %w", err)
	}

	return nil
}
