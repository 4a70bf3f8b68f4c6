package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/jobradar/internal/config"
	"github.com/jimezsa/jobradar/internal/export"
)

var errNegativeDelay = errors.New("--delay must not be negative")

type RunCmd struct {
	Config       string        `name:"config" short:"c" help:"Search config file (.json, .json5, .yaml). Falls back to SEARCH_CONFIG, then the configured default." type:"path"`
	OutDir       string        `name:"out-dir" help:"Directory for the JSON and CSV artifacts." type:"path"`
	Stamp        bool          `help:"Name artifacts YYYY-MM-DD_HH-MM-SS instead of latest."`
	Top          int           `help:"Ranked jobs to print (0 uses the config default, -1 prints all)."`
	Delay        string        `help:"Pause between queries, e.g. 2s or 500ms."`
	QueryTimeout time.Duration `help:"Deadline for a single query; 0 disables it."`
	Format       string        `help:"Stdout format: table, csv, json, md." enum:",table,csv,json,md" default:""`
	Links        string        `help:"Table link display: short or full." enum:"short,full" default:"full"`
	ProviderOptions
}

func (r *RunCmd) Run(ctx *Context) error {
	searchCfg, source, err := config.ResolveSearchConfig(r.Config, ctx.Config.SearchConfig)
	if err != nil {
		return fmt.Errorf("search config: %w", err)
	}
	delay, err := r.delay(ctx.Config)
	if err != nil {
		return err
	}
	format, err := resolveFormat(ctx, r.Format, "")
	if err != nil {
		return err
	}

	outDir := firstNonEmpty(r.OutDir, ctx.Config.OutputDir, "results")
	if err := ensureWritableDir(outDir); err != nil {
		return fmt.Errorf("output dir %q: %w", outDir, err)
	}

	provider, err := newProvider(ctx, r.ProviderOptions)
	if err != nil {
		return err
	}

	ctx.Logger.Info().
		Str("source", source).
		Int("queries", len(searchCfg.Searches)).
		Str("out_dir", outDir).
		Msg("search config loaded")

	result, err := runBatch(ctx, provider, searchCfg, batchOptions{Delay: delay, QueryTimeout: r.QueryTimeout})
	if err != nil {
		return err
	}

	artifacts, err := export.WriteArtifacts(outDir, result, r.Stamp)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}
	ctx.Logger.Info().
		Str("run_id", result.RunID).
		Str("json", artifacts.JSONPath).
		Str("csv", artifacts.CSVPath).
		Msg("artifacts written")

	if err := writeResult(ctx, ctx.Out, result, format, r.Links, r.top(ctx.Config)); err != nil {
		return err
	}
	printRunSummary(ctx, result)
	return nil
}

func (r *RunCmd) delay(cfg config.Config) (time.Duration, error) {
	raw := strings.TrimSpace(r.Delay)
	if raw == "" {
		return cfg.Delay(), nil
	}
	delay, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("--delay: %w", err)
	}
	if delay < 0 {
		return 0, errNegativeDelay
	}
	return delay, nil
}

func (r *RunCmd) top(cfg config.Config) int {
	switch {
	case r.Top < 0:
		return 0
	case r.Top > 0:
		return r.Top
	default:
		return cfg.Top
	}
}
