package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jimezsa/jobradar/internal/config"
	"github.com/jimezsa/jobradar/internal/export"
	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/pipeline"
	"github.com/jimezsa/jobradar/internal/scraper"
	"github.com/jimezsa/jobradar/internal/ui"
)

type batchOptions struct {
	Delay        time.Duration
	QueryTimeout time.Duration
}

func runBatch(ctx *Context, provider scraper.Provider, searchCfg config.SearchConfig, opts batchOptions) (models.RunResult, error) {
	spinner := startSearchIndicator(ctx)
	defer spinner.Stop()

	aggregator := pipeline.New(provider, pipeline.Config{
		Criteria:     searchCfg.Filters,
		Delay:        opts.Delay,
		QueryTimeout: opts.QueryTimeout,
		Profile:      searchCfg.Profile,
		Logger:       ctx.Logger,
		OnProgress: func(p pipeline.Progress) {
			spinner.SetLabel(fmt.Sprintf("[%d/%d] %s", p.Index+1, p.Total, p.Query.Label()))
		},
	})
	return aggregator.Run(ctx.runContext(), searchCfg.Searches)
}

func startSearchIndicator(ctx *Context) *ui.Spinner {
	if ctx == nil || ctx.UI == nil {
		return nil
	}
	return ctx.UI.StartSpinner("Searching...")
}

// writeResult prints the ranked jobs to w in the requested format.
func writeResult(ctx *Context, w io.Writer, result models.RunResult, format export.Format, links string, top int) error {
	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && ui.IsTTY(w)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteResult(w, result, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
		Top:          top,
	})
}

func resolveFormat(ctx *Context, formatFlag string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatCSV, nil
	}
	if formatFlag != "" {
		return export.ParseFormat(formatFlag)
	}
	if outputPath != "" || !ui.IsTTY(ctx.Out) {
		return export.FormatCSV, nil
	}
	return export.FormatTable, nil
}

func formatRunSummary(result models.RunResult) string {
	return fmt.Sprintf("summary: total_jobs=%d queries=%d failed=%d",
		result.TotalJobs, len(result.Queries), result.FailedQueries())
}

func printRunSummary(ctx *Context, result models.RunResult) {
	if ctx == nil || ctx.UI == nil {
		return
	}
	ctx.UI.Summaryf("%s", formatRunSummary(result))
	if !ctx.Verbose {
		return
	}
	for _, outcome := range result.Queries {
		if outcome.Failed {
			ctx.UI.Warnf("  %s: failed", outcome.Name)
			continue
		}
		ctx.UI.Summaryf("  %s: found=%d kept=%d new=%d", outcome.Name, outcome.Found, outcome.Kept, outcome.Added)
	}
}

// ensureWritableDir creates dir and proves a file can be created in it.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".jobradar-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
