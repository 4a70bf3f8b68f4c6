package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/scraper"
)

var (
	ErrHealthCheck       = errors.New("provider health check failed")
	errMalformedResponse = errors.New("malformed provider response")
)

var healthQuery = models.SearchQuery{
	Name:            "health",
	Keyword:         "software engineer",
	Location:        "United States",
	DateSincePosted: models.RecencyPastWeek,
	JobType:         "full time",
	Limit:           5,
}

type HealthCmd struct {
	Timeout time.Duration `help:"Deadline for the probe query." default:"30s"`
	ProviderOptions
}

type HealthReport struct {
	Provider   string `json:"provider"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Jobs       int    `json:"jobs"`
	Error      string `json:"error,omitempty"`
}

func (h *HealthCmd) Run(ctx *Context) error {
	provider, err := newProvider(ctx, h.ProviderOptions)
	if err != nil {
		return err
	}

	report := checkProvider(ctx.runContext(), provider, h.Timeout)
	ctx.Logger.Info().
		Str("provider", report.Provider).
		Str("status", report.Status).
		Int64("duration_ms", report.DurationMS).
		Int("jobs", report.Jobs).
		Msg("health check")

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if report.Status == "ok" {
		ctx.UI.Successf("%s ok: %d jobs in %dms", report.Provider, report.Jobs, report.DurationMS)
	}

	if report.Status != "ok" {
		return fmt.Errorf("%w: %s", ErrHealthCheck, report.Error)
	}
	return nil
}

func checkProvider(ctx context.Context, provider scraper.Provider, timeout time.Duration) (report HealthReport) {
	report = HealthReport{Provider: provider.Name(), Status: "ok"}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		report.DurationMS = time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			report.Status = "error"
			report.Error = fmt.Sprintf("provider panic: %v", r)
		}
	}()

	postings, err := provider.Query(ctx, healthQuery)
	switch {
	case err != nil:
		report.Status = "error"
		report.Error = err.Error()
	case postings == nil:
		report.Status = "error"
		report.Error = errMalformedResponse.Error()
	default:
		report.Jobs = len(postings)
	}
	return report
}
