package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/scraper"
	"github.com/rs/zerolog"
)

// Outcome is the result of one provider call. Postings is never nil; when
// Err is set it is empty and Err is only diagnostic.
type Outcome struct {
	Postings []models.Posting
	Err      error
	Elapsed  time.Duration
}

// Executor issues one query to the provider and turns every failure mode
// (error, panic, per-query deadline) into an empty result.
type Executor struct {
	provider scraper.Provider
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewExecutor(provider scraper.Provider, timeout time.Duration, logger zerolog.Logger) *Executor {
	return &Executor{provider: provider, timeout: timeout, logger: logger}
}

func (e *Executor) Execute(ctx context.Context, query models.SearchQuery) Outcome {
	start := time.Now()
	postings, err := e.call(ctx, query)
	outcome := Outcome{Postings: postings, Err: err, Elapsed: time.Since(start)}

	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("query", query.Label()).
			Dur("elapsed", outcome.Elapsed).
			Msg("search failed")
		outcome.Postings = []models.Posting{}
		return outcome
	}
	if outcome.Postings == nil {
		outcome.Postings = []models.Posting{}
	}
	e.logger.Debug().
		Str("query", query.Label()).
		Int("found", len(outcome.Postings)).
		Dur("elapsed", outcome.Elapsed).
		Msg("search finished")
	return outcome
}

func (e *Executor) call(ctx context.Context, query models.SearchQuery) (postings []models.Posting, err error) {
	defer func() {
		if r := recover(); r != nil {
			postings = nil
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.provider.Query(ctx, query)
}
