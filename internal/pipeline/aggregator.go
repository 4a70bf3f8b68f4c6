package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/scraper"
	"github.com/rs/zerolog"
)

var (
	ErrNoProvider = errors.New("no provider configured")
	ErrNoQueries  = errors.New("at least one search query is required")
)

// DefaultDelay is the pause between two consecutive queries.
const DefaultDelay = 2 * time.Second

type State int

const (
	StateIdle State = iota
	StateRunning
	StateScoring
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateScoring:
		return "scoring"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Progress is reported before each query starts.
type Progress struct {
	Index int
	Total int
	Query models.SearchQuery
}

type Config struct {
	Criteria     models.FilterCriteria
	Delay        time.Duration
	QueryTimeout time.Duration
	Profile      *models.Profile
	Logger       zerolog.Logger
	OnProgress   func(Progress)
}

// Aggregator runs a batch of queries one after another, merges the filtered
// results by URL and ranks them by relevance. A single Aggregator can be
// reused; every Run starts from an empty accumulation.
type Aggregator struct {
	executor   *Executor
	criteria   models.FilterCriteria
	delay      time.Duration
	profile    *models.Profile
	logger     zerolog.Logger
	onProgress func(Progress)

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	state State
}

func New(provider scraper.Provider, cfg Config) *Aggregator {
	var executor *Executor
	if provider != nil {
		executor = NewExecutor(provider, cfg.QueryTimeout, cfg.Logger)
	}
	return &Aggregator{
		executor:   executor,
		criteria:   cfg.Criteria,
		delay:      cfg.Delay,
		profile:    cfg.Profile,
		logger:     cfg.Logger,
		onProgress: cfg.OnProgress,
		sleep:      sleepContext,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Aggregator) setState(state State) {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
}

// Run executes queries in order. Individual query failures never fail the
// run; only a missing provider, an empty batch or a cancelled context do.
func (a *Aggregator) Run(ctx context.Context, queries []models.SearchQuery) (models.RunResult, error) {
	if a.executor == nil {
		a.setState(StateFailed)
		return models.RunResult{}, ErrNoProvider
	}
	if len(queries) == 0 {
		a.setState(StateFailed)
		return models.RunResult{}, ErrNoQueries
	}

	runID := a.newID()
	logger := a.logger.With().Str("run_id", runID).Logger()
	logger.Info().Int("queries", len(queries)).Dur("delay", a.delay).Msg("batch started")

	accumulated := NewDeduplicator()
	outcomes := make([]models.QueryOutcome, 0, len(queries))

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return a.fail(logger, err)
		}
		a.setState(StateRunning)
		if a.onProgress != nil {
			a.onProgress(Progress{Index: i, Total: len(queries), Query: query})
		}

		outcome := a.executor.Execute(ctx, query)
		kept := Filter(outcome.Postings, a.criteria)
		added := accumulated.Add(kept)

		outcomes = append(outcomes, models.QueryOutcome{
			Name:   query.Label(),
			Found:  len(outcome.Postings),
			Kept:   len(kept),
			Added:  added,
			Failed: outcome.Err != nil,
		})
		logger.Info().
			Str("query", query.Label()).
			Str("keyword", query.Keyword).
			Str("location", query.Location).
			Int("found", len(outcome.Postings)).
			Int("kept", len(kept)).
			Int("added", added).
			Bool("failed", outcome.Err != nil).
			Msg("query done")

		if i < len(queries)-1 {
			if err := a.sleep(ctx, a.delay); err != nil {
				return a.fail(logger, err)
			}
		}
	}

	// A cancellation during the last query is swallowed by the executor.
	if err := ctx.Err(); err != nil {
		return a.fail(logger, err)
	}

	a.setState(StateScoring)
	scored := ScoreAll(accumulated.Drain(), a.criteria.PreferredKeywords)
	Rank(scored)

	result := models.RunResult{
		RunID:       runID,
		GeneratedAt: a.now().UTC(),
		TotalJobs:   len(scored),
		Jobs:        scored,
		Profile:     a.profile,
		Queries:     outcomes,
	}
	a.setState(StateDone)
	logger.Info().
		Int("total_jobs", result.TotalJobs).
		Int("failed_queries", result.FailedQueries()).
		Msg("batch finished")
	return result, nil
}

func (a *Aggregator) fail(logger zerolog.Logger, err error) (models.RunResult, error) {
	a.setState(StateFailed)
	logger.Error().Err(err).Msg("batch aborted")
	return models.RunResult{}, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
