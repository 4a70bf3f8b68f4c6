package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/scraper"
	"github.com/rs/zerolog"
)

func TestExecutorReturnsProviderResult(t *testing.T) {
	want := []models.Posting{{URL: "a"}, {URL: "b"}}
	provider := scraper.ProviderFunc(func(ctx context.Context, q models.SearchQuery) ([]models.Posting, error) {
		return want, nil
	})

	outcome := NewExecutor(provider, 0, zerolog.Nop()).Execute(context.Background(), models.SearchQuery{Keyword: "ios"})
	if outcome.Err != nil {
		t.Fatalf("Execute() error = %v", outcome.Err)
	}
	if len(outcome.Postings) != 2 || outcome.Postings[0].URL != "a" {
		t.Fatalf("unexpected postings: %+v", outcome.Postings)
	}
}

func TestExecutorConvertsFailuresToEmptyResult(t *testing.T) {
	cases := []struct {
		name     string
		provider scraper.ProviderFunc
		timeout  time.Duration
	}{
		{
			name: "error",
			provider: func(ctx context.Context, q models.SearchQuery) ([]models.Posting, error) {
				return []models.Posting{{URL: "partial"}}, errors.New("connection reset")
			},
		},
		{
			name: "panic",
			provider: func(ctx context.Context, q models.SearchQuery) ([]models.Posting, error) {
				panic("malformed response")
			},
		},
		{
			name:    "deadline",
			timeout: 10 * time.Millisecond,
			provider: func(ctx context.Context, q models.SearchQuery) ([]models.Posting, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := NewExecutor(tc.provider, tc.timeout, zerolog.Nop()).Execute(context.Background(), models.SearchQuery{Keyword: "ios"})
			if outcome.Err == nil {
				t.Fatalf("expected diagnostic error")
			}
			if outcome.Postings == nil || len(outcome.Postings) != 0 {
				t.Fatalf("expected empty postings, got %+v", outcome.Postings)
			}
		})
	}
}

func TestExecutorNilResultBecomesEmpty(t *testing.T) {
	provider := scraper.ProviderFunc(func(ctx context.Context, q models.SearchQuery) ([]models.Posting, error) {
		return nil, nil
	})
	outcome := NewExecutor(provider, 0, zerolog.Nop()).Execute(context.Background(), models.SearchQuery{})
	if outcome.Err != nil || outcome.Postings == nil {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}
