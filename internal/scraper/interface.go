package scraper

import (
	"context"
	"errors"

	"github.com/jimezsa/jobradar/internal/models"
)

var ErrNotImplemented = errors.New("provider not implemented")

// Provider is the external job-search data source. It is a black box: a
// query either yields postings or fails.
type Provider interface {
	Name() string
	Query(ctx context.Context, query models.SearchQuery) ([]models.Posting, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, query models.SearchQuery) ([]models.Posting, error)

func (f ProviderFunc) Name() string { return "func" }

func (f ProviderFunc) Query(ctx context.Context, query models.SearchQuery) ([]models.Posting, error) {
	return f(ctx, query)
}
