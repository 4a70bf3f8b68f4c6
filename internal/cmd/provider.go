package cmd

import (
	"fmt"
	"time"

	"github.com/jimezsa/jobradar/internal/config"
	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/network"
	"github.com/jimezsa/jobradar/internal/scraper"
)

const proxyBanDuration = 10 * time.Minute

// ProviderOptions configure the HTTP side of the job provider.
type ProviderOptions struct {
	Proxies      string        `help:"Comma-separated proxy URLs." env:"JOBRADAR_PROXIES"`
	HTTPTimeout  time.Duration `name:"http-timeout" help:"Timeout for a single provider request." default:"30s"`
	PageInterval time.Duration `help:"Minimum gap between provider page requests." default:"750ms"`
}

// newProvider is swapped out in tests.
var newProvider = buildProvider

func buildProvider(ctx *Context, opts ProviderOptions) (scraper.Provider, error) {
	proxies, err := config.LoadProxies(opts.Proxies)
	if err != nil {
		return nil, fmt.Errorf("load proxies: %w", err)
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBanDuration)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
	}

	client, err := network.NewClient(rotator, models.ProviderConfig{
		Timeout:      opts.HTTPTimeout,
		PageInterval: opts.PageInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	return scraper.NewLinkedIn(client), nil
}
