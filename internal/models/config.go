package models

import "time"

// ProviderConfig tunes the provider's HTTP client. Zero values pick the
// client defaults; a negative PageInterval disables pacing.
type ProviderConfig struct {
	Timeout      time.Duration
	UserAgents   []string
	PageInterval time.Duration
}
