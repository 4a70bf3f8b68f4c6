package network

import (
	"context"
	"errors"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobradar/internal/models"
	"golang.org/x/time/rate"
)

func TestNewLimiter(t *testing.T) {
	if got := newLimiter(-1).Limit(); got != rate.Inf {
		t.Fatalf("newLimiter(-1) limit = %v, want Inf", got)
	}
	if got, want := newLimiter(0).Limit(), rate.Every(defaultPageInterval); got != want {
		t.Fatalf("newLimiter(0) limit = %v, want %v", got, want)
	}
	if got, want := newLimiter(time.Second).Limit(), rate.Limit(1); got != want {
		t.Fatalf("newLimiter(1s) limit = %v, want %v", got, want)
	}
	if got := newLimiter(time.Second).Burst(); got != 1 {
		t.Fatalf("burst = %d, want 1", got)
	}
}

func TestDoHonorsCancelledContext(t *testing.T) {
	client, err := NewClient(nil, models.ProviderConfig{PageInterval: time.Hour})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	// Spend the single burst token so the next request has to wait.
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, "https://www.linkedin.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Do(req); err == nil {
		t.Fatalf("Do() error = nil with a cancelled context")
	}
}

func TestDoFailsWhenAllProxiesBanned(t *testing.T) {
	rotator, err := NewRotator([]string{"http://127.0.0.1:1"}, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	proxy, _ := rotator.Next()
	rotator.Report(proxy, 429)

	client, err := NewClient(rotator, models.ProviderConfig{PageInterval: -1})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	req, err := fhttp.NewRequest(fhttp.MethodGet, "https://www.linkedin.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Do(req); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("Do() error = %v, want ErrNoProxies", err)
	}
}

func TestRandomUAUsesConfiguredAgents(t *testing.T) {
	client, err := NewClient(nil, models.ProviderConfig{UserAgents: []string{"jobradar-test"}})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := client.randomUA(); got != "jobradar-test" {
		t.Fatalf("randomUA() = %q", got)
	}
}
