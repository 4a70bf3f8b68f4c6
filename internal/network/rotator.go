package network

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator hands out proxies round-robin and benches the ones the provider
// answered with 403 or 429 until their ban expires.
type Rotator struct {
	mu          sync.Mutex
	proxies     []*url.URL
	banDuration time.Duration
	bannedUntil map[string]time.Time
	next        int
	now         func() time.Time
}

func NewRotator(raw []string, banDuration time.Duration) (*Rotator, error) {
	r := &Rotator{
		banDuration: banDuration,
		bannedUntil: map[string]time.Time{},
		now:         time.Now,
	}
	for _, proxy := range raw {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %q: %w", proxy, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("parse proxy %q: scheme and host are required", proxy)
		}
		r.proxies = append(r.proxies, u)
	}
	return r, nil
}

// Len returns the number of configured proxies, banned or not.
func (r *Rotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.proxies)
}

func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < len(r.proxies); i++ {
		proxy := r.proxies[r.next]
		r.next = (r.next + 1) % len(r.proxies)
		if !r.bannedLocked(proxy) {
			return proxy, nil
		}
	}
	return nil, ErrNoProxies
}

// Report bans proxy when status signals blocking or throttling.
func (r *Rotator) Report(proxy *url.URL, status int) bool {
	if proxy == nil || !BlockedStatus(status) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bannedUntil[proxy.String()] = r.now().Add(r.banDuration)
	return true
}

// BlockedStatus reports whether the provider is refusing the current IP.
func BlockedStatus(status int) bool {
	return status == 403 || status == 429 || status == 999
}

func (r *Rotator) bannedLocked(proxy *url.URL) bool {
	until, ok := r.bannedUntil[proxy.String()]
	if !ok {
		return false
	}
	if r.now().After(until) {
		delete(r.bannedUntil, proxy.String())
		return false
	}
	return true
}
