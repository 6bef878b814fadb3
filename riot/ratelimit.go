package riot

import (
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Legacy development keys allowed 10 requests every 10 seconds.
	defaultRateLimitRequests = 10
	defaultRateLimitWindow   = 10 * time.Second
	defaultRateLimitBurst    = 10
)

type RateLimitWindow struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// RateLimitConfig holds limiter windows applied to every request and windows
// applied only to request paths under a prefix.
type RateLimitConfig struct {
	Defaults  []RateLimitWindow
	Endpoints map[string][]RateLimitWindow
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Defaults: []RateLimitWindow{{
			Requests: defaultRateLimitRequests,
			Window:   defaultRateLimitWindow,
			Burst:    defaultRateLimitBurst,
		}},
	}
}

type endpointLimiter struct {
	prefix   string
	limiters []*rate.Limiter
}

// RateLimitedDoer delays requests until the matching limiters allow them.
// It never retries: a request that fails is returned as is.
type RateLimitedDoer struct {
	next      Doer
	defaults  []*rate.Limiter
	endpoints []endpointLimiter
}

func NewRateLimitedDoer(next Doer, cfg RateLimitConfig) (*RateLimitedDoer, error) {
	if next == nil {
		next = defaultHTTPClient()
	}
	defaults, err := compileLimiters(cfg.Defaults)
	if err != nil {
		return nil, fmt.Errorf("compile default limiters: %w", err)
	}
	if len(defaults) == 0 {
		defaults = []*rate.Limiter{newRateLimiter(defaultRateLimitRequests, defaultRateLimitWindow, defaultRateLimitBurst)}
	}

	endpoints := make([]endpointLimiter, 0, len(cfg.Endpoints))
	for prefix, windows := range cfg.Endpoints {
		compiled, err := compileLimiters(windows)
		if err != nil {
			return nil, fmt.Errorf("compile endpoint limiter %q: %w", prefix, err)
		}
		if len(compiled) == 0 {
			continue
		}
		endpoints = append(endpoints, endpointLimiter{prefix: prefix, limiters: compiled})
	}
	sort.Slice(endpoints, func(i, j int) bool {
		return len(endpoints[i].prefix) > len(endpoints[j].prefix)
	})

	return &RateLimitedDoer{next: next, defaults: defaults, endpoints: endpoints}, nil
}

func (d *RateLimitedDoer) Do(req *http.Request) (*http.Response, error) {
	for _, limiter := range d.limitersFor(req.URL.Path) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("wait for rate limit: %w", err)
		}
	}
	return d.next.Do(req)
}

func (d *RateLimitedDoer) limitersFor(path string) []*rate.Limiter {
	selected := slices.Clone(d.defaults)
	for _, entry := range d.endpoints {
		if pathMatchesPrefix(path, entry.prefix) {
			selected = append(selected, entry.limiters...)
			break
		}
	}
	return selected
}

func compileLimiters(windows []RateLimitWindow) ([]*rate.Limiter, error) {
	limiters := make([]*rate.Limiter, 0, len(windows))
	for _, window := range windows {
		if window.Requests <= 0 || window.Window <= 0 {
			return nil, fmt.Errorf("invalid limiter window: requests=%d window=%s", window.Requests, window.Window)
		}
		burst := window.Burst
		if burst <= 0 {
			burst = max(min(window.Requests, defaultRateLimitBurst), 1)
		}
		limiters = append(limiters, newRateLimiter(window.Requests, window.Window, burst))
	}
	return limiters, nil
}

func newRateLimiter(requests int, window time.Duration, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), burst)
}

func pathMatchesPrefix(path, prefix string) bool {
	if path == "" || prefix == "" {
		return false
	}
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
