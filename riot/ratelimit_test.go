package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseRateLimitConfig(t *testing.T) {
	cfg, err := ParseRateLimitConfig(`
[[riot_rate_limit.defaults]]
requests = 10
window = "10s"

[[riot_rate_limit.defaults]]
requests = 500
window = "10m"
burst = 20

[[riot_rate_limit.endpoints]]
path = "/api/lol/static-data/*"
limits = [{ requests = 5, window = "1s" }]

[[riot_rate_limit.endpoints]]
path = "/championmastery/location/{platform}/player"
limits = [{ requests = 2, window = "1s" }]
`)
	if err != nil {
		t.Fatalf("ParseRateLimitConfig() error = %v", err)
	}
	if len(cfg.Defaults) != 2 || cfg.Defaults[1].Window != 10*time.Minute || cfg.Defaults[1].Burst != 20 {
		t.Fatalf("Defaults = %+v", cfg.Defaults)
	}
	if got := cfg.Endpoints["/api/lol/static-data/"]; len(got) != 1 || got[0].Requests != 5 {
		t.Fatalf("static-data endpoint = %+v", got)
	}
	if got := cfg.Endpoints["/championmastery/location/"]; len(got) != 1 || got[0].Requests != 2 {
		t.Fatalf("championmastery endpoint = %+v (all: %v)", got, cfg.Endpoints)
	}
}

func TestParseRateLimitConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown key", "[riot_rate_limit]\nretries = 3\n", "unknown keys"},
		{"bad duration", "[[riot_rate_limit.defaults]]\nrequests = 1\nwindow = \"soon\"\n", "parse duration"},
		{"broad path", "[[riot_rate_limit.endpoints]]\npath = \"/*\"\n", "too broad"},
		{"bad toml", "[[riot_rate_limit", "parse"},
	}
	for _, tc := range tests {
		_, err := ParseRateLimitConfig(tc.input)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("ParseRateLimitConfig(%s) error = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestLoadRateLimitConfigMissingFile(t *testing.T) {
	_, loaded, err := LoadRateLimitConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil || loaded {
		t.Fatalf("LoadRateLimitConfig(missing) = loaded %v, err %v", loaded, err)
	}
	_, loaded, err = LoadRateLimitConfig("  ")
	if err != nil || loaded {
		t.Fatalf("LoadRateLimitConfig(blank) = loaded %v, err %v", loaded, err)
	}
}

func TestLoadRateLimitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[[riot_rate_limit.defaults]]\nrequests = 3\nwindow = \"1s\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, loaded, err := LoadRateLimitConfig(path)
	if err != nil || !loaded {
		t.Fatalf("LoadRateLimitConfig() = loaded %v, err %v", loaded, err)
	}
	if len(cfg.Defaults) != 1 || cfg.Defaults[0].Requests != 3 {
		t.Fatalf("Defaults = %+v", cfg.Defaults)
	}
}

func TestNewRateLimitedDoerRejectsInvalidWindow(t *testing.T) {
	_, err := NewRateLimitedDoer(nil, RateLimitConfig{Defaults: []RateLimitWindow{{Requests: 0, Window: time.Second}}})
	if err == nil {
		t.Fatal("NewRateLimitedDoer() error = nil, want error")
	}
}

func TestRateLimitedDoerSelectsEndpointLimiters(t *testing.T) {
	doer, err := NewRateLimitedDoer(nil, RateLimitConfig{
		Defaults: []RateLimitWindow{{Requests: 10, Window: time.Second}},
		Endpoints: map[string][]RateLimitWindow{
			"/api/lol/static-data/":      {{Requests: 1, Window: time.Second}},
			"/api/lol/static-data/na/v1": {{Requests: 1, Window: time.Second}, {Requests: 5, Window: time.Minute}},
		},
	})
	if err != nil {
		t.Fatalf("NewRateLimitedDoer() error = %v", err)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/lol/na/summoner/v1.4/1", 1},
		{"/api/lol/static-data/euw/v1.2/champion", 2},
		{"/api/lol/static-data/na/v1/champion", 3},
	}
	for _, tc := range tests {
		if got := len(doer.limitersFor(tc.path)); got != tc.want {
			t.Fatalf("limitersFor(%q) = %d limiters, want %d", tc.path, got, tc.want)
		}
	}
}

func TestRateLimitedDoerDelegates(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	doer, err := NewRateLimitedDoer(server.Client(), DefaultRateLimitConfig())
	if err != nil {
		t.Fatalf("NewRateLimitedDoer() error = %v", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/shards", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := doer.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	_ = resp.Body.Close()
	if hits != 1 {
		t.Fatalf("server hits = %d, want 1", hits)
	}
}

func TestRateLimitedDoerHonorsContext(t *testing.T) {
	next := doerFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("next doer called after limiter wait failed")
		return nil, nil
	})
	doer, err := NewRateLimitedDoer(next, RateLimitConfig{
		Defaults: []RateLimitWindow{{Requests: 1, Window: time.Hour, Burst: 1}},
	})
	if err != nil {
		t.Fatalf("NewRateLimitedDoer() error = %v", err)
	}
	// Drain the single token so the next Wait has to block.
	doer.defaults[0].Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "https://na.api.pvp.net/x", nil)
	if _, err := doer.Do(req); !errors.Is(err, context.Canceled) {
		t.Fatalf("Do() error = %v, want %v", err, context.Canceled)
	}
}

func TestPathMatchesPrefix(t *testing.T) {
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"/observer-mode/rest/NA1/featured", "/observer-mode/rest", true},
		{"/observer-mode/rest", "/observer-mode/rest", true},
		{"/observer-mode/restful", "/observer-mode/rest", false},
		{"/api/lol/static-data/na", "/api/lol/static-data/", true},
		{"", "/x", false},
	}
	for _, tc := range tests {
		if got := pathMatchesPrefix(tc.path, tc.prefix); got != tc.want {
			t.Fatalf("pathMatchesPrefix(%q, %q) = %v, want %v", tc.path, tc.prefix, got, tc.want)
		}
	}
}
