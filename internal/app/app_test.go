package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bingbr/bard/internal/config"
	"github.com/bingbr/bard/internal/storage/logs"
	"github.com/bingbr/bard/riot"
)

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (w *lockedBuffer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

func (w *lockedBuffer) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.String()
}

func waitForSubstring(t *testing.T, timeout time.Duration, output func() string, substr string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(output(), substr) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("expected log output to contain %q; got: %s", substr, output())
}

func TestGoSafeRecoversAndLogsPanic(t *testing.T) {
	var out lockedBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	done := make(chan struct{})
	goSafe(logger, "panic_task", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background task was not executed")
	}

	waitForSubstring(t, 2*time.Second, out.String, "Background task panicked")
	waitForSubstring(t, 2*time.Second, out.String, "task=panic_task")
	waitForSubstring(t, 2*time.Second, out.String, "panic=boom")
	waitForSubstring(t, 2*time.Second, out.String, "stack=")
}

func TestGoSafeWithNilFunction(t *testing.T) {
	var out lockedBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	goSafe(logger, "  ", nil)

	waitForSubstring(t, 500*time.Millisecond, out.String, "Background task not started: nil func")
	waitForSubstring(t, 500*time.Millisecond, out.String, "task=unnamed")
}

func TestGoSafeRunsFunction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan struct{})
	goSafe(logger, "runs", func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background task did not run")
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func respond(status int, body string) doerFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveAssetVersion(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		configured string
		doer       riot.Doer
		want       string
	}{
		{"pinned", "6.24.1", respond(http.StatusInternalServerError, ""), "6.24.1"},
		{"unset", "", respond(http.StatusInternalServerError, ""), ""},
		{"latest", config.LatestAssetVersion, respond(http.StatusOK, `["7.1.1","6.24.1"]`), "7.1.1"},
		{"latest lookup fails", config.LatestAssetVersion, respond(http.StatusBadGateway, ""), ""},
	}
	for _, tc := range tests {
		if got := resolveAssetVersion(ctx, tc.configured, tc.doer, discardLogger()); got != tc.want {
			t.Fatalf("resolveAssetVersion(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestValidateRiotAPIKeyOnStartup(t *testing.T) {
	var seen string
	ok := func(req *http.Request) (*http.Response, error) {
		seen = req.URL.String()
		return respond(http.StatusOK, `{"champions":[]}`)(req)
	}
	client, err := riot.New("secret-key", "euw", riot.WithDoer(doerFunc(ok)))
	if err != nil {
		t.Fatalf("riot.New() error = %v", err)
	}
	if err := validateRiotAPIKeyOnStartup(context.Background(), client, discardLogger()); err != nil {
		t.Fatalf("validateRiotAPIKeyOnStartup() error = %v", err)
	}
	if !strings.Contains(seen, "/api/lol/euw/champion/v1.2/champion?") || !strings.Contains(seen, "freeToPlay=true") {
		t.Fatalf("unexpected validation url %q", seen)
	}

	rejected, _ := riot.New("secret-key", "euw", riot.WithDoer(respond(http.StatusUnauthorized, `{"status":{"status_code":401}}`)))
	err = validateRiotAPIKeyOnStartup(context.Background(), rejected, discardLogger())
	if err == nil || strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("expected redacted validation error, got %v", err)
	}
	if err := validateRiotAPIKeyOnStartup(context.Background(), nil, discardLogger()); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestNewRiotClient(t *testing.T) {
	cfg := config.Config{
		RiotAPIKey:   "secret-key",
		RiotRegion:   "kr",
		RateLimitCfg: filepath.Join(t.TempDir(), "missing.toml"),
	}
	client, err := newRiotClient(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("newRiotClient() error = %v", err)
	}
	if client.Region() != "kr" || client.AssetVersion() != riot.DefaultAssetVersion {
		t.Fatalf("unexpected client region=%q assetVersion=%q", client.Region(), client.AssetVersion())
	}

	bad := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(bad, []byte("[riot_rate_limit]\nunknown = 1\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg.RateLimitCfg = bad
	if _, err := newRiotClient(context.Background(), cfg, discardLogger()); err == nil {
		t.Fatalf("expected invalid rate limit config error")
	}
}

type recordingSink struct {
	mu      sync.Mutex
	entries []logs.Entry
}

func (s *recordingSink) InsertLog(_ context.Context, entry logs.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func TestNewLogHandler(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{}
	logger := slog.New(newLogHandler(config.Config{LogLevel: slog.LevelInfo}, &out, sink))

	logger.Debug("debug only in sink")
	logger.Info("both")

	if strings.Contains(out.String(), "debug only in sink") || !strings.Contains(out.String(), "both") {
		t.Fatalf("unexpected terminal output %q", out.String())
	}
	if len(sink.entries) != 2 {
		t.Fatalf("expected 2 sink entries, got %d", len(sink.entries))
	}

	out.Reset()
	slog.New(newLogHandler(config.Config{LogLevel: slog.LevelInfo}, &out, nil)).Info("terminal only")
	if !strings.Contains(out.String(), "terminal only") {
		t.Fatalf("expected terminal output without sink, got %q", out.String())
	}
}

type stubPruner struct {
	cutoff  time.Time
	removed int64
	err     error
}

func (p *stubPruner) PruneLogs(_ context.Context, cutoff time.Time) (int64, error) {
	p.cutoff = cutoff
	return p.removed, p.err
}

func TestPruneLogs(t *testing.T) {
	var out lockedBuffer
	logger := slog.New(slog.NewTextHandler(&out, nil))
	now := time.Date(2016, 3, 15, 0, 0, 0, 0, time.UTC)

	pruner := &stubPruner{removed: 4}
	pruneLogs(context.Background(), pruner, logger, now)
	if want := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC); !pruner.cutoff.Equal(want) {
		t.Fatalf("cutoff = %v, want %v", pruner.cutoff, want)
	}
	if !strings.Contains(out.String(), "removed=4") {
		t.Fatalf("expected prune log, got %q", out.String())
	}

	pruneLogs(context.Background(), &stubPruner{err: errors.New("db down")}, logger, now)
	if !strings.Contains(out.String(), "Failed to prune logs") {
		t.Fatalf("expected prune failure log, got %q", out.String())
	}
}

func TestConnectDB_EmptyURL(t *testing.T) {
	db, closeDB, err := connectDB(context.Background(), "")
	if err != nil || db != nil {
		t.Fatalf("connectDB(\"\") = %v, %v", db, err)
	}
	closeDB()
}
