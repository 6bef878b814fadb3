package riot

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
)

const testAPIKey = "test-key"

type fakeResponse struct {
	status int
	body   string
}

// fakeTransport serves canned bodies keyed by URL path and records every
// request it sees.
type fakeTransport struct {
	mu        sync.Mutex
	requests  []*http.Request
	responses map[string]fakeResponse
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	resp, ok := f.responses[req.URL.Path]
	f.mu.Unlock()

	if !ok {
		resp = fakeResponse{status: http.StatusNotFound, body: `{"status":{"message":"Not Found","status_code":404}}`}
	}
	if resp.status == 0 {
		resp.status = http.StatusOK
	}
	return &http.Response{
		StatusCode: resp.status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Request:    req,
	}, nil
}

func (f *fakeTransport) urls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		out = append(out, req.URL.String())
	}
	return out
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T, responses map[string]fakeResponse) (*Client, *fakeTransport, *bytes.Buffer) {
	t.Helper()
	transport := &fakeTransport{responses: responses}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := New(testAPIKey, "na", WithHTTPClient(&http.Client{Transport: transport}), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client, transport, &logs
}

func ok(body string) fakeResponse {
	return fakeResponse{status: http.StatusOK, body: body}
}
