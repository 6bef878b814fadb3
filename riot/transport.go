package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const (
	defaultUserAgent = "bard-go/1.0"
	defaultTimeout   = 20 * time.Second
	maxErrorBody     = 2048
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "riot request failed"
	}
	return fmt.Sprintf("request %s failed: status %d body %q", e.URL, e.StatusCode, e.Body)
}

// IsNotFound reports whether err carries a 404 from the API.
func IsNotFound(err error) bool {
	statusErr, ok := errors.AsType[*HTTPStatusError](err)
	return ok && statusErr.StatusCode == http.StatusNotFound
}

var apiKeyPattern = regexp.MustCompile(`(api_key=)[^&\s"]*`)

// RedactAPIKey masks the value of every api_key query parameter in s.
func RedactAPIKey(s string) string {
	return apiKeyPattern.ReplaceAllString(s, "${1}REDACTED")
}

func (c *Client) do(ctx context.Context, request Request) (json.RawMessage, error) {
	endpoint := request.String()
	redacted := RedactAPIKey(endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	if request.JSON {
		req.Header.Set("Accept", "application/json")
	}

	started := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.Debug("Riot request failed", "family", request.Family, "url", redacted, "error", err)
		return nil, fmt.Errorf("request %s: %w", redacted, scrubURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Riot request",
		"family", request.Family,
		"url", redacted,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{
			URL:        redacted,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", redacted, err)
	}
	return raw, nil
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// fetch performs an unrouted GET, for endpoints outside the API namespaces.
func fetch[T any](ctx context.Context, doer Doer, endpoint string) (target T, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return target, err
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	resp, err := doer.Do(req)
	if err != nil {
		return target, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close response body: %w", closeErr)
		}
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return target, &HTTPStatusError{URL: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err = json.NewDecoder(resp.Body).Decode(&target); err != nil {
		return target, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return target, nil
}

// scrubURLError strips the credential from the URL that net/http embeds in
// transport errors.
func scrubURLError(err error) error {
	urlErr, ok := errors.AsType[*url.Error](err)
	if !ok {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: RedactAPIKey(urlErr.URL), Err: urlErr.Err}
}
