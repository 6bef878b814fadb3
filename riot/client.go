package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client is the dispatch surface over the legacy League of Legends API.
// It is read-only after construction and safe for concurrent use.
type Client struct {
	router *Router
	doer   Doer
	logger *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.doer = client
		}
	}
}

// WithDoer replaces the transport, e.g. with a RateLimitedDoer.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a client with the default version and platform tables.
func New(apiKey, region string, opts ...Option) (*Client, error) {
	return NewClient(DefaultSettings(apiKey, region), opts...)
}

func NewClient(settings Settings, opts ...Option) (*Client, error) {
	router, err := NewRouter(settings)
	if err != nil {
		return nil, err
	}
	c := &Client{
		router: router,
		doer:   defaultHTTPClient(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Region() string {
	return c.router.settings.Region
}

func (c *Client) AssetVersion() string {
	return c.router.settings.AssetVersion
}

// Route resolves a request without performing it.
func (c *Client) Route(family string, segments []string, region string, params url.Values) (Request, error) {
	return c.router.Route(family, segments, region, params)
}

// Raw routes and performs a request, returning the undecoded JSON body.
func (c *Client) Raw(ctx context.Context, family string, segments []string, region string, params url.Values) (json.RawMessage, error) {
	request, err := c.router.Route(family, segments, region, params)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, request)
}

func (c *Client) get(ctx context.Context, family string, segments ...string) (json.RawMessage, error) {
	return c.Raw(ctx, family, segments, "", nil)
}

func (c *Client) getWith(ctx context.Context, family string, params url.Values, segments ...string) (json.RawMessage, error) {
	return c.Raw(ctx, family, segments, "", params)
}

// getIn targets region instead of the home region.
func (c *Client) getIn(ctx context.Context, region, family string, params url.Values, segments ...string) (json.RawMessage, error) {
	return c.Raw(ctx, family, segments, region, params)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, formatID(id))
	}
	return strings.Join(parts, ",")
}

func requireNonEmpty(name, value string) (string, error) {
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%s is required", name)
}
