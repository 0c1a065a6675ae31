// Package whitepages hunts owner names via the WhitePages Pro reverse
// phone API.
package whitepages

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/codeGROOVE-dev/namehunt/httpcache"
	"github.com/codeGROOVE-dev/namehunt/phone"
	"github.com/codeGROOVE-dev/namehunt/source"
)

const sourceTag = "whitepages"

// Client queries the WhitePages Pro API.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   httpcache.Cacher
	logger  *slog.Logger
	apiKey  string
	baseURL string
}

// WithAPIKey sets the API key explicitly, overriding the
// WHITEPAGES_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithCache sets the HTTP response cache.
func WithCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *config) { c.baseURL = baseURL }
}

// New creates a WhitePages client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:  slog.Default(),
		apiKey:  os.Getenv("WHITEPAGES_API_KEY"),
		baseURL: "https://proapi.whitepages.com/3.0/phone",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // needed for corporate proxies
			},
		},
		cache:   cfg.cache,
		logger:  cfg.logger,
		apiKey:  cfg.apiKey,
		baseURL: cfg.baseURL,
	}, nil
}

// Name returns the source tag.
func (*Client) Name() string { return sourceTag }

type phoneResponse struct {
	Results []struct {
		LineType  string `json:"line_type"`
		Carrier   string `json:"carrier"`
		BelongsTo []struct {
			Name string `json:"name"`
		} `json:"belongs_to"`
	} `json:"results"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Hunt performs a reverse phone lookup and returns every name the
// number belongs to.
func (c *Client) Hunt(ctx context.Context, q source.Query) (source.Result, error) {
	if c.apiKey == "" {
		return source.Result{}, source.ErrNoCredentials
	}

	num, err := phone.Parse(q.Phone, "US")
	if err != nil {
		return source.Result{}, err
	}

	params := url.Values{}
	params.Set("phone", num.E164)
	params.Set("api_key", c.apiKey)

	c.logger.InfoContext(ctx, "whitepages reverse phone lookup", "phone", num.E164)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return source.Result{}, err
	}

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return source.Result{}, err
	}

	var pr phoneResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return source.Result{}, fmt.Errorf("decode phone response: %w", err)
	}
	if pr.Error != nil {
		return source.Result{}, fmt.Errorf("whitepages API error: %s", pr.Error.Message)
	}

	res := source.Result{Fields: map[string]string{}}
	for _, r := range pr.Results {
		if r.LineType != "" {
			res.Fields["line_type"] = r.LineType
		}
		if r.Carrier != "" {
			res.Fields["carrier"] = r.Carrier
		}
		for _, p := range r.BelongsTo {
			if p.Name != "" {
				res.Names = append(res.Names, p.Name)
			}
		}
	}
	res.Found = len(res.Names) > 0

	if res.Found {
		c.logger.InfoContext(ctx, "whitepages names found", "count", len(res.Names))
	}

	return res, nil
}

var _ source.Source = (*Client)(nil)
