// Package numverify validates phone numbers via the NumVerify API.
// NumVerify never returns owner names; it contributes carrier and
// line-type metadata to the report and is excluded from correlation
// (its source weight is zero).
package numverify

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

const sourceTag = "numverify"

// Client queries the NumVerify validation API.
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

// WithAPIKey sets the access key explicitly, overriding the
// NUMVERIFY_API_KEY environment variable.
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

// New creates a NumVerify client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:  slog.Default(),
		apiKey:  os.Getenv("NUMVERIFY_API_KEY"),
		baseURL: "http://apilayer.net/api/validate",
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

type validateResponse struct {
	Number      string `json:"number"`
	CountryName string `json:"country_name"`
	Location    string `json:"location"`
	Carrier     string `json:"carrier"`
	LineType    string `json:"line_type"`
	Valid       bool   `json:"valid"`
}

// Hunt validates the number. Found is always false: this source exists
// for its carrier metadata, not for names.
func (c *Client) Hunt(ctx context.Context, q source.Query) (source.Result, error) {
	if c.apiKey == "" {
		return source.Result{}, source.ErrNoCredentials
	}

	num, err := phone.Parse(q.Phone, "US")
	if err != nil {
		return source.Result{}, err
	}

	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("number", num.E164)
	params.Set("format", "1")

	c.logger.InfoContext(ctx, "numverify validation", "phone", num.E164)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return source.Result{}, err
	}

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return source.Result{}, err
	}

	var vr validateResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return source.Result{}, fmt.Errorf("decode validation response: %w", err)
	}

	return source.Result{
		Found: false,
		Fields: map[string]string{
			"valid":     fmt.Sprintf("%t", vr.Valid),
			"carrier":   vr.Carrier,
			"location":  vr.Location,
			"line_type": vr.LineType,
			"country":   vr.CountryName,
		},
	}, nil
}

var _ source.Source = (*Client)(nil)
