// Package truepeoplesearch hunts owner names by scraping
// TruePeopleSearch reverse phone result pages.
package truepeoplesearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/namehunt/httpcache"
	"github.com/codeGROOVE-dev/namehunt/phone"
	"github.com/codeGROOVE-dev/namehunt/source"
)

const sourceTag = "truepeoplesearch"

// Client scrapes TruePeopleSearch.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	baseURL    string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   httpcache.Cacher
	logger  *slog.Logger
	baseURL string
}

// WithCache sets the HTTP response cache.
func WithCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithBaseURL overrides the site root. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *config) { c.baseURL = baseURL }
}

// New creates a TruePeopleSearch client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:  slog.Default(),
		baseURL: "https://www.truepeoplesearch.com",
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
		baseURL: cfg.baseURL,
	}, nil
}

// Name returns the source tag.
func (*Client) Name() string { return sourceTag }

// Hunt fetches the reverse phone result page and extracts the primary
// name, AKA variants, and age.
func (c *Client) Hunt(ctx context.Context, q source.Query) (source.Result, error) {
	num, err := phone.Parse(q.Phone, "US")
	if err != nil {
		return source.Result{}, err
	}

	searchURL := fmt.Sprintf("%s/results?phoneno=%s", c.baseURL, url.QueryEscape(num.E164))
	c.logger.InfoContext(ctx, "truepeoplesearch scrape", "url", searchURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return source.Result{}, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return source.Result{}, err
	}

	res := parseHTML(string(body))
	if res.Found {
		c.logger.InfoContext(ctx, "truepeoplesearch names found", "count", len(res.Names))
	}
	return res, nil
}

var (
	h1Pattern  = regexp.MustCompile(`<h1[^>]*>\s*([^<]{3,80}?)\s*</h1>`)
	agePattern = regexp.MustCompile(`(?i)Age:?\s*(\d{1,3})`)
	akaPattern = regexp.MustCompile(`(?is)AKA:?\s*</[^>]+>(.*?)</(?:div|span|p)>`)
	akaItem    = regexp.MustCompile(`>\s*([^<>]{3,80}?)\s*<`)
)

func parseHTML(content string) source.Result {
	res := source.Result{Fields: map[string]string{}}
	seen := make(map[string]bool)
	add := func(raw string) {
		text := strings.TrimSpace(html.UnescapeString(raw))
		if text == "" || seen[text] {
			return
		}
		// Result pages use the h1 for error banners too.
		if strings.Contains(strings.ToLower(text), "no results") {
			return
		}
		seen[text] = true
		res.Names = append(res.Names, text)
	}

	for _, m := range h1Pattern.FindAllStringSubmatch(content, -1) {
		add(m[1])
	}
	for _, block := range akaPattern.FindAllStringSubmatch(content, -1) {
		for _, m := range akaItem.FindAllStringSubmatch(block[1], -1) {
			add(m[1])
		}
	}
	if m := agePattern.FindStringSubmatch(content); len(m) > 1 {
		res.Fields["age"] = m[1]
	}

	res.Found = len(res.Names) > 0
	return res
}

var _ source.Source = (*Client)(nil)
