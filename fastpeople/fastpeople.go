// Package fastpeople hunts owner names by scraping FastPeopleSearch
// reverse phone result pages.
package fastpeople

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

const sourceTag = "fastpeople"

// Client scrapes FastPeopleSearch.
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

// New creates a FastPeopleSearch client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		logger:  slog.Default(),
		baseURL: "https://www.fastpeoplesearch.com",
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

// Hunt fetches the reverse phone result page and extracts candidate
// owner names.
func (c *Client) Hunt(ctx context.Context, q source.Query) (source.Result, error) {
	num, err := phone.Parse(q.Phone, "US")
	if err != nil {
		return source.Result{}, err
	}

	searchURL := fmt.Sprintf("%s/name/%s", c.baseURL, url.PathEscape(num.Dashed()))
	c.logger.InfoContext(ctx, "fastpeoplesearch scrape", "url", searchURL)

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

	names := parseHTML(string(body))
	if len(names) > 0 {
		c.logger.InfoContext(ctx, "fastpeoplesearch names found", "count", len(names))
	}

	return source.Result{
		Found: len(names) > 0,
		Names: names,
	}, nil
}

// Result-card patterns observed on FastPeopleSearch pages. The site
// reshuffles its markup periodically; parsing is best-effort and the
// correlation layer filters the junk these patterns let through.
var (
	nameLinkPattern = regexp.MustCompile(`<a[^>]+class="[^"]*(?:name-link|result-name|person-name)[^"]*"[^>]*>\s*([^<]{3,80}?)\s*</a>`)
	cardPattern     = regexp.MustCompile(`<h2[^>]*class="[^"]*card-title[^"]*"[^>]*>\s*([^<]{3,80}?)\s*</h2>`)
	dataNamePattern = regexp.MustCompile(`data-name="([^"]{3,80})"`)
	relatedPattern  = regexp.MustCompile(`(?is)<(?:div|section)[^>]+class="[^"]*(?:related-names|aka)[^"]*"[^>]*>(.*?)</(?:div|section)>`)
	innerTextItem   = regexp.MustCompile(`>\s*([^<>]{3,80}?)\s*<`)
)

func parseHTML(content string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(raw string) {
		text := strings.TrimSpace(html.UnescapeString(raw))
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		names = append(names, text)
	}

	for _, pattern := range []*regexp.Regexp{nameLinkPattern, cardPattern, dataNamePattern} {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			add(m[1])
		}
	}

	// Related/AKA blocks list name variants as bare text nodes.
	for _, block := range relatedPattern.FindAllStringSubmatch(content, -1) {
		for _, m := range innerTextItem.FindAllStringSubmatch(block[1], -1) {
			add(m[1])
		}
	}

	return names
}

var _ source.Source = (*Client)(nil)
