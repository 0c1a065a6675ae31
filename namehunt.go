// Package namehunt identifies the likely owner of a phone number by
// querying multiple hunting sources and correlating the names they
// return.
//
// Basic usage:
//
//	hunter, err := namehunt.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := hunter.Hunt(ctx, namehunt.Query{Phone: "+14155552671"})
//	fmt.Println(report.PrimaryNames, report.BestConfidence)
//
// A hunt never fails: sources that error or time out degrade to "not
// found" and the report carries whatever the remaining sources agreed
// on. Three strategies are available; Hunt uses the default escalating
// strategy and HuntParallel / HuntSequential expose the others.
package namehunt

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/namehunt/fastpeople"
	"github.com/codeGROOVE-dev/namehunt/httpcache"
	"github.com/codeGROOVE-dev/namehunt/identity"
	"github.com/codeGROOVE-dev/namehunt/numverify"
	"github.com/codeGROOVE-dev/namehunt/phone"
	"github.com/codeGROOVE-dev/namehunt/source"
	"github.com/codeGROOVE-dev/namehunt/truepeoplesearch"
	"github.com/codeGROOVE-dev/namehunt/twilio"
	"github.com/codeGROOVE-dev/namehunt/whitepages"
)

type (
	// Query re-exports source.Query for convenience.
	Query = source.Query
	// Hints re-exports source.Hints for convenience.
	Hints = source.Hints
)

// escalationConfidence is the parallel-pass confidence below which the
// default strategy escalates to the sequential pass.
const escalationConfidence = 0.8

// Report is the terminal output of one hunt.
type Report struct {
	identity.Result

	Strategy          string                   `json:"strategy"`
	SourceSummary     map[string]source.Result `json:"source_summary"`
	MethodsAttempted  []string                 `json:"methods_attempted"`
	MethodsSuccessful []string                 `json:"methods_successful"`
	ExecutionTime     float64                  `json:"execution_time"`
	EarlyTermination  bool                     `json:"early_termination,omitempty"`
	TerminationReason string                   `json:"termination_reason,omitempty"`
}

// Option configures a Hunter.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	cache       httpcache.Cacher
	sources     []source.Source
	weights     map[string]float64
	thresholds  map[string]float64
	correlation identity.Config
	timeout     time.Duration
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCache sets the HTTP response cache shared by the default sources.
func WithCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithSources replaces the default source set.
func WithSources(sources ...source.Source) Option {
	return func(c *config) { c.sources = sources }
}

// WithWeights overrides the static source-weight table.
func WithWeights(weights map[string]float64) Option {
	return func(c *config) { c.weights = weights }
}

// WithThresholds overrides the sequential early-termination thresholds.
func WithThresholds(thresholds map[string]float64) Option {
	return func(c *config) { c.thresholds = thresholds }
}

// WithTimeout sets the outer wall-clock deadline for a hunt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) { c.timeout = timeout }
}

// WithMaxSourceTypes sets the source count treated as full consensus.
func WithMaxSourceTypes(n int) Option {
	return func(c *config) { c.correlation.MaxSourceTypes = n }
}

// Hunter runs hunts against a fixed set of sources.
type Hunter struct {
	logger      *slog.Logger
	sources     []source.Source
	weights     map[string]float64
	thresholds  map[string]float64
	correlation identity.Config
	timeout     time.Duration
}

// New creates a Hunter. Without WithSources it wires the full default
// set: Twilio, WhitePages, TruePeopleSearch, FastPeopleSearch, and
// NumVerify (validation only).
func New(ctx context.Context, opts ...Option) (*Hunter, error) {
	cfg := &config{
		logger:      slog.Default(),
		weights:     source.Weights(),
		thresholds:  source.SequenceThresholds(),
		correlation: identity.DefaultConfig(),
		timeout:     120 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.correlation.Weights = cfg.weights

	if cfg.sources == nil {
		var err error
		cfg.sources, err = defaultSources(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Hunter{
		logger:      cfg.logger,
		sources:     cfg.sources,
		weights:     cfg.weights,
		thresholds:  cfg.thresholds,
		correlation: cfg.correlation,
		timeout:     cfg.timeout,
	}, nil
}

func defaultSources(ctx context.Context, cfg *config) ([]source.Source, error) {
	tw, err := twilio.New(ctx, twilio.WithLogger(cfg.logger), twilio.WithCache(cfg.cache))
	if err != nil {
		return nil, err
	}
	wp, err := whitepages.New(ctx, whitepages.WithLogger(cfg.logger), whitepages.WithCache(cfg.cache))
	if err != nil {
		return nil, err
	}
	tps, err := truepeoplesearch.New(ctx, truepeoplesearch.WithLogger(cfg.logger), truepeoplesearch.WithCache(cfg.cache))
	if err != nil {
		return nil, err
	}
	fp, err := fastpeople.New(ctx, fastpeople.WithLogger(cfg.logger), fastpeople.WithCache(cfg.cache))
	if err != nil {
		return nil, err
	}
	nv, err := numverify.New(ctx, numverify.WithLogger(cfg.logger), numverify.WithCache(cfg.cache))
	if err != nil {
		return nil, err
	}
	return []source.Source{tw, wp, tps, fp, nv}, nil
}

// Hunt runs the default escalating strategy: a parallel pass first,
// then a sequential pass if the parallel pass found nothing or scored
// below the escalation threshold. Returns whichever pass scored higher.
func (h *Hunter) Hunt(ctx context.Context, q Query) Report {
	q = h.normalizeQuery(ctx, q)

	parallel := h.HuntParallel(ctx, q)
	if parallel.Found && parallel.BestConfidence >= escalationConfidence {
		parallel.Strategy = "ultimate"
		return parallel
	}

	h.logger.InfoContext(ctx, "escalating to sequential hunting",
		"found", parallel.Found, "best_confidence", parallel.BestConfidence)

	sequential := h.HuntSequential(ctx, q)
	if sequential.BestConfidence > parallel.BestConfidence {
		sequential.Strategy = "ultimate"
		sequential.ExecutionTime += parallel.ExecutionTime
		return sequential
	}
	parallel.Strategy = "ultimate"
	parallel.ExecutionTime += sequential.ExecutionTime
	return parallel
}

// HuntParallel queries every source concurrently under the shared
// deadline, then correlates whatever completed. Slow sources are
// abandoned at the deadline; their late results are discarded.
func (h *Hunter) HuntParallel(ctx context.Context, q Query) Report {
	q = h.normalizeQuery(ctx, q)
	start := time.Now()

	cctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.logger.InfoContext(ctx, "starting parallel hunt", "phone", q.Phone, "sources", len(h.sources))

	var (
		mu         sync.Mutex
		summary    = make(map[string]source.Result, len(h.sources))
		attempted  []string
		successful []string
		wg         sync.WaitGroup
	)

	for _, s := range h.sources {
		wg.Add(1)
		go func(s source.Source) {
			defer wg.Done()
			res := h.huntOne(cctx, s, q)

			mu.Lock()
			defer mu.Unlock()
			attempted = append(attempted, s.Name())
			summary[s.Name()] = res
			if res.Found {
				successful = append(successful, s.Name())
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-cctx.Done():
		h.logger.WarnContext(ctx, "hunt deadline reached, proceeding with partial results")
	}

	mu.Lock()
	snapshot := maps.Clone(summary)
	report := Report{
		Strategy:          "parallel",
		SourceSummary:     snapshot,
		MethodsAttempted:  append([]string(nil), attempted...),
		MethodsSuccessful: append([]string(nil), successful...),
	}
	mu.Unlock()

	report.Result = identity.Correlate(snapshot, h.correlation)
	report.ExecutionTime = time.Since(start).Seconds()

	h.logger.InfoContext(ctx, "parallel hunt complete",
		"found", report.Found, "best_confidence", report.BestConfidence,
		"elapsed", report.ExecutionTime)
	return report
}

// HuntSequential queries sources one at a time, most reliable first,
// re-correlating after each success. It stops early once the best
// cluster's confidence crosses the just-fired source's threshold,
// saving the slower sources' time and quota.
func (h *Hunter) HuntSequential(ctx context.Context, q Query) Report {
	q = h.normalizeQuery(ctx, q)
	start := time.Now()

	cctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.logger.InfoContext(ctx, "starting sequential hunt", "phone", q.Phone)

	report := Report{
		Strategy:      "sequential",
		SourceSummary: make(map[string]source.Result, len(h.sources)),
	}
	report.Result = identity.Correlate(nil, h.correlation)

	for _, s := range h.orderedByWeight() {
		if cctx.Err() != nil {
			h.logger.WarnContext(ctx, "hunt deadline reached, stopping sequential pass")
			break
		}

		report.MethodsAttempted = append(report.MethodsAttempted, s.Name())
		res := h.huntOne(cctx, s, q)
		report.SourceSummary[s.Name()] = res
		if !res.Found {
			continue
		}
		report.MethodsSuccessful = append(report.MethodsSuccessful, s.Name())

		report.Result = identity.Correlate(report.SourceSummary, h.correlation)

		threshold, ok := h.thresholds[s.Name()]
		if !ok {
			threshold = source.DefaultThreshold
		}
		if report.Found && report.BestConfidence >= threshold {
			report.EarlyTermination = true
			report.TerminationReason = fmt.Sprintf("high confidence from %s (%.2f)", s.Name(), report.BestConfidence)
			h.logger.InfoContext(ctx, "early termination", "reason", report.TerminationReason)
			break
		}
	}

	report.ExecutionTime = time.Since(start).Seconds()
	return report
}

// huntOne invokes one source, converting any error into a not-found
// result. A failing source never aborts the hunt.
func (h *Hunter) huntOne(ctx context.Context, s source.Source, q Query) source.Result {
	res, err := s.Hunt(ctx, q)
	if err != nil {
		h.logger.WarnContext(ctx, "source hunt failed", "source", s.Name(), "error", err)
		return source.Result{Found: false}
	}
	if res.Found {
		h.logger.InfoContext(ctx, "source hunt succeeded", "source", s.Name(), "names", len(res.Names))
	}
	return res
}

// orderedByWeight returns the sources sorted most reliable first, with
// name as the tie-break so runs are deterministic.
func (h *Hunter) orderedByWeight() []source.Source {
	ordered := append([]source.Source(nil), h.sources...)
	sort.SliceStable(ordered, func(i, j int) bool {
		wi, wj := h.weights[ordered[i].Name()], h.weights[ordered[j].Name()]
		if wi != wj {
			return wi > wj
		}
		return ordered[i].Name() < ordered[j].Name()
	})
	return ordered
}

// normalizeQuery canonicalizes the phone number to E.164 when it
// parses. Unparseable input passes through untouched: the hunt still
// runs and simply finds nothing.
func (h *Hunter) normalizeQuery(ctx context.Context, q Query) Query {
	num, err := phone.Parse(q.Phone, "US")
	if err != nil {
		h.logger.WarnContext(ctx, "could not parse phone number", "phone", q.Phone, "error", err)
		return q
	}
	q.Phone = num.E164
	return q
}
