// Command namehunt identifies the likely owner of a phone number.
//
// Usage:
//
//	namehunt +14155552671
//	namehunt -strategy sequential -last Lindley 415-555-2671
//
// Twilio, WhitePages, and NumVerify require credentials in TWILIO_SID,
// TWILIO_AUTH_TOKEN, WHITEPAGES_API_KEY, and NUMVERIFY_API_KEY; sources
// without credentials are skipped gracefully.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/codeGROOVE-dev/namehunt"
	"github.com/codeGROOVE-dev/namehunt/httpcache"
	"github.com/codeGROOVE-dev/namehunt/source"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	verbose := flag.Bool("v", false, "verbose logging (same as -debug)")
	strategy := flag.String("strategy", "ultimate", "hunting strategy: parallel, sequential, or ultimate")
	timeout := flag.Duration("timeout", 120*time.Second, "outer deadline for the whole hunt")
	weightsFile := flag.String("weights", "", "YAML file overriding source weights and thresholds")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching (enabled by default)")
	cacheTTL := flag.Duration("cache-ttl", 7*24*time.Hour, "cache time-to-live")
	firstName := flag.String("first", "", "hint: first name")
	lastName := flag.String("last", "", "hint: last name")
	city := flag.String("city", "", "hint: city")
	state := flag.String("state", "", "hint: state")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: namehunt [options] <phone-number>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nSources:")
		fmt.Fprintln(os.Stderr, "  - Twilio Lookup (TWILIO_SID, TWILIO_AUTH_TOKEN)")
		fmt.Fprintln(os.Stderr, "  - WhitePages Pro (WHITEPAGES_API_KEY)")
		fmt.Fprintln(os.Stderr, "  - TruePeopleSearch (no key)")
		fmt.Fprintln(os.Stderr, "  - FastPeopleSearch (no key)")
		fmt.Fprintln(os.Stderr, "  - NumVerify, validation only (NUMVERIFY_API_KEY)")
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug || *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	opts := []namehunt.Option{
		namehunt.WithLogger(logger),
		namehunt.WithTimeout(*timeout),
	}

	if !*noCache {
		cache, err := httpcache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			opts = append(opts, namehunt.WithCache(cache))
		}
	}

	if *weightsFile != "" {
		wf, err := source.LoadWeights(*weightsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
		}
		opts = append(opts, namehunt.WithWeights(wf.Weights), namehunt.WithThresholds(wf.Thresholds))
		if wf.MaxSourceTypes > 0 {
			opts = append(opts, namehunt.WithMaxSourceTypes(wf.MaxSourceTypes))
		}
	}

	ctx := context.Background()

	hunter, err := namehunt.New(ctx, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	q := namehunt.Query{
		Phone: flag.Arg(0),
		Hints: namehunt.Hints{
			FirstName: *firstName,
			LastName:  *lastName,
			City:      *city,
			State:     *state,
		},
	}

	var report namehunt.Report
	switch *strategy {
	case "parallel":
		report = hunter.HuntParallel(ctx, q)
	case "sequential":
		report = hunter.HuntSequential(ctx, q)
	case "ultimate":
		report = hunter.Hunt(ctx, q)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", *strategy)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}
