// Package trends discovers trending topic candidates from configured RSS
// feeds, a news-search API and a trends feed, then merges, deduplicates
// and ranks them.
package trends

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"trendscribe/pkg/domain"
)

const (
	// maxItems caps the aggregated result after dedup
	maxItems = 50
	// dedupThreshold is the share of the normalized title length that the
	// character overlap must exceed to count as a duplicate
	dedupThreshold = 0.7
)

// FeedFetcher fetches and parses one RSS/Atom feed
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string, limit int, category string) ([]domain.TrendItem, error)
}

// SearchSource queries the news-search API
type SearchSource interface {
	Configured() bool
	Search(ctx context.Context, category string) ([]domain.TrendItem, error)
}

// TrendsSource fetches the trends RSS feed
type TrendsSource interface {
	Fetch(ctx context.Context, category string) ([]domain.TrendItem, error)
}

// AggregatorConfig holds aggregation parameters
type AggregatorConfig struct {
	FeedURLs      []string
	FeedLimit     int // items taken per feed
	MaxConcurrent int // parallel feed fetches
}

// Aggregator merges trend items from all sources. Per-source failures are
// logged and skipped, the call fails only when every attempted source
// failed.
type Aggregator struct {
	feeds  FeedFetcher
	search SearchSource
	trends TrendsSource
	config AggregatorConfig
}

// NewAggregator creates an aggregator over the three source kinds
func NewAggregator(feeds FeedFetcher, search SearchSource, trends TrendsSource, cfg AggregatorConfig) *Aggregator {
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = 5
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 5
	}
	return &Aggregator{feeds: feeds, search: search, trends: trends, config: cfg}
}

// Fetch collects trend items for the optional category slug. Sources merge
// in fixed priority order (custom feeds, search API, trends feed) so that
// duplicate resolution is deterministic, then titles are deduplicated,
// sorted newest first and capped.
func (a *Aggregator) Fetch(ctx context.Context, category string) ([]domain.TrendItem, error) {
	var attempted, succeeded int
	var errs []error
	var merged []domain.TrendItem

	// custom feeds first, fetched concurrently with per-feed results kept
	// in configuration order
	feedURLs := a.validFeedURLs()
	if len(feedURLs) > 0 {
		attempted += len(feedURLs)
		results := make([][]domain.TrendItem, len(feedURLs))
		feedErrs := make([]error, len(feedURLs))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.config.MaxConcurrent)
		for i, feedURL := range feedURLs {
			g.Go(func() error {
				items, err := a.feeds.Fetch(gctx, feedURL, a.config.FeedLimit, category)
				if err != nil {
					feedErrs[i] = err
					return nil // a failed feed never aborts the others
				}
				results[i] = items
				return nil
			})
		}
		_ = g.Wait()

		for i := range feedURLs {
			if feedErrs[i] != nil {
				lgr.Printf("[WARN] feed %s skipped: %v", feedURLs[i], feedErrs[i])
				errs = append(errs, fmt.Errorf("feed %s: %w", feedURLs[i], feedErrs[i]))
				continue
			}
			succeeded++
			merged = append(merged, results[i]...)
		}
	}

	// search API second
	if a.search.Configured() {
		attempted++
		items, err := a.search.Search(ctx, category)
		if err != nil {
			lgr.Printf("[WARN] search API skipped: %v", err)
			errs = append(errs, err)
		} else {
			succeeded++
			merged = append(merged, items...)
		}
	}

	// trends feed last
	attempted++
	items, err := a.trends.Fetch(ctx, category)
	if err != nil {
		lgr.Printf("[WARN] trends feed skipped: %v", err)
		errs = append(errs, err)
	} else {
		succeeded++
		merged = append(merged, items...)
	}

	if attempted > 0 && succeeded == 0 {
		return nil, fmt.Errorf("all trend sources failed: %w", errors.Join(errs...))
	}

	return Process(merged), nil
}

// Process deduplicates by title similarity, sorts newest first and caps
// the result. Exposed separately because it is a pure, idempotent
// transform of the merged list.
func Process(items []domain.TrendItem) []domain.TrendItem {
	unique := make([]domain.TrendItem, 0, len(items))
	seen := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizeTitle(item.Title)
		if isDuplicate(normalized, seen, dedupThreshold) {
			continue
		}
		seen = append(seen, normalized)
		unique = append(unique, item)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return parsePublished(unique[i].PublishedAt).After(parsePublished(unique[j].PublishedAt))
	})

	if len(unique) > maxItems {
		unique = unique[:maxItems]
	}
	return unique
}

// publishedLayouts covers the date shapes the three sources produce
var publishedLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	time.RFC1123Z,
	time.RFC1123,
}

// parsePublished parses a provider timestamp leniently, unparsable or
// missing dates sort as epoch 0 (oldest)
func parsePublished(value string) time.Time {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Unix(0, 0)
}

// validFeedURLs filters the configured feed list down to absolute URLs
func (a *Aggregator) validFeedURLs() []string {
	var out []string
	for _, raw := range a.config.FeedURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			lgr.Printf("[WARN] invalid feed URL ignored: %q", raw)
			continue
		}
		out = append(out, raw)
	}
	return out
}
