package trends

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"trendscribe/pkg/domain"
)

// DefaultTrendsFeedURL is the daily trending-searches feed
const DefaultTrendsFeedURL = "https://trends.google.com/trends/trendingsearches/daily/rss?geo=US"

// TrendsFeedClient fetches the unparameterized trends RSS feed and filters
// it client-side, the feed itself can't be queried by topic.
type TrendsFeedClient struct {
	feedURL    string
	userAgent  string
	client     *http.Client
	classifier Classifier
	strip      *bluemonday.Policy
}

// NewTrendsFeedClient creates a trends feed client. An empty feedURL falls
// back to the default daily feed.
func NewTrendsFeedClient(feedURL, userAgent string, timeout time.Duration, classifier Classifier) *TrendsFeedClient {
	if feedURL == "" {
		feedURL = DefaultTrendsFeedURL
	}
	return &TrendsFeedClient{
		feedURL:    feedURL,
		userAgent:  userAgent,
		client:     &http.Client{Timeout: timeout},
		classifier: classifier,
		strip:      bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves trending searches. When a category is requested, titles
// are matched against the category keywords by substring, non-matching
// entries are dropped.
func (c *TrendsFeedClient) Fetch(ctx context.Context, category string) ([]domain.TrendItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends feed status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read trends feed: %w", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}

	var keywords []string
	if category != "" {
		keywords = c.classifier.KeywordsFor(category)
	}

	var items []domain.TrendItem
	for _, entry := range parsed.Items {
		title := html.UnescapeString(strings.TrimSpace(c.strip.Sanitize(entry.Title)))
		if title == "" {
			continue
		}

		if category != "" && !matchesAny(title, keywords) {
			continue
		}

		itemCategory := category
		if itemCategory == "" {
			itemCategory = c.classifier.Detect(title)
		}

		items = append(items, domain.TrendItem{
			Title:       title,
			Description: html.UnescapeString(strings.TrimSpace(c.strip.Sanitize(entry.Description))),
			Source:      domain.SourceTrendsFeed,
			SourceName:  "Google Trends",
			URL:         validURL(entry.Link),
			PublishedAt: entry.Published,
			Category:    itemCategory,
		})
	}

	return items, nil
}

// matchesAny reports whether any keyword occurs in the title, both sides
// compared case-insensitive
func matchesAny(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
