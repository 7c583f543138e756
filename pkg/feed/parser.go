// Package feed fetches and parses RSS/Atom feeds into trend items.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"trendscribe/pkg/domain"
)

// sentinel errors for per-feed failures, callers skip the feed and move on
var (
	ErrEmptyFeed     = errors.New("empty feed body")
	ErrInvalidFormat = errors.New("invalid feed format")
)

// descriptionWords is the word cap applied to item descriptions
const descriptionWords = 30

// Classifier detects a category slug for free text
type Classifier interface {
	Detect(text string) string
}

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client     *http.Client
	userAgent  string
	classifier Classifier
	strip      *bluemonday.Policy
}

// NewParser creates a feed parser with the given fetch timeout
func NewParser(timeout time.Duration, userAgent string, classifier Classifier) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:  userAgent,
		classifier: classifier,
		strip:      bluemonday.StrictPolicy(),
	}
}

// Fetch retrieves a feed URL and parses up to limit items. An optional
// category slug drops items classified differently.
func (p *Parser) Fetch(ctx context.Context, feedURL string, limit int, category string) ([]domain.TrendItem, error) {
	body, err := p.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	return p.Parse(body, feedURL, limit, category)
}

// Parse converts raw feed bytes into trend items. It handles both RSS 2.0
// and Atom shapes and never fails on a single bad item, only on an empty
// body or unparsable XML.
func (p *Parser) Parse(body []byte, feedURL string, limit int, category string) ([]domain.TrendItem, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyFeed
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}

	sourceName := sourceNameFromURL(feedURL)

	items := make([]domain.TrendItem, 0, limit)
	for _, item := range parsed.Items {
		if len(items) >= limit {
			break
		}

		title := html.UnescapeString(strings.TrimSpace(p.strip.Sanitize(item.Title)))
		if title == "" {
			continue
		}

		description := p.itemDescription(item)
		detected := p.classifier.Detect(title + " " + description)
		if category != "" && detected != category {
			continue
		}

		items = append(items, domain.TrendItem{
			Title:       title,
			Description: description,
			Source:      domain.SourceRSSFeed,
			SourceName:  sourceName,
			URL:         validLink(item.Link),
			PublishedAt: publishedDate(item),
			Category:    detected,
		})
	}

	return items, nil
}

// itemDescription picks description, then content, strips markup and
// truncates to the word cap. gofeed maps Atom <summary> to Description.
func (p *Parser) itemDescription(item *gofeed.Item) string {
	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	text := html.UnescapeString(p.strip.Sanitize(raw))
	return TrimWords(text, descriptionWords)
}

// TrimWords truncates text to at most n words, appending "..." when cut
func TrimWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}

// publishedDate normalizes the item date to YYYY-MM-DD, empty when the
// provider timestamp can't be parsed
func publishedDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format("2006-01-02")
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.Format("2006-01-02")
	}
	return ""
}

// validLink returns the link only when it is an absolute URL
func validLink(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.String()
}

// sourceNameFromURL derives a display name from the feed host
func sourceNameFromURL(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return "Custom Feed"
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func (p *Parser) fetch(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
