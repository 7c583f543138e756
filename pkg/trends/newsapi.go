package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"trendscribe/pkg/domain"
)

// DefaultNewsAPIBase is the stock newsapi.org endpoint
const DefaultNewsAPIBase = "https://newsapi.org/v2/"

// maxQueryKeywords caps how many keywords go into one search query
const maxQueryKeywords = 5

// NewsAPIClient talks to a NewsAPI-compatible search endpoint
type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	userAgent  string
	client     *http.Client
	classifier Classifier
	strip      *bluemonday.Policy
}

// Classifier detects a category slug for free text
type Classifier interface {
	Detect(text string) string
	KeywordsFor(slug string) []string
}

// NewNewsAPIClient creates a search client. An empty baseURL falls back to
// the stock endpoint.
func NewNewsAPIClient(apiKey, baseURL, userAgent string, timeout time.Duration, classifier Classifier) *NewsAPIClient {
	if baseURL == "" {
		baseURL = DefaultNewsAPIBase
	}
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/",
		userAgent:  userAgent,
		client:     &http.Client{Timeout: timeout},
		classifier: classifier,
		strip:      bluemonday.StrictPolicy(),
	}
}

// Configured reports whether an API key is set
func (c *NewsAPIClient) Configured() bool { return c.apiKey != "" }

// newsAPIResponse is the provider's JSON shape
type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search queries the API with the category's keywords (all categories'
// keywords when category is empty), newest first, page size 20.
func (c *NewsAPIClient) Search(ctx context.Context, category string) ([]domain.TrendItem, error) {
	if !c.Configured() {
		return nil, &ProviderError{Kind: ErrUnauthorized, Message: "search API key is not configured"}
	}

	keywords := c.classifier.KeywordsFor(category)
	if len(keywords) > maxQueryKeywords {
		keywords = keywords[:maxQueryKeywords]
	}
	query := strings.Join(keywords, " OR ")

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "20")
	params.Set("apiKey", c.apiKey)

	data, err := c.get(ctx, "everything", params)
	if err != nil {
		return nil, err
	}

	items := make([]domain.TrendItem, 0, len(data.Articles))
	for _, article := range data.Articles {
		title := html.UnescapeString(strings.TrimSpace(c.strip.Sanitize(article.Title)))
		if title == "" {
			continue
		}

		itemCategory := category
		if itemCategory == "" {
			itemCategory = c.classifier.Detect(article.Title + " " + article.Description)
		}

		items = append(items, domain.TrendItem{
			Title:       title,
			Description: html.UnescapeString(strings.TrimSpace(c.strip.Sanitize(article.Description))),
			Source:      domain.SourceSearchAPI,
			SourceName:  strings.TrimSpace(article.Source.Name),
			URL:         validURL(article.URL),
			PublishedAt: article.PublishedAt,
			Category:    itemCategory,
		})
	}

	return items, nil
}

// TestConnection probes the API with a one-result query
func (c *NewsAPIClient) TestConnection(ctx context.Context) error {
	if !c.Configured() {
		return &ProviderError{Kind: ErrUnauthorized, Message: "search API key is not configured"}
	}

	params := url.Values{}
	params.Set("q", "technology")
	params.Set("pageSize", "1")
	params.Set("apiKey", c.apiKey)

	_, err := c.get(ctx, "everything", params)
	return err
}

// get performs the request and maps provider status codes to error kinds
func (c *NewsAPIClient) get(ctx context.Context, endpoint string, params url.Values) (*newsAPIResponse, error) {
	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search API response: %w", err)
	}

	var data newsAPIResponse
	if unmarshalErr := json.Unmarshal(body, &data); unmarshalErr != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("decode search API response: %w", unmarshalErr)
	}

	if resp.StatusCode != http.StatusOK || data.Status == "error" {
		message := data.Message
		if message == "" {
			message = fmt.Sprintf("search API request failed with status %d", resp.StatusCode)
		}
		return nil, &ProviderError{Kind: kindForStatus(resp.StatusCode), Message: message}
	}

	return &data, nil
}

func kindForStatus(status int) ProviderErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUpgradeRequired:
		return ErrUpgradeRequired
	default:
		return ErrGeneric
	}
}

// validURL returns the value only when it parses as an absolute URL
func validURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.String()
}
