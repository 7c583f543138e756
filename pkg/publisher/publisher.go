// Package publisher posts generated drafts to a WordPress-style CMS over
// its REST API.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"trendscribe/pkg/classify"
	"trendscribe/pkg/domain"
)

// Config holds CMS connection settings
type Config struct {
	BaseURL  string        // site root, e.g. https://blog.example.com
	Username string        // application-password user
	Password string        // application password
	Timeout  time.Duration // per-request timeout
}

// Client publishes drafts to the CMS. Posts are always created in draft
// status, never published directly.
type Client struct {
	baseURL    string
	username   string
	password   string
	client     *http.Client
	classifier *classify.Classifier
}

// Post is the created draft as reported by the CMS
type Post struct {
	ID     int64  `json:"id"`
	Link   string `json:"link"`
	Status string `json:"status"`
}

// New creates a publisher client. The classifier resolves category slugs
// back to their configured display names.
func New(cfg Config, classifier *classify.Classifier) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		client:     &http.Client{Timeout: timeout},
		classifier: classifier,
	}
}

// Configured reports whether the client has enough settings to publish
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.username != "" && c.password != ""
}

type postPayload struct {
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	Status     string         `json:"status"`
	Categories []int64        `json:"categories,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// Publish creates a draft post with the rendered body, assigns the
// content's category (creating it on the CMS when missing) and attaches
// SEO and tracking meta. A category failure downgrades to a warning, the
// draft is still created.
func (c *Client) Publish(ctx context.Context, topic string, content domain.GeneratedContent, body string) (*Post, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("publisher not configured")
	}

	payload := postPayload{
		Title:   content.Title,
		Content: body,
		Status:  "draft",
		Meta: map[string]any{
			"autoblog_generated": true,
			"autoblog_topic":     topic,
			"autoblog_ai":        content.AIGenerated(),
		},
	}
	if kw := content.FocusKeyword(); kw != "" {
		payload.Meta["rank_math_focus_keyword"] = kw
	}
	if content.MetaDescription != "" {
		payload.Meta["rank_math_description"] = content.MetaDescription
	}

	if content.Category != "" {
		catID, err := c.ensureCategory(ctx, content.Category)
		if err != nil {
			lgr.Printf("[WARN] category %q not assigned: %v", content.Category, err)
		} else {
			payload.Categories = []int64{catID}
		}
	}

	var post Post
	if err := c.do(ctx, http.MethodPost, "/wp-json/wp/v2/posts", payload, &post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	lgr.Printf("[INFO] draft created: id=%d title=%q", post.ID, content.Title)
	return &post, nil
}

type category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ensureCategory finds the CMS category matching the given slug or
// creates it. The configured category name wins over a title-cased slug.
func (c *Client) ensureCategory(ctx context.Context, slug string) (int64, error) {
	name := c.classifier.NameFor(slug)

	var found []category
	path := "/wp-json/wp/v2/categories?search=" + strings.ReplaceAll(name, " ", "+")
	if err := c.do(ctx, http.MethodGet, path, nil, &found); err != nil {
		return 0, fmt.Errorf("search category: %w", err)
	}
	for _, cat := range found {
		if strings.EqualFold(cat.Name, name) || cat.Slug == slug {
			return cat.ID, nil
		}
	}

	var created category
	if err := c.do(ctx, http.MethodPost, "/wp-json/wp/v2/categories", map[string]string{"name": name}, &created); err != nil {
		return 0, fmt.Errorf("create category %q: %w", name, err)
	}
	lgr.Printf("[DEBUG] category created: id=%d name=%q", created.ID, created.Name)
	return created.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
