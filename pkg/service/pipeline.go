// Package service orchestrates the full pipeline: trend discovery, topic
// research, content generation, rendering and publishing.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"trendscribe/pkg/content"
	"trendscribe/pkg/domain"
	"trendscribe/pkg/generator"
	"trendscribe/pkg/publisher"
)

// lastRunKey is the settings key holding the last auto-run timestamp
const lastRunKey = "last_run"

// TrendSource discovers trend candidates for a category
type TrendSource interface {
	Fetch(ctx context.Context, category string) ([]domain.TrendItem, error)
}

// ContentGenerator produces article content for a topic
type ContentGenerator interface {
	Generate(ctx context.Context, req generator.Request) (domain.GeneratedContent, error)
}

// ResearchExtractor pulls readable text from a source URL
type ResearchExtractor interface {
	Extract(ctx context.Context, urlStr string) (string, error)
}

// DraftPublisher pushes a rendered draft to the CMS
type DraftPublisher interface {
	Configured() bool
	Publish(ctx context.Context, topic string, c domain.GeneratedContent, body string) (*publisher.Post, error)
}

// DraftStore persists drafts and pipeline settings
type DraftStore interface {
	CreateDraft(ctx context.Context, draft *domain.Draft) error
	UpdateDraftPublished(ctx context.Context, id, postID int64, link string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Config holds per-run pipeline settings, resolved once at call start
type Config struct {
	UseAI        bool
	Research     bool          // extract source text before AI generation
	Publish      bool          // push the draft to the CMS after storing
	AutoInterval time.Duration // min gap between auto runs
}

// Pipeline wires the collaborators into the generate-and-publish flow
type Pipeline struct {
	trends    TrendSource
	generator ContentGenerator
	extractor ResearchExtractor
	publisher DraftPublisher
	store     DraftStore
	config    Config
}

// NewPipeline creates the pipeline. The extractor and publisher may be
// nil-behaving (unconfigured), the corresponding steps are skipped.
func NewPipeline(trends TrendSource, gen ContentGenerator, extractor ResearchExtractor,
	pub DraftPublisher, store DraftStore, cfg Config) *Pipeline {
	if cfg.AutoInterval <= 0 {
		cfg.AutoInterval = 24 * time.Hour
	}
	return &Pipeline{
		trends:    trends,
		generator: gen,
		extractor: extractor,
		publisher: pub,
		store:     store,
		config:    cfg,
	}
}

// Trending returns the current trend candidates for the category
func (p *Pipeline) Trending(ctx context.Context, category string) ([]domain.TrendItem, error) {
	return p.trends.Fetch(ctx, category)
}

// GenerateDraft runs generation for one topic: optional research from the
// source URL, content generation, body rendering and draft persistence.
// With publishing enabled the draft is also pushed to the CMS.
func (p *Pipeline) GenerateDraft(ctx context.Context, topic, category, sourceURL string) (*domain.Draft, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, generator.ErrEmptyTopic
	}

	research := ""
	if p.config.Research && p.config.UseAI && sourceURL != "" && p.extractor != nil {
		text, err := p.extractor.Extract(ctx, sourceURL)
		if err != nil {
			// research is best effort, generation proceeds from the topic alone
			lgr.Printf("[WARN] research extraction failed for %s: %v", sourceURL, err)
		} else {
			research = text
		}
	}

	generated, err := p.generator.Generate(ctx, generator.Request{
		Topic:    topic,
		Category: category,
		Research: research,
		UseAI:    p.config.UseAI,
	})
	if err != nil {
		return nil, fmt.Errorf("generate content for %q: %w", topic, err)
	}

	body := content.BuildBody(generated)
	draft := &domain.Draft{
		Topic:           topic,
		Title:           generated.Title,
		Body:            body,
		Category:        generated.Category,
		Keywords:        generated.Keywords,
		MetaDescription: generated.MetaDescription,
		AIGenerated:     generated.AIGenerated(),
	}
	if err := p.store.CreateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("store draft: %w", err)
	}
	lgr.Printf("[INFO] draft %d stored for topic %q", draft.ID, topic)

	if p.config.Publish && p.publisher != nil && p.publisher.Configured() {
		post, err := p.publisher.Publish(ctx, topic, generated, body)
		if err != nil {
			// the draft is already stored, a publish failure is not fatal
			lgr.Printf("[WARN] publish failed for draft %d: %v", draft.ID, err)
			return draft, nil
		}
		if err := p.store.UpdateDraftPublished(ctx, draft.ID, post.ID, post.Link); err != nil {
			lgr.Printf("[WARN] publish tracking update failed for draft %d: %v", draft.ID, err)
			return draft, nil
		}
		draft.PostID = post.ID
		draft.PostLink = post.Link
	}

	return draft, nil
}

// Run executes one full cycle: discover trends for the category, take the
// top-ranked item as the topic and generate a draft from it.
func (p *Pipeline) Run(ctx context.Context, category string) (*domain.Draft, error) {
	items, err := p.trends.Fetch(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no trend candidates for category %q", category)
	}

	top := items[0]
	cat := top.Category
	if cat == "" {
		cat = category
	}
	lgr.Printf("[INFO] selected topic %q from %s", top.Title, top.Source)
	return p.GenerateDraft(ctx, top.Title, cat, top.URL)
}

// RunIfDue executes one cycle when the configured interval has passed
// since the last run. Returns nil draft when not due yet.
func (p *Pipeline) RunIfDue(ctx context.Context, category string) (*domain.Draft, error) {
	lastRunStr, err := p.store.GetSetting(ctx, lastRunKey)
	if err != nil {
		return nil, fmt.Errorf("read last run: %w", err)
	}

	var lastRun time.Time
	if lastRunStr != "" {
		lastRun, err = time.Parse(time.RFC3339, lastRunStr)
		if err != nil {
			lgr.Printf("[WARN] invalid last run value %q, treating as never run", lastRunStr)
			lastRun = time.Time{}
		}
	}

	now := time.Now()
	if !Due(lastRun, p.config.AutoInterval, now) {
		lgr.Printf("[DEBUG] auto run not due, next at %s", NextRun(lastRun, p.config.AutoInterval).Format(time.RFC3339))
		return nil, nil
	}

	draft, err := p.Run(ctx, category)
	if err != nil {
		return nil, err
	}
	if err := p.store.SetSetting(ctx, lastRunKey, now.UTC().Format(time.RFC3339)); err != nil {
		lgr.Printf("[WARN] last run update failed: %v", err)
	}
	return draft, nil
}

// Due reports whether an auto run should happen. A zero lastRun means the
// pipeline never ran and is always due.
func Due(lastRun time.Time, interval time.Duration, now time.Time) bool {
	if lastRun.IsZero() {
		return true
	}
	return !now.Before(lastRun.Add(interval))
}

// NextRun returns the earliest time the next auto run may happen
func NextRun(lastRun time.Time, interval time.Duration) time.Time {
	if lastRun.IsZero() {
		return time.Time{}
	}
	return lastRun.Add(interval)
}
