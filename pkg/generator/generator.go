// Package generator synthesizes draft articles for a topic, either through
// an OpenAI-compatible completion call or a deterministic template
// fallback.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"trendscribe/pkg/domain"
)

// ErrEmptyTopic rejects generation requests without a topic
var ErrEmptyTopic = errors.New("topic is required")

// ErrEmptyContent signals a completion that came back without content
var ErrEmptyContent = errors.New("no content generated")

// ProviderError is a failed completion call carrying the provider's own
// human-readable message
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string { return "ai provider error: " + e.Message }

// researchLimit caps how much extracted source text goes into the prompt
const researchLimit = 1500

// Config holds the completion provider settings
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string // optional OpenAI-compatible base URL
	Temperature float64
	Timeout     time.Duration
}

// Request describes one content-generation call
type Request struct {
	Topic    string
	Category string
	Research string // optional extracted source text to ground the article
	UseAI    bool
}

// Service generates article content. The AI path never falls back to the
// template silently: an AI failure propagates so the caller can decide.
type Service struct {
	client   *openai.Client
	config   Config
	settings PromptSettings
}

// New creates a generation service
func New(cfg Config, settings PromptSettings) *Service {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	return &Service{
		client:   openai.NewClientWithConfig(clientConfig),
		config:   cfg,
		settings: settings,
	}
}

// AIConfigured reports whether the AI path can be used
func (s *Service) AIConfigured() bool { return s.config.APIKey != "" }

// Generate produces content for the request. AI is used when requested
// and configured, otherwise the template fallback.
func (s *Service) Generate(ctx context.Context, req Request) (domain.GeneratedContent, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return domain.GeneratedContent{}, ErrEmptyTopic
	}

	if req.UseAI && s.AIConfigured() {
		return s.generateAI(ctx, req)
	}

	if req.UseAI {
		lgr.Printf("[WARN] AI generation requested but no API key configured, using template for %q", req.Topic)
	}
	return GenerateTemplate(req.Topic, req.Category), nil
}

func (s *Service) generateAI(ctx context.Context, req Request) (domain.GeneratedContent, error) {
	userPrompt := BuildUserPrompt(req.Topic, req.Category, s.settings)
	if research := strings.TrimSpace(req.Research); research != "" {
		if len(research) > researchLimit {
			research = research[:researchLimit] + "..."
		}
		userPrompt += "\n\nBACKGROUND RESEARCH (extracted from the topic's source article, use for factual grounding):\n" + research
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   MaxTokens(s.settings.ContentLength),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(s.settings)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return domain.GeneratedContent{}, &ProviderError{Message: apiErr.Message}
		}
		return domain.GeneratedContent{}, fmt.Errorf("ai request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return domain.GeneratedContent{}, ErrEmptyContent
	}

	content := ParseAIResponse(resp.Choices[0].Message.Content, req.Topic, req.Category)
	lgr.Printf("[INFO] generated ai content for %q: %d chars, %d keywords", req.Topic, len(content.Markdown), len(content.Keywords))
	return content, nil
}
