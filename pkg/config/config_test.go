package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
sources:
  feeds:
    - https://techcrunch.com/feed/
    - https://www.theverge.com/rss/index.xml
  feed_limit: 3
categories:
  - SEO
  - Web Development
llm:
  api_key: test-key
  model: gpt-4o
content:
  use_ai: true
  writing_style: conversational
  content_length: long
  include_examples: true
publish:
  enabled: true
  base_url: https://blog.example.com
  username: bot
  password: secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cfg.Sources.Feeds, 2)
	assert.Equal(t, 3, cfg.Sources.FeedLimit)
	assert.Equal(t, []string{"SEO", "Web Development"}, cfg.Categories)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.True(t, cfg.Content.UseAI)
	assert.Equal(t, "conversational", cfg.Content.WritingStyle)
	assert.True(t, cfg.Content.IncludeExamples)
	assert.False(t, cfg.Content.IncludeStats)
	assert.Equal(t, "https://blog.example.com", cfg.Publish.BaseURL)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "categories:\n  - Tech\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Sources.FeedLimit)
	assert.Equal(t, 15*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, "Trendscribe/1.0", cfg.Sources.UserAgent)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "professional", cfg.Content.WritingStyle)
	assert.Equal(t, "medium", cfg.Content.ContentLength)
	assert.Equal(t, "file:trendscribe.db?cache=shared&mode=rwc", cfg.Database.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Auto.Interval)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_NEWSAPI_KEY", "expanded-secret")

	cfg, err := Load(writeConfig(t, "newsapi:\n  api_key: ${TEST_NEWSAPI_KEY}\n"))
	require.NoError(t, err)
	assert.Equal(t, "expanded-secret", cfg.NewsAPI.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "ai without key",
			content: "content:\n  use_ai: true\n",
			errMsg:  "llm.api_key is required",
		},
		{
			name:    "bad writing style",
			content: "content:\n  writing_style: sarcastic\n",
			errMsg:  "writing_style",
		},
		{
			name:    "bad content length",
			content: "content:\n  content_length: epic\n",
			errMsg:  "content_length",
		},
		{
			name:    "bad temperature",
			content: "llm:\n  temperature: 3.5\n",
			errMsg:  "temperature",
		},
		{
			name:    "publish without url",
			content: "publish:\n  enabled: true\n",
			errMsg:  "publish.base_url",
		},
		{
			name:    "publish without credentials",
			content: "publish:\n  enabled: true\n  base_url: https://x\n",
			errMsg:  "publish.username",
		},
		{
			name:    "invalid yaml",
			content: "sources: [broken",
			errMsg:  "parse config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.NotNil(t, schema.Definitions["Config"])
}
