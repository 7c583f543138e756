package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPrompt(t *testing.T) {
	t.Run("style selection", func(t *testing.T) {
		prompt := BuildSystemPrompt(PromptSettings{WritingStyle: "news"})
		assert.Contains(t, prompt, "journalistic news style")
	})

	t.Run("unknown style defaults to professional", func(t *testing.T) {
		prompt := BuildSystemPrompt(PromptSettings{WritingStyle: "pirate"})
		assert.Contains(t, prompt, "professional, authoritative tone")
	})

	t.Run("optional sections", func(t *testing.T) {
		prompt := BuildSystemPrompt(PromptSettings{
			WritingStyle:   "casual",
			BrandVoice:     "quirky but precise",
			TargetAudience: "junior developers",
		})
		assert.Contains(t, prompt, "BRAND VOICE & PERSONALITY:\nquirky but precise")
		assert.Contains(t, prompt, "TARGET AUDIENCE:\njunior developers")

		bare := BuildSystemPrompt(PromptSettings{WritingStyle: "casual"})
		assert.NotContains(t, bare, "BRAND VOICE")
		assert.NotContains(t, bare, "TARGET AUDIENCE")
	})

	t.Run("heading convention always present", func(t *testing.T) {
		prompt := BuildSystemPrompt(PromptSettings{})
		assert.Contains(t, prompt, "Use markdown formatting")
		assert.Contains(t, prompt, "## for main section headings")
		assert.Contains(t, prompt, "### for subsections")
	})
}

func TestBuildUserPrompt_Numbering(t *testing.T) {
	tests := []struct {
		name     string
		settings PromptSettings
		want     []string
		notWant  []string
	}{
		{
			name:     "no flags",
			settings: PromptSettings{},
			want:     []string{"1. Create", "2. Write", "3. Cover", "4. Provide"},
			notWant:  []string{"5."},
		},
		{
			name:     "all flags",
			settings: PromptSettings{IncludeExamples: true, IncludeStats: true, IncludeCTA: true},
			want:     []string{"5. Include practical examples", "6. Include relevant statistics", "7. End with a call-to-action"},
		},
		{
			name:     "only cta renumbers to five",
			settings: PromptSettings{IncludeCTA: true},
			want:     []string{"5. End with a call-to-action"},
			notWant:  []string{"6.", "7."},
		},
		{
			name:     "stats and cta stay sequential",
			settings: PromptSettings{IncludeStats: true, IncludeCTA: true},
			want:     []string{"5. Include relevant statistics", "6. End with a call-to-action"},
			notWant:  []string{"7."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildUserPrompt("Serverless Go", "web-development", tt.settings)
			for _, w := range tt.want {
				assert.Contains(t, prompt, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, prompt, nw)
			}
		})
	}
}

func TestBuildUserPrompt_Length(t *testing.T) {
	prompt := BuildUserPrompt("Topic", "general", PromptSettings{ContentLength: "comprehensive"})
	assert.Contains(t, prompt, "**Target Length:** 2000-2500 words")

	prompt = BuildUserPrompt("Topic", "general", PromptSettings{ContentLength: "bogus"})
	assert.Contains(t, prompt, "1000-1200 words", "unknown length defaults to medium")
}

func TestMaxTokens(t *testing.T) {
	assert.Equal(t, 1000, MaxTokens("short"))
	assert.Equal(t, 2000, MaxTokens("medium"))
	assert.Equal(t, 3000, MaxTokens("long"))
	assert.Equal(t, 4000, MaxTokens("comprehensive"))
	assert.Equal(t, 2000, MaxTokens(""), "missing setting defaults to medium")
}

func TestBuildUserPrompt_ContainsTopicAndCategory(t *testing.T) {
	prompt := BuildUserPrompt("GraphQL Federation", "web-development", PromptSettings{})
	assert.True(t, strings.Contains(prompt, "**Topic:** GraphQL Federation"))
	assert.True(t, strings.Contains(prompt, "**Category:** web-development"))
}
