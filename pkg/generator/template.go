package generator

import (
	"fmt"

	"trendscribe/pkg/domain"
)

// GenerateTemplate produces the deterministic fallback content used when
// AI generation is not requested or not configured. The skeleton is fixed
// and its prose explicitly marks where AI content is missing. It never
// fails.
func GenerateTemplate(topic, category string) domain.GeneratedContent {
	intro := fmt.Sprintf("In today's rapidly evolving landscape, understanding %s is more important than ever. This comprehensive guide will walk you through everything you need to know.", topic)

	sections := []domain.Section{
		{
			Title:   fmt.Sprintf("What is %s?", topic),
			Content: fmt.Sprintf("Before diving deep, let's establish a clear understanding of what %s means and why it matters.\n\n[AI content generation is not configured. Please add your OpenAI API key in the configuration to generate complete content automatically.]", topic),
		},
		{
			Title:   "Key Benefits",
			Content: fmt.Sprintf("Understanding the benefits of %s can help you make informed decisions.\n\n[Add your OpenAI API key to generate detailed content for this section.]", topic),
		},
		{
			Title:   "How to Get Started",
			Content: fmt.Sprintf("Getting started with %s doesn't have to be complicated.\n\n[Configure OpenAI for AI-powered content generation.]", topic),
		},
		{
			Title:   "Best Practices",
			Content: fmt.Sprintf("Follow these best practices to maximize your success with %s.\n\n[Enable AI content generation for comprehensive best practices.]", topic),
		},
		{
			Title:   "Conclusion",
			Content: fmt.Sprintf("%s represents an important opportunity for those willing to invest the time to understand it.\n\n[For complete, publication-ready content, please configure your OpenAI API key.]", topic),
		},
	}

	meta := fmt.Sprintf("Learn everything about %s with our comprehensive guide. Discover best practices, tips, and strategies for success.", topic)

	return domain.NewTemplateContent(FallbackTitle(topic), intro, sections, meta, Keywords(topic, category), category)
}
