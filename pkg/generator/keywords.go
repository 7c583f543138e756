package generator

import (
	"fmt"
	"strings"
	"time"
)

// maxKeywords caps the LSI keyword list
const maxKeywords = 10

// categoryKeywords is a static lookup of category-specific LSI keywords
var categoryKeywords = map[string][]string{
	"seo":                {"search engine optimization", "SEO strategy", "keyword research", "backlinks", "SERP"},
	"marketing":          {"digital marketing", "content marketing", "social media", "campaign", "conversion"},
	"digital-marketing":  {"digital marketing", "online marketing", "content strategy", "social media marketing", "email marketing"},
	"web-development":    {"web development", "frontend", "backend", "framework", "responsive design"},
	"mobile-development": {"mobile app", "iOS development", "Android development", "app store", "cross-platform"},
}

// Keywords derives an LSI-style keyword list for the topic: the literal
// topic first (the focus keyword), its lowercase form, category-specific
// keywords, then time and phrase variants. Deduplicated, order-preserving,
// at most 10 entries.
func Keywords(topic, category string) []string {
	lower := strings.ToLower(topic)
	year := time.Now().Year()

	candidates := []string{topic, lower}
	candidates = append(candidates, categoryKeywords[category]...)
	candidates = append(candidates,
		fmt.Sprintf("%s %d", topic, year),
		topic+" guide",
		"how to "+lower,
		"best "+lower,
		lower+" tips",
		lower+" best practices",
	)

	seen := make(map[string]struct{}, len(candidates))
	keywords := make([]string, 0, maxKeywords)
	for _, kw := range candidates {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
