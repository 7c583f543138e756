package generator

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"trendscribe/pkg/domain"
)

const (
	// metaMinChars is the minimum paragraph length to qualify as a meta
	// description source
	metaMinChars = 50
	// metaMaxChars is the meta description cut-off
	metaMaxChars = 155
)

var (
	titleRe      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	titleLineRe  = regexp.MustCompile(`(?m)^#\s+.+\n*`)
	paragraphRe  = regexp.MustCompile(`\n\n+`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	stripPolicy = bluemonday.StrictPolicy()
)

// ParseAIResponse turns a raw LLM completion into the AI content variant.
// The title comes from the first markdown H1 line, which is removed from
// the body; without one a fallback title is synthesized from the topic.
func ParseAIResponse(raw, topic, category string) domain.GeneratedContent {
	content := raw

	var title string
	if m := titleRe.FindStringSubmatch(content); m != nil {
		title = strings.TrimSpace(m[1])
		content = replaceFirst(titleLineRe, content)
	} else {
		title = FallbackTitle(topic)
	}

	meta := ExtractMetaDescription(content)
	keywords := Keywords(topic, category)

	return domain.NewAIContent(title, strings.TrimSpace(content), meta, keywords, category)
}

// ExtractMetaDescription picks the first body paragraph that is not a
// heading and has enough substance, truncated to the SEO length.
func ExtractMetaDescription(content string) string {
	for _, para := range paragraphRe.Split(content, -1) {
		para = strings.TrimSpace(para)
		if strings.HasPrefix(para, "#") {
			continue
		}
		para = html.UnescapeString(stripPolicy.Sanitize(para))
		para = whitespaceRe.ReplaceAllString(strings.TrimSpace(para), " ")
		if len(para) > metaMinChars {
			if len(para) > metaMaxChars {
				para = para[:metaMaxChars]
			}
			return para + "..."
		}
	}
	return ""
}

// replaceFirst removes only the first match of re from s
func replaceFirst(re *regexp.Regexp, s string) string {
	if loc := re.FindStringIndex(s); loc != nil {
		return s[:loc[0]] + s[loc[1]:]
	}
	return s
}
