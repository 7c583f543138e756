package generator

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// titleTemplates are the fallback title shapes used when an AI response
// carries no heading. Selection is random by design, tests assert "one of
// these, filled in" rather than exact output.
var titleTemplates = []string{
	"{topic}: Complete Guide for {year}",
	"How to Master {topic} in {year}",
	"The Ultimate Guide to {topic}",
	"{topic}: Everything You Need to Know",
	"{topic} Best Practices and Tips for {year}",
}

// FallbackTitle builds an SEO title from a randomly chosen template,
// filled with the topic and the current year.
func FallbackTitle(topic string) string {
	template := titleTemplates[rand.Intn(len(titleTemplates))] //nolint:gosec // not security sensitive
	return fillTitleTemplate(template, topic, time.Now().Year())
}

func fillTitleTemplate(template, topic string, year int) string {
	r := strings.NewReplacer("{topic}", topic, "{year}", strconv.Itoa(year))
	return r.Replace(template)
}
