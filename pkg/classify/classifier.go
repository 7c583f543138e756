// Package classify maps free text to one of the operator-configured
// category slugs via case-insensitive keyword matching.
package classify

import (
	"strings"
)

// DefaultCategory is returned when no configured category matches
const DefaultCategory = "general"

// Category is one configured category with its marker keywords. The
// category's own name is its sole keyword by default.
type Category struct {
	Name     string
	Slug     string
	Keywords []string
}

// Classifier detects categories by keyword lookup. Categories keep their
// configured order because classification is first-match-wins.
type Classifier struct {
	categories []Category
}

// New builds a classifier from category names, one per line of the
// configured list. Blank lines are skipped, order is preserved.
func New(names []string) *Classifier {
	categories := make([]Category, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		categories = append(categories, Category{
			Name:     name,
			Slug:     Slugify(name),
			Keywords: []string{name},
		})
	}
	return &Classifier{categories: categories}
}

// Categories returns the configured categories in order
func (c *Classifier) Categories() []Category { return c.categories }

// Detect returns the slug of the first category whose keyword occurs in
// the text, case-insensitive, or DefaultCategory when none match.
func (c *Classifier) Detect(text string) string {
	lower := strings.ToLower(text)
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return cat.Slug
			}
		}
	}
	return DefaultCategory
}

// KeywordsFor returns the keywords of the given category slug. With an
// empty or unknown slug it returns every category's keywords, deduplicated
// in configuration order.
func (c *Classifier) KeywordsFor(slug string) []string {
	if slug != "" {
		for _, cat := range c.categories {
			if cat.Slug == slug {
				return cat.Keywords
			}
		}
	}
	seen := make(map[string]struct{})
	var all []string
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			all = append(all, kw)
		}
	}
	return all
}

// NameFor resolves a slug back to the configured category name. Unknown
// slugs get a title-cased version of the slug with dashes as spaces.
func (c *Classifier) NameFor(slug string) string {
	for _, cat := range c.categories {
		if cat.Slug == slug || strings.EqualFold(cat.Name, slug) {
			return cat.Name
		}
	}
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Slugify converts a name to a lowercase dash-separated slug, dropping
// anything that is not a letter or digit.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
