package content

import "regexp"

// single-pass non-greedy inline markdown. Replacement order matters: bold
// before italic so ** is consumed before * gets a chance. No escaping
// support, nested emphasis is undefined behavior.
var inlineRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`__(.+?)__`), "<strong>$1</strong>"},
	{regexp.MustCompile(`\*(.+?)\*`), "<em>$1</em>"},
	{regexp.MustCompile(`_(.+?)_`), "<em>$1</em>"},
	{regexp.MustCompile("`(.+?)`"), "<code>$1</code>"},
	{regexp.MustCompile(`\[(.+?)\]\((.+?)\)`), `<a href="$2">$1</a>`},
}

// ParseInline converts bold, italic, inline code and links to HTML
func ParseInline(text string) string {
	for _, rule := range inlineRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return text
}
