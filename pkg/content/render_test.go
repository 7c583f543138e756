package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"trendscribe/pkg/domain"
)

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block domain.Block
		want  string
	}{
		{
			name:  "paragraph",
			block: domain.Block{Kind: domain.BlockParagraph, Text: "hello <em>world</em>"},
			want:  "<!-- wp:paragraph -->\n<p>hello <em>world</em></p>\n<!-- /wp:paragraph -->\n\n",
		},
		{
			name:  "heading",
			block: domain.Block{Kind: domain.BlockHeading, Level: 3, Text: "Setup", Anchor: "setup"},
			want:  "<!-- wp:heading {\"level\":3} -->\n<h3 id=\"setup\">Setup</h3>\n<!-- /wp:heading -->\n\n",
		},
		{
			name:  "unordered list",
			block: domain.Block{Kind: domain.BlockList, Items: []string{"a", "b"}},
			want:  "<!-- wp:list -->\n<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n<!-- /wp:list -->\n\n",
		},
		{
			name:  "ordered list",
			block: domain.Block{Kind: domain.BlockList, Ordered: true, Items: []string{"a"}},
			want:  "<!-- wp:list {\"ordered\":true} -->\n<ol>\n<li>a</li>\n</ol>\n<!-- /wp:list -->\n\n",
		},
		{
			name:  "code escapes html",
			block: domain.Block{Kind: domain.BlockCode, Text: "if a < b {}"},
			want:  "<!-- wp:code -->\n<pre class=\"wp-block-code\"><code>if a &lt; b {}</code></pre>\n<!-- /wp:code -->\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderBlocks([]domain.Block{tt.block}))
		})
	}
}

func TestBuildBody_AI(t *testing.T) {
	c := domain.NewAIContent("Go Routines", "para one\n\n## Usage\n- first\n- second", "meta", []string{"go", "concurrency"}, "web-development")
	body := BuildBody(c)

	assert.Contains(t, body, "<p>para one</p>")
	assert.Contains(t, body, `<h2 id="usage">Usage</h2>`)
	assert.Contains(t, body, "<li>first</li>")
	assert.NotContains(t, body, "Focus Keywords", "keyword marker is a template-path artifact")
	assert.NotContains(t, body, "Table of Contents")
}

func TestBuildBody_TemplateWithTOC(t *testing.T) {
	c := domain.NewTemplateContent("Edge Caching",
		"An intro paragraph.",
		[]domain.Section{
			{Title: "What is Edge Caching?", Content: "definition text"},
			{Title: "Key Benefits", Content: "- fast\n- cheap"},
			{Title: "Conclusion", Content: "wrap up"},
		},
		"meta", []string{"edge caching", "cdn"}, "general")
	body := BuildBody(c)

	assert.Contains(t, body, "<p>An intro paragraph.</p>")
	assert.Contains(t, body, "<h2>Table of Contents</h2>", "three sections earn a TOC")
	assert.Contains(t, body, `<a href="#what-is-edge-caching">What is Edge Caching?</a>`)
	assert.Contains(t, body, `<h2 id="what-is-edge-caching">What is Edge Caching?</h2>`)
	assert.Contains(t, body, "<li>fast</li>")
	assert.Contains(t, body, "<!-- Focus Keywords: edge caching, cdn -->")

	tocIdx := strings.Index(body, "Table of Contents")
	firstSection := strings.Index(body, `<h2 id="what-is-edge-caching">`)
	assert.Less(t, tocIdx, firstSection, "TOC precedes the sections")
}

func TestBuildBody_TemplateNoTOC(t *testing.T) {
	c := domain.NewTemplateContent("Topic", "intro",
		[]domain.Section{
			{Title: "One", Content: "a"},
			{Title: "Two", Content: "b"},
		},
		"meta", nil, "general")
	body := BuildBody(c)

	assert.NotContains(t, body, "Table of Contents", "two sections are not enough for a TOC")
	assert.NotContains(t, body, "Focus Keywords")
	assert.Contains(t, body, `<h2 id="one">One</h2>`)
}
