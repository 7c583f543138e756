package content

import (
	"fmt"
	"html"
	"strings"

	"trendscribe/pkg/classify"
	"trendscribe/pkg/domain"
)

// RenderBlocks serializes document blocks into the block-tagged HTML
// fragment format the CMS understands: every block wrapped in a matching
// comment pair. The tag vocabulary is a compatibility contract with the
// backend editor.
func RenderBlocks(blocks []domain.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case domain.BlockParagraph:
			sb.WriteString("<!-- wp:paragraph -->\n<p>" + b.Text + "</p>\n<!-- /wp:paragraph -->\n\n")
		case domain.BlockHeading:
			sb.WriteString(fmt.Sprintf("<!-- wp:heading {\"level\":%d} -->\n<h%d id=%q>%s</h%d>\n<!-- /wp:heading -->\n\n",
				b.Level, b.Level, b.Anchor, b.Text, b.Level))
		case domain.BlockList:
			tag, open := "ul", "<!-- wp:list -->"
			if b.Ordered {
				tag, open = "ol", `<!-- wp:list {"ordered":true} -->`
			}
			sb.WriteString(open + "\n<" + tag + ">\n")
			for _, item := range b.Items {
				sb.WriteString("<li>" + item + "</li>\n")
			}
			sb.WriteString("</" + tag + ">\n<!-- /wp:list -->\n\n")
		case domain.BlockCode:
			sb.WriteString("<!-- wp:code -->\n<pre class=\"wp-block-code\"><code>" + html.EscapeString(b.Text) + "</code></pre>\n<!-- /wp:code -->\n\n")
		}
	}
	return sb.String()
}

// BuildBody renders generated content into the publish-ready document
// body. The AI variant runs through the markdown converter, the template
// variant through the section iterator with a table of contents.
func BuildBody(c domain.GeneratedContent) string {
	if c.Kind == domain.ContentAI {
		return RenderBlocks(Convert(c.Markdown))
	}

	var sb strings.Builder

	if c.Intro != "" {
		sb.WriteString(RenderBlocks([]domain.Block{{Kind: domain.BlockParagraph, Text: ParseInline(c.Intro)}}))
	}

	// table of contents only when there is enough to navigate
	if len(c.Sections) > 2 {
		sb.WriteString("<!-- wp:heading -->\n<h2>Table of Contents</h2>\n<!-- /wp:heading -->\n\n")
		sb.WriteString("<!-- wp:list -->\n<ul>\n")
		for _, section := range c.Sections {
			anchor := classify.Slugify(section.Title)
			sb.WriteString(fmt.Sprintf("<li><a href=\"#%s\">%s</a></li>\n", anchor, html.EscapeString(section.Title)))
		}
		sb.WriteString("</ul>\n<!-- /wp:list -->\n\n")
	}

	for _, section := range c.Sections {
		anchor := classify.Slugify(section.Title)
		sb.WriteString(fmt.Sprintf("<!-- wp:heading -->\n<h2 id=%q>%s</h2>\n<!-- /wp:heading -->\n\n",
			anchor, html.EscapeString(section.Title)))
		if section.Content != "" {
			sb.WriteString(RenderBlocks(Convert(section.Content)))
		}
	}

	if len(c.Keywords) > 0 {
		sb.WriteString("\n<!-- Focus Keywords: " + strings.Join(c.Keywords, ", ") + " -->\n")
	}

	return sb.String()
}
