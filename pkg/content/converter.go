// Package content converts markdown-ish article text into a sequence of
// typed document blocks and renders them as block-tagged HTML suitable
// for the CMS backend.
package content

import (
	"regexp"
	"strings"

	"trendscribe/pkg/classify"
	"trendscribe/pkg/domain"
)

var (
	fenceRe     = regexp.MustCompile("^```(\\w*)")
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	unorderedRe = regexp.MustCompile(`^[-*]\s+(.+)$`)
	orderedRe   = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// converter holds the per-call scan state: an open list, an open code
// fence and a pending paragraph buffer
type converter struct {
	blocks []domain.Block

	inList      bool
	listOrdered bool
	listItems   []string

	inCode   bool
	codeLang string
	codeBuf  strings.Builder

	paragraph strings.Builder
}

// Convert scans markdown line by line and emits document blocks. Rules are
// checked in fixed priority: code fence, code accumulation, heading, list
// items, list termination by non-list content, blank-line paragraph break,
// paragraph accumulation.
func Convert(markdown string) []domain.Block {
	c := &converter{}

	for _, line := range strings.Split(markdown, "\n") {
		c.line(line)
	}

	c.flushParagraph()
	c.closeList()
	return c.blocks
}

func (c *converter) line(line string) {
	if m := fenceRe.FindStringSubmatch(line); m != nil {
		if !c.inCode {
			c.flushParagraph()
			c.inCode = true
			c.codeLang = m[1]
			return
		}
		c.blocks = append(c.blocks, domain.Block{
			Kind: domain.BlockCode,
			Text: strings.TrimSpace(c.codeBuf.String()),
			Lang: c.codeLang,
		})
		c.inCode = false
		c.codeBuf.Reset()
		c.codeLang = ""
		return
	}

	if c.inCode {
		// verbatim, blank lines included, no further parsing
		c.codeBuf.WriteString(line)
		c.codeBuf.WriteString("\n")
		return
	}

	if m := headingRe.FindStringSubmatch(line); m != nil {
		c.flushParagraph()
		c.closeList()
		c.blocks = append(c.blocks, domain.Block{
			Kind:   domain.BlockHeading,
			Level:  len(m[1]),
			Text:   ParseInline(m[2]),
			Anchor: classify.Slugify(m[2]),
		})
		return
	}

	if m := unorderedRe.FindStringSubmatch(line); m != nil {
		c.listItem(false, m[1])
		return
	}

	if m := orderedRe.FindStringSubmatch(line); m != nil {
		c.listItem(true, m[1])
		return
	}

	// lists end at any non-list content, not at blank lines
	if c.inList && strings.TrimSpace(line) != "" {
		c.closeList()
	}

	if strings.TrimSpace(line) == "" {
		c.flushParagraph()
		return
	}

	if c.paragraph.Len() > 0 {
		c.paragraph.WriteString(" ")
	}
	c.paragraph.WriteString(strings.TrimSpace(line))
}

func (c *converter) listItem(ordered bool, text string) {
	c.flushParagraph()
	if c.inList && c.listOrdered != ordered {
		c.closeList()
	}
	c.inList = true
	c.listOrdered = ordered
	c.listItems = append(c.listItems, ParseInline(text))
}

func (c *converter) flushParagraph() {
	if c.paragraph.Len() == 0 {
		return
	}
	c.blocks = append(c.blocks, domain.Block{
		Kind: domain.BlockParagraph,
		Text: ParseInline(c.paragraph.String()),
	})
	c.paragraph.Reset()
}

func (c *converter) closeList() {
	if !c.inList {
		return
	}
	c.blocks = append(c.blocks, domain.Block{
		Kind:    domain.BlockList,
		Ordered: c.listOrdered,
		Items:   c.listItems,
	})
	c.inList = false
	c.listItems = nil
}
