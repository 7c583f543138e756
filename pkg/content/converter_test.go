package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscribe/pkg/domain"
)

func TestConvert_SingleHeading(t *testing.T) {
	blocks := Convert("## Heading")
	require.Len(t, blocks, 1, "one heading line produces exactly one block")

	b := blocks[0]
	assert.Equal(t, domain.BlockHeading, b.Kind)
	assert.Equal(t, 2, b.Level)
	assert.Equal(t, "Heading", b.Text)
	assert.Equal(t, "heading", b.Anchor)
}

func TestConvert_HeadingLevels(t *testing.T) {
	blocks := Convert("# One\n### Three\n###### Six")
	require.Len(t, blocks, 3)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, 3, blocks[1].Level)
	assert.Equal(t, 6, blocks[2].Level)
}

func TestConvert_Paragraphs(t *testing.T) {
	blocks := Convert("first line\nsecond line\n\nnext para")
	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockParagraph, blocks[0].Kind)
	assert.Equal(t, "first line second line", blocks[0].Text, "adjacent lines joined with a single space")
	assert.Equal(t, "next para", blocks[1].Text)
}

func TestConvert_CodeFence(t *testing.T) {
	blocks := Convert("```go\nfunc main() {}\n\nfmt.Println(1)\n```")
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, domain.BlockCode, b.Kind)
	assert.Equal(t, "go", b.Lang)
	assert.Equal(t, "func main() {}\n\nfmt.Println(1)", b.Text, "blank lines kept verbatim inside the fence")
}

func TestConvert_CodeFenceSwallowsHeadings(t *testing.T) {
	blocks := Convert("```\n## not a heading\n- not a list\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockCode, blocks[0].Kind)
	assert.Equal(t, "## not a heading\n- not a list", blocks[0].Text)
}

func TestConvert_UnorderedList(t *testing.T) {
	blocks := Convert("- a\n* b")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockList, blocks[0].Kind)
	assert.False(t, blocks[0].Ordered)
	assert.Equal(t, []string{"a", "b"}, blocks[0].Items)
}

func TestConvert_OrderedList(t *testing.T) {
	blocks := Convert("1. first\n2. second\n10. tenth")
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].Ordered)
	assert.Equal(t, []string{"first", "second", "tenth"}, blocks[0].Items)
}

func TestConvert_ListTypeSwitchClosesList(t *testing.T) {
	blocks := Convert("- a\n1. b")
	require.Len(t, blocks, 2)
	assert.False(t, blocks[0].Ordered)
	assert.True(t, blocks[1].Ordered)
}

func TestConvert_ListClosedByTextNotByBlank(t *testing.T) {
	// blank line alone keeps the list open, the following text closes it
	blocks := Convert("- a\n- b\n\ntext\n- c")
	require.Len(t, blocks, 3)

	assert.Equal(t, domain.BlockList, blocks[0].Kind)
	assert.Equal(t, []string{"a", "b"}, blocks[0].Items)

	assert.Equal(t, domain.BlockParagraph, blocks[1].Kind)
	assert.Equal(t, "text", blocks[1].Text)

	assert.Equal(t, domain.BlockList, blocks[2].Kind)
	assert.Equal(t, []string{"c"}, blocks[2].Items)
}

func TestConvert_ListContinuesPastBlankLine(t *testing.T) {
	blocks := Convert("- a\n\n- b")
	require.Len(t, blocks, 1, "blank line alone does not terminate a list")
	assert.Equal(t, []string{"a", "b"}, blocks[0].Items)
}

func TestConvert_HeadingClosesListAndParagraph(t *testing.T) {
	blocks := Convert("some text\n- item\n## Next")
	require.Len(t, blocks, 3)
	assert.Equal(t, domain.BlockParagraph, blocks[0].Kind)
	assert.Equal(t, domain.BlockList, blocks[1].Kind)
	assert.Equal(t, domain.BlockHeading, blocks[2].Kind)
}

func TestConvert_TrailingStateFlushed(t *testing.T) {
	blocks := Convert("- open list")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockList, blocks[0].Kind)

	blocks = Convert("dangling paragraph")
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.BlockParagraph, blocks[0].Kind)
}

func TestConvert_InlineMarkdownApplied(t *testing.T) {
	blocks := Convert("## A **bold** move\n- item with `code`\npara with [link](https://example.com)")
	require.Len(t, blocks, 3)
	assert.Equal(t, "A <strong>bold</strong> move", blocks[0].Text)
	assert.Equal(t, "a-bold-move", blocks[0].Anchor, "anchor derived from raw heading text")
	assert.Equal(t, []string{"item with <code>code</code>"}, blocks[1].Items)
	assert.Equal(t, `para with <a href="https://example.com">link</a>`, blocks[2].Text)
}

func TestConvert_Empty(t *testing.T) {
	assert.Empty(t, Convert(""))
	assert.Empty(t, Convert("\n\n\n"))
}

func TestParseInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{"bold stars", "**x**", "<strong>x</strong>"},
		{"bold underscores", "__x__", "<strong>x</strong>"},
		{"italic star", "*x*", "<em>x</em>"},
		{"italic underscore", "_x_", "<em>x</em>"},
		{"inline code", "`x`", "<code>x</code>"},
		{"link", "[text](url)", `<a href="url">text</a>`},
		{"non greedy", "*a* and *b*", "<em>a</em> and <em>b</em>"},
		{"mixed", "**b** and `c`", "<strong>b</strong> and <code>c</code>"},
		{"plain", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, ParseInline(tt.in))
		})
	}
}
