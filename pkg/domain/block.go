package domain

// BlockKind identifies the type of a document block
type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockList      BlockKind = "list"
	BlockCode      BlockKind = "code"
)

// Block is one node of a block-structured document. Paragraph and code
// blocks carry Text, headings add Level and Anchor, lists carry Items.
type Block struct {
	Kind    BlockKind
	Text    string
	Level   int    // heading level 1-6
	Anchor  string // heading anchor slug
	Ordered bool   // list ordering
	Items   []string
	Lang    string // code block language tag
}
