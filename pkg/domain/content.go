package domain

// ContentKind discriminates the two shapes of generated content
type ContentKind string

const (
	ContentAI       ContentKind = "ai"
	ContentTemplate ContentKind = "template"
)

// Section is one titled part of template-generated content
type Section struct {
	Title   string
	Content string
}

// GeneratedContent is the result of content synthesis. It is a tagged union:
// the AI variant carries the whole article as markdown, the template variant
// carries an intro plus titled sections. Use the constructors, check Kind
// before reading variant fields.
type GeneratedContent struct {
	Kind            ContentKind
	Title           string
	MetaDescription string
	Keywords        []string
	Category        string

	// AI variant
	Markdown string

	// template variant
	Intro    string
	Sections []Section
}

// NewAIContent creates the AI variant
func NewAIContent(title, markdown, metaDescription string, keywords []string, category string) GeneratedContent {
	return GeneratedContent{
		Kind:            ContentAI,
		Title:           title,
		Markdown:        markdown,
		MetaDescription: metaDescription,
		Keywords:        keywords,
		Category:        category,
	}
}

// NewTemplateContent creates the template variant
func NewTemplateContent(title, intro string, sections []Section, metaDescription string, keywords []string, category string) GeneratedContent {
	return GeneratedContent{
		Kind:            ContentTemplate,
		Title:           title,
		Intro:           intro,
		Sections:        sections,
		MetaDescription: metaDescription,
		Keywords:        keywords,
		Category:        category,
	}
}

// AIGenerated reports whether the content came from the AI path
func (c GeneratedContent) AIGenerated() bool { return c.Kind == ContentAI }

// FocusKeyword returns the primary keyword, empty if none
func (c GeneratedContent) FocusKeyword() string {
	if len(c.Keywords) == 0 {
		return ""
	}
	return c.Keywords[0]
}
