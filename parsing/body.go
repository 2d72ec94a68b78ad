package parsing

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SectionExtractor turns a markdown issue body into a map keyed by heading
// text. The value under each key is the text of the paragraphs which follow
// that heading.
type SectionExtractor interface {
	// Sections extracts the heading keyed sections of body
	Sections(body string) map[string]string
}

// GoldmarkExtractor implements SectionExtractor on top of the goldmark
// markdown parser. The parser configuration never changes and goldmark
// parsers are safe to share, so one GoldmarkExtractor can be reused for
// every parse.
type GoldmarkExtractor struct {
	md goldmark.Markdown
}

// NewGoldmarkExtractor creates a GoldmarkExtractor
func NewGoldmarkExtractor() *GoldmarkExtractor {
	return &GoldmarkExtractor{
		md: goldmark.New(),
	}
}

// Sections walks the document's top level nodes. A heading sets the current
// key. Each paragraph's flattened text is stored under the current key, so
// the last paragraph before the next heading wins. Paragraphs before the
// first heading are ignored, and a heading with no following paragraph is
// absent from the result.
func (e *GoldmarkExtractor) Sections(body string) map[string]string {
	source := []byte(body)
	document := e.md.Parser().Parse(text.NewReader(source))

	sections := map[string]string{}

	currentHeading := ""
	haveHeading := false

	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		switch node.Kind() {
		case ast.KindHeading:
			currentHeading = flattenText(node, source)
			haveHeading = true
		case ast.KindParagraph:
			if haveHeading {
				sections[currentHeading] = flattenText(node, source)
			}
		}
	}

	return sections
}

// flattenText concatenates the trimmed content of every text node under
// node in document order
func flattenText(node ast.Node, source []byte) string {
	switch typed := node.(type) {
	case *ast.Text:
		return strings.TrimSpace(string(typed.Segment.Value(source)))
	case *ast.String:
		return strings.TrimSpace(string(typed.Value))
	}

	var flattened strings.Builder

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		flattened.WriteString(flattenText(child, source))
	}

	return flattened.String()
}
