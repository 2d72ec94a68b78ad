package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSectionsHeadingParagraphPairs ensures each heading keys the paragraph
// which follows it
func TestSectionsHeadingParagraphPairs(t *testing.T) {
	sections := NewGoldmarkExtractor().Sections("### A\n\nx\n\n### B\n\ny\n")

	assert.Equal(t, map[string]string{
		"A": "x",
		"B": "y",
	}, sections)
}

// TestSectionsHeadingWithoutParagraph ensures a heading with no following
// paragraph is absent from the result
func TestSectionsHeadingWithoutParagraph(t *testing.T) {
	sections := NewGoldmarkExtractor().Sections("### A\n\n### B\n\ny\n")

	assert.Equal(t, map[string]string{
		"B": "y",
	}, sections)
}

// TestSectionsLastParagraphWins ensures the last paragraph before the next
// heading overwrites earlier ones
func TestSectionsLastParagraphWins(t *testing.T) {
	sections := NewGoldmarkExtractor().Sections("### A\n\nfirst\n\nsecond\n")

	assert.Equal(t, map[string]string{
		"A": "second",
	}, sections)
}

// TestSectionsParagraphBeforeFirstHeading ensures leading paragraphs with no
// heading are ignored
func TestSectionsParagraphBeforeFirstHeading(t *testing.T) {
	sections := NewGoldmarkExtractor().Sections("stray text\n\n### A\n\nx\n")

	assert.Equal(t, map[string]string{
		"A": "x",
	}, sections)
}

// TestSectionsInlineNodesFlattened ensures nested inline markup is flattened
// into the concatenated descendant text
func TestSectionsInlineNodesFlattened(t *testing.T) {
	sections := NewGoldmarkExtractor().Sections("### pypi_name\n\n**cool**-*plugin*\n")

	assert.Equal(t, map[string]string{
		"pypi_name": "cool-plugin",
	}, sections)
}

// TestSectionsEmptyBody ensures an empty body yields no sections
func TestSectionsEmptyBody(t *testing.T) {
	sections := NewGoldmarkExtractor().Sections("")

	assert.Empty(t, sections)
}
