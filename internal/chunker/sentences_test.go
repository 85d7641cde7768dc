package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireTiling asserts spans are contiguous and cover content exactly.
func requireTiling(t *testing.T, content string, spans []span) {
	t.Helper()
	require.NotEmpty(t, spans)
	assert.Equal(t, 0, spans[0].start)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].end, spans[i].start, "span %d must start where %d ends", i, i-1)
	}
	assert.Equal(t, len(content), spans[len(spans)-1].end)
}

func TestSplitSentences(t *testing.T) {
	content := "First sentence. Second one! Third, a question? Last without terminator"

	spans := splitSentences(content)
	require.Len(t, spans, 4)
	requireTiling(t, content, spans)

	assert.Equal(t, "First sentence. ", content[spans[0].start:spans[0].end])
	assert.Equal(t, "Second one! ", content[spans[1].start:spans[1].end])
	assert.Equal(t, "Third, a question? ", content[spans[2].start:spans[2].end])
	assert.Equal(t, "Last without terminator", content[spans[3].start:spans[3].end])
}

func TestSplitSentencesKeepsDecimalsWhole(t *testing.T) {
	content := "Pi is roughly 3.14 in most uses. The next sentence follows."

	spans := splitSentences(content)
	require.Len(t, spans, 2)
	assert.Equal(t, "Pi is roughly 3.14 in most uses. ", content[spans[0].start:spans[0].end])
}

func TestSplitSentencesNewlineBoundary(t *testing.T) {
	content := "A heading without terminator\nBody text follows here."

	spans := splitSentences(content)
	require.Len(t, spans, 2)
	requireTiling(t, content, spans)
	assert.Equal(t, "A heading without terminator\n", content[spans[0].start:spans[0].end])
}

func TestSplitSentencesClosingQuote(t *testing.T) {
	content := `She said "stop." Then silence.`

	spans := splitSentences(content)
	require.Len(t, spans, 2)
	assert.Equal(t, `She said "stop." `, content[spans[0].start:spans[0].end])
}

func TestSplitSentencesNoTerminator(t *testing.T) {
	content := "just a fragment"

	spans := splitSentences(content)
	require.Len(t, spans, 1)
	assert.Equal(t, span{0, len(content)}, spans[0])
}

func TestSplitParagraphs(t *testing.T) {
	content := "Para one line.\n\nPara two line.\n\n\nPara three."

	spans := splitParagraphs(content)
	require.Len(t, spans, 3)
	requireTiling(t, content, spans)

	assert.Equal(t, "Para one line.\n\n", content[spans[0].start:spans[0].end])
	assert.Equal(t, "Para two line.\n\n\n", content[spans[1].start:spans[1].end])
	assert.Equal(t, "Para three.", content[spans[2].start:spans[2].end])
}

func TestSplitParagraphsSingleNewlineIsNotABoundary(t *testing.T) {
	content := "Line one.\nLine two of the same paragraph."

	spans := splitParagraphs(content)
	require.Len(t, spans, 1)
}
