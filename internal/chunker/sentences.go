package chunker

import "strings"

// span is a half-open [start, end) byte range into the original text.
type span struct {
	start int
	end   int
}

func (s span) len() int { return s.end - s.start }

// isSpace reports whether b is an ASCII whitespace byte.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isTerminator reports whether b ends a sentence.
func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// isClosing reports whether b may trail a terminator (quotes, brackets).
func isClosing(b byte) bool {
	return b == '"' || b == '\'' || b == ')' || b == ']'
}

// splitSentences segments content into sentence spans. Spans tile the
// text exactly: each sentence includes its trailing whitespace, spans
// are contiguous, and their union reconstructs content byte for byte.
// Whitespace-only content yields a single span covering everything.
func splitSentences(content string) []span {
	n := len(content)
	var spans []span

	start := 0
	i := 0
	for i < n {
		b := content[i]

		switch {
		case isTerminator(b):
			j := i + 1
			for j < n && isClosing(content[j]) {
				j++
			}
			// A terminator only ends a sentence when followed by
			// whitespace or end of text; "3.14" stays whole.
			if j < n && !isSpace(content[j]) {
				i++
				continue
			}
			for j < n && isSpace(content[j]) {
				j++
			}
			spans = append(spans, span{start, j})
			start = j
			i = j

		case b == '\n':
			j := i + 1
			for j < n && isSpace(content[j]) {
				j++
			}
			if strings.TrimSpace(content[start:i]) != "" {
				spans = append(spans, span{start, j})
				start = j
			}
			i = j

		default:
			i++
		}
	}

	if start < n {
		if strings.TrimSpace(content[start:]) != "" {
			spans = append(spans, span{start, n})
		} else if len(spans) > 0 {
			spans[len(spans)-1].end = n
		}
	}

	if len(spans) == 0 && n > 0 {
		spans = []span{{0, n}}
	}

	return spans
}

// splitParagraphs segments content at blank-line boundaries. Spans tile
// the text the same way sentence spans do: a paragraph owns the blank
// lines that follow it.
func splitParagraphs(content string) []span {
	n := len(content)
	var spans []span

	start := 0
	i := 0
	for i < n {
		if content[i] != '\n' {
			i++
			continue
		}

		// Count newlines in the whitespace run starting here.
		j := i
		newlines := 0
		for j < n && isSpace(content[j]) {
			if content[j] == '\n' {
				newlines++
			}
			j++
		}

		if newlines >= 2 && strings.TrimSpace(content[start:i]) != "" {
			spans = append(spans, span{start, j})
			start = j
		}
		i = j
	}

	if start < n {
		if strings.TrimSpace(content[start:]) != "" {
			spans = append(spans, span{start, n})
		} else if len(spans) > 0 {
			spans[len(spans)-1].end = n
		}
	}

	if len(spans) == 0 && n > 0 {
		spans = []span{{0, n}}
	}

	return spans
}
