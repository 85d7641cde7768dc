package chunker

import "unicode/utf8"

// snapTolerance is how far past the target a snapped cut may land when
// looking for a sentence end.
const snapTolerance = 20

// fixedSpans cuts content at target-sized character boundaries with
// overlap characters repeated at the start of each subsequent chunk.
// In the default mode the cut snaps to the nearest sentence end within
// target+snapTolerance; exact mode cuts at raw offsets (rune-aligned)
// regardless of word boundaries.
func fixedSpans(content string, target, overlap int, exact bool) []chunkSpan {
	n := len(content)

	// Sentence ends are precomputed once for boundary snapping and for
	// per-chunk sentence counts.
	sents := splitSentences(content)
	sentenceEnds := make([]int, len(sents))
	for i, s := range sents {
		sentenceEnds[i] = s.end
	}

	var out []chunkSpan
	start := 0
	for start < n {
		end := start + target
		if end >= n {
			end = n
		} else {
			if !exact {
				if snapped, ok := snapToSentenceEnd(sentenceEnds, start, target); ok {
					end = snapped
				}
			}
			end = alignRuneStart(content, end)
			// A target smaller than one rune aligns the cut back onto
			// start; take the whole rune so the span is never empty and
			// start always advances.
			if end <= start {
				_, size := utf8.DecodeRuneInString(content[start:])
				end = start + size
			}
		}

		out = append(out, chunkSpan{
			start:     start,
			end:       end,
			sentences: countSentencesIn(sents, start, end),
		})

		if end >= n {
			break
		}

		next := end - overlap
		// When the remaining text is shorter than the overlap the
		// stepped-back start would stall; advance past the cut instead.
		if next <= start {
			next = end
		}
		start = alignRuneStart(content, next)
	}

	return out
}

// snapToSentenceEnd returns the largest sentence end within
// (start, start+target+snapTolerance], if any.
func snapToSentenceEnd(sentenceEnds []int, start, target int) (int, bool) {
	limit := start + target + snapTolerance
	best := -1
	for _, e := range sentenceEnds {
		if e <= start {
			continue
		}
		if e > limit {
			break
		}
		best = e
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// alignRuneStart moves pos back to the nearest UTF-8 rune boundary so a
// cut never severs a multi-byte rune.
func alignRuneStart(content string, pos int) int {
	for pos > 0 && pos < len(content) && !utf8.RuneStart(content[pos]) {
		pos--
	}
	return pos
}

// countSentencesIn counts sentence spans overlapping [start, end).
func countSentencesIn(sents []span, start, end int) int {
	count := 0
	for _, s := range sents {
		if s.start < end && s.end > start {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}
