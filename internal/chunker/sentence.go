package chunker

// sentenceSpans greedily accumulates whole sentences into chunks up to
// target characters. When overlap is positive, each new chunk is seeded
// with the trailing overlap-sized tail of whole sentences from the
// previous chunk; sentences are never split.
func sentenceSpans(content string, target, overlap int) []chunkSpan {
	sents := splitSentences(content)
	if len(sents) == 0 {
		return nil
	}

	var out []chunkSpan
	first := 0
	for first < len(sents) {
		last := first
		// Grow while the next sentence still fits the target. A single
		// sentence larger than target becomes its own oversized chunk.
		for last+1 < len(sents) && sents[last+1].end-sents[first].start <= target {
			last++
		}

		out = append(out, chunkSpan{
			start:     sents[first].start,
			end:       sents[last].end,
			sentences: last - first + 1,
		})

		if last == len(sents)-1 {
			break
		}

		next := last + 1
		if overlap > 0 {
			// Walk back whole sentences until the tail would exceed the
			// overlap budget.
			tail := next
			for tail > first && sents[last].end-sents[tail-1].start <= overlap {
				tail--
			}
			// The seed must not cover the whole previous chunk, or the
			// next chunk would repeat it forever.
			if tail <= first {
				tail = first + 1
			}
			next = tail
		}
		first = next
	}

	return out
}
