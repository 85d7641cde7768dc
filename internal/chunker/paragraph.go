package chunker

// paragraphSpans makes one chunk per paragraph that fits the target.
// Oversized paragraphs fall back to sentence chunking within their own
// bounds. No overlap is applied: the structural boundaries are the
// natural separation.
func paragraphSpans(content string, target int) []chunkSpan {
	paras := splitParagraphs(content)

	var out []chunkSpan
	for _, p := range paras {
		text := content[p.start:p.end]
		if p.len() <= target {
			out = append(out, chunkSpan{
				start:     p.start,
				end:       p.end,
				sentences: len(splitSentences(text)),
			})
			continue
		}

		for _, s := range sentenceSpans(text, target, 0) {
			out = append(out, chunkSpan{
				start:     p.start + s.start,
				end:       p.start + s.end,
				sentences: s.sentences,
			})
		}
	}

	return out
}
