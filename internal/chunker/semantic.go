package chunker

import "strings"

// continuationCues are sentence openers that signal the sentence
// continues the previous one: pronoun references and coordinating
// conjunctions.
var continuationCues = map[string]struct{}{
	"it": {}, "its": {}, "he": {}, "she": {}, "they": {}, "them": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"and": {}, "but": {}, "or": {}, "so": {}, "yet": {},
	"however": {}, "also": {}, "moreover": {}, "furthermore": {},
	"therefore": {}, "thus": {}, "instead": {}, "meanwhile": {},
}

// semanticStopwords are excluded from keyword-overlap comparison.
var semanticStopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "with": {}, "from": {}, "into": {}, "about": {}, "over": {},
	"under": {}, "after": {}, "before": {}, "between": {}, "through": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "their": {}, "there": {},
}

// semanticSpans groups adjacent sentences into a chunk while a
// lightweight continuation heuristic holds: the next sentence opens
// with a continuation cue, or shares a content keyword with the
// current sentence. The chunk closes when the heuristic breaks or the
// target size is reached. Intentionally approximate; no embeddings
// involved.
func semanticSpans(content string, target int) []chunkSpan {
	sents := splitSentences(content)
	if len(sents) == 0 {
		return nil
	}

	var out []chunkSpan
	first := 0
	for first < len(sents) {
		last := first
		for last+1 < len(sents) {
			if sents[last+1].end-sents[first].start > target {
				break
			}
			prev := content[sents[last].start:sents[last].end]
			next := content[sents[last+1].start:sents[last+1].end]
			if !continuesTopic(prev, next) {
				break
			}
			last++
		}

		out = append(out, chunkSpan{
			start:     sents[first].start,
			end:       sents[last].end,
			sentences: last - first + 1,
		})
		first = last + 1
	}

	return out
}

// continuesTopic reports whether next reads as a continuation of prev.
func continuesTopic(prev, next string) bool {
	words := strings.Fields(strings.ToLower(next))
	if len(words) == 0 {
		return false
	}

	if _, ok := continuationCues[strings.Trim(words[0], ",;:")]; ok {
		return true
	}

	prevKeys := contentKeywords(prev)
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) <= 3 {
			continue
		}
		if _, stop := semanticStopwords[w]; stop {
			continue
		}
		if _, ok := prevKeys[w]; ok {
			return true
		}
	}
	return false
}

// contentKeywords extracts the stopword-filtered content words of a
// sentence, lowercased.
func contentKeywords(sentence string) map[string]struct{} {
	keys := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(sentence)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) <= 3 {
			continue
		}
		if _, stop := semanticStopwords[w]; stop {
			continue
		}
		keys[w] = struct{}{}
	}
	return keys
}
