package driven

// TokenCounter estimates the token count of a text for context
// budgeting. Implementations may wrap a real tokenizer; the assembler
// falls back to a character-based estimate when none is provided.
type TokenCounter interface {
	// CountTokens returns the estimated token count of text.
	CountTokens(text string) int
}
