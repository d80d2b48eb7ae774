package uktext

// tokensPerWordEstimate is the estimated ratio of total tokens to word
// tokens, used to pre-allocate the words slice in ExtractWords.
const tokensPerWordEstimate = 2

// Tokenize splits text into an ordered sequence of word and non-word tokens.
// The sequence covers the whole input with no gaps: concatenating the Text
// fields reconstructs text exactly, the first token starts at 0, the last
// ends at the rune length of text, and consecutive tokens share a boundary.
// An empty input yields zero tokens.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	tokens := make([]Token, 0, len(text)/8+1)
	scan(text, func(t Token) {
		tokens = append(tokens, t)
	})
	return tokens
}

// ExtractWords returns the normalized form of every word token, in document
// order. Repeated words appear once per occurrence.
func ExtractWords(text string) []string {
	if text == "" {
		return nil
	}
	words := make([]string, 0, len(text)/8/tokensPerWordEstimate+1)
	scan(text, func(t Token) {
		if t.IsWord {
			words = append(words, NormalizeWord(t.Text))
		}
	})
	return words
}

// CountWords returns the number of word tokens in text without allocating
// normalized strings.
func CountWords(text string) int {
	n := 0
	scan(text, func(t Token) {
		if t.IsWord {
			n++
		}
	})
	return n
}
