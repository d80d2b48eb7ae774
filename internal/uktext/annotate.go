package uktext

// Annotate tokenizes text and resolves a stage for every token against the
// supplied sets of normalized words. Known wins over learning wins over new;
// a word present in both sets (the store should prevent this, but it is
// tolerated here) resolves to known. Non-word tokens always get StageNew.
//
// The sets are read-only snapshots for the duration of the call. Annotate
// holds no state between calls: after a stage mutation the caller re-runs it
// with fresh sets.
func Annotate(text string, known, learning map[string]bool) AnnotatedText {
	tokens := Tokenize(text)
	annotated := make([]AnnotatedToken, len(tokens))
	for i, tok := range tokens {
		stage := StageNew
		if tok.IsWord {
			switch normalized := NormalizeWord(tok.Text); {
			case known[normalized]:
				stage = StageKnown
			case learning[normalized]:
				stage = StageLearning
			}
		}
		annotated[i] = AnnotatedToken{Token: tok, Stage: stage}
	}
	return AnnotatedText{Original: text, Tokens: annotated}
}
