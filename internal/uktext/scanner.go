package uktext

import "unicode/utf8"

// isUkrainianLetter reports whether r can start a word: the Cyrillic а-я
// range in either case, plus the Ukrainian letters і, ї, є, ґ.
func isUkrainianLetter(r rune) bool {
	switch {
	case r >= 'а' && r <= 'я':
		return true
	case r >= 'А' && r <= 'Я':
		return true
	}
	switch r {
	case 'і', 'ї', 'є', 'ґ', 'І', 'Ї', 'Є', 'Ґ':
		return true
	}
	return false
}

// isWordContinuation reports whether r can extend a word already begun:
// letters, the ASCII apostrophe, the modifier-letter apostrophe (U+02BC),
// and combining diacritical marks (U+0300–U+036F, stress accents included).
// Combining marks cannot start a word: a detached diacritic with no base
// letter is non-word text.
func isWordContinuation(r rune) bool {
	if isUkrainianLetter(r) {
		return true
	}
	if r == '\'' || r == 'ʼ' {
		return true
	}
	return r >= 0x0300 && r <= 0x036F
}

// scan walks s once, tracking both byte and rune positions, and calls emit
// for every maximal span. Word spans are maximal runs matching the Ukrainian
// word pattern; everything between two words (including leading and trailing
// text) is a single non-word span. Token text is sliced by byte so
// reconstruction is exact even for invalid UTF-8, while offsets count runes.
func scan(s string, emit func(t Token)) {
	byteIdx, runeIdx := 0, 0
	pendingByte, pendingRune := 0, 0 // start of the current non-word run

	for byteIdx < len(s) {
		r, size := utf8.DecodeRuneInString(s[byteIdx:])
		if !isUkrainianLetter(r) {
			byteIdx += size
			runeIdx++
			continue
		}

		// Flush the non-word run before this word, if any.
		if byteIdx > pendingByte {
			emit(Token{
				Text:  s[pendingByte:byteIdx],
				Start: pendingRune,
				End:   runeIdx,
			})
		}

		wordByte, wordRune := byteIdx, runeIdx
		byteIdx += size
		runeIdx++
		for byteIdx < len(s) {
			nr, ns := utf8.DecodeRuneInString(s[byteIdx:])
			if !isWordContinuation(nr) {
				break
			}
			byteIdx += ns
			runeIdx++
		}

		emit(Token{
			Text:   s[wordByte:byteIdx],
			Start:  wordRune,
			End:    runeIdx,
			IsWord: true,
		})
		pendingByte, pendingRune = byteIdx, runeIdx
	}

	if len(s) > pendingByte {
		emit(Token{
			Text:  s[pendingByte:],
			Start: pendingRune,
			End:   runeIdx,
		})
	}
}
