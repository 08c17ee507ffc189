package textproc

import "unicode"

// Sentence terminators, ASCII and CJK.
const terminators = ".!?。！？"

func isTerminator(r rune) bool {
	for _, t := range terminators {
		if r == t {
			return true
		}
	}
	return false
}

// SplitSentences splits normalized text into sentences. A boundary sits after
// a terminator when the next non-whitespace rune is not itself a terminator;
// the whitespace between them is consumed. Fragments of one rune or less are
// dropped.
func SplitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	appendSentence := func(s []rune) {
		if len(s) > 1 {
			sentences = append(sentences, string(s))
		}
	}
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		next := i + 1
		for next < len(runes) && unicode.IsSpace(runes[next]) {
			next++
		}
		if next >= len(runes) || isTerminator(runes[next]) {
			continue
		}
		appendSentence(runes[start : i+1])
		start = next
		i = next - 1
	}
	if start < len(runes) {
		appendSentence(runes[start:])
	}
	return sentences
}
