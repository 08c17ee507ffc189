// Package blank tokenizes sentences and picks one word to blank out.
package blank

import "unicode"

// Token is a word core plus the trailing filler up to the next core. A
// leading filler run is carried as a token with an empty core so the token
// sequence always reassembles the sentence exactly.
type Token struct {
	Core   string
	Suffix string
}

type runeClass int

const (
	classNone runeClass = iota
	classHan
	classLatin
)

func classOf(r rune) runeClass {
	switch {
	case unicode.Is(unicode.Han, r):
		return classHan
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return classLatin
	default:
		return classNone
	}
}

// Tokenize splits a sentence into tokens. Cores are maximal runs of Han
// ideographs or of Latin letters; a class change starts a new core.
func Tokenize(sentence string) []Token {
	runes := []rune(sentence)
	var tokens []Token

	i := 0
	for i < len(runes) && classOf(runes[i]) == classNone {
		i++
	}
	if i > 0 {
		tokens = append(tokens, Token{Suffix: string(runes[:i])})
	}

	for i < len(runes) {
		kind := classOf(runes[i])
		j := i
		for j < len(runes) && classOf(runes[j]) == kind {
			j++
		}
		k := j
		for k < len(runes) && classOf(runes[k]) == classNone {
			k++
		}
		tokens = append(tokens, Token{
			Core:   string(runes[i:j]),
			Suffix: string(runes[j:k]),
		})
		i = k
	}
	return tokens
}
