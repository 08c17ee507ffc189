package blank

import (
	"math/rand"
	"strings"
	"time"

	"github.com/okhlin/cloze/internal/wordset"
)

// Placeholder replaces the blanked core in a drill sentence.
const Placeholder = "_____"

// Drill is a sentence with one core blanked out and the expected answer.
type Drill struct {
	Blanked string
	Answer  string
}

// Selector picks which token to blank using a three-tier priority:
// unpracticed vocabulary words first, then any unpracticed non-high-frequency
// word, then any word at all.
type Selector struct {
	vocab     *wordset.Set
	highFreq  *wordset.Set
	practiced *wordset.Set
	rnd       *rand.Rand
}

// NewSelector builds a selector over the three word sets. A nil rnd is
// replaced with a time-seeded source; tests pass a fixed seed instead.
func NewSelector(vocab, highFreq, practiced *wordset.Set, rnd *rand.Rand) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{
		vocab:     vocab,
		highFreq:  highFreq,
		practiced: practiced,
		rnd:       rnd,
	}
}

// Pick blanks one token of the sentence. ok is false when the sentence has
// no blankable token; the caller skips such sentences.
func (s *Selector) Pick(sentence string) (Drill, bool) {
	tokens := Tokenize(sentence)

	var blankable []int
	for i, tok := range tokens {
		if tok.Core != "" {
			blankable = append(blankable, i)
		}
	}
	if len(blankable) == 0 {
		return Drill{}, false
	}

	var primary, secondary []int
	for _, i := range blankable {
		core := tokens[i].Core
		unseen := !s.highFreq.ContainsFold(core) && !s.practiced.ContainsFold(core)
		if s.vocab.Len() > 0 && unseen && s.vocab.Contains(core) && s.vocab.ContainsFold(core) {
			primary = append(primary, i)
		}
		if s.highFreq.Len() > 0 && unseen {
			secondary = append(secondary, i)
		}
	}

	var chosen int
	switch {
	case len(primary) > 0:
		chosen = primary[s.rnd.Intn(len(primary))]
	case len(secondary) > 0:
		chosen = secondary[s.rnd.Intn(len(secondary))]
	default:
		chosen = blankable[s.rnd.Intn(len(blankable))]
	}

	var b strings.Builder
	for i, tok := range tokens {
		if i == chosen {
			b.WriteString(Placeholder)
		} else {
			b.WriteString(tok.Core)
		}
		b.WriteString(tok.Suffix)
	}
	return Drill{Blanked: b.String(), Answer: tokens[chosen].Core}, true
}
