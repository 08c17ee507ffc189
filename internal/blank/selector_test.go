package blank

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/okhlin/cloze/internal/wordset"
)

func newTestSelector(vocab, highFreq, practiced []string, seed int64) *Selector {
	toSet := func(words []string) *wordset.Set {
		set := wordset.New()
		for _, w := range words {
			set.Add(w)
		}
		return set
	}
	rnd := rand.New(rand.NewSource(seed))
	return NewSelector(toSet(vocab), toSet(highFreq), toSet(practiced), rnd)
}

func TestPickPrefersVocabulary(t *testing.T) {
	sel := newTestSelector([]string{"apple"}, []string{"the"}, nil, 1)
	for i := 0; i < 50; i++ {
		drill, ok := sel.Pick("The apple is red.")
		if !ok {
			t.Fatalf("expected a drill")
		}
		if drill.Answer != "apple" {
			t.Fatalf("expected apple to be blanked, got %q", drill.Answer)
		}
		if drill.Blanked != "The "+Placeholder+" is red." {
			t.Fatalf("unexpected blanked sentence: %q", drill.Blanked)
		}
	}
}

func TestPickSecondTierSkipsHighFrequencyAndPracticed(t *testing.T) {
	sel := newTestSelector(nil, []string{"the", "is"}, []string{"red"}, 2)
	for i := 0; i < 50; i++ {
		drill, ok := sel.Pick("The apple is red.")
		if !ok {
			t.Fatalf("expected a drill")
		}
		if drill.Answer != "apple" {
			t.Fatalf("expected apple (only unseen word), got %q", drill.Answer)
		}
	}
}

func TestPickFallbackReachesEveryToken(t *testing.T) {
	sel := newTestSelector(nil, nil, nil, 3)
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		drill, ok := sel.Pick("The cat sat.")
		if !ok {
			t.Fatalf("expected a drill")
		}
		seen[drill.Answer] = true
	}
	for _, word := range []string{"The", "cat", "sat"} {
		if !seen[word] {
			t.Fatalf("fallback never blanked %q", word)
		}
	}
}

func TestPickNeverBlanksLeadingFiller(t *testing.T) {
	sel := newTestSelector(nil, nil, nil, 4)
	for i := 0; i < 100; i++ {
		drill, ok := sel.Pick("\"The cat sat.\"")
		if !ok {
			t.Fatalf("expected a drill")
		}
		if drill.Answer == "" {
			t.Fatalf("blanked an empty core")
		}
		if !strings.HasPrefix(drill.Blanked, "\"") {
			t.Fatalf("leading filler lost: %q", drill.Blanked)
		}
	}
}

func TestPickFailsWithoutBlankableToken(t *testing.T) {
	sel := newTestSelector(nil, nil, nil, 5)
	for _, sentence := range []string{"", "... !!", "12345 678."} {
		if _, ok := sel.Pick(sentence); ok {
			t.Fatalf("expected no drill for %q", sentence)
		}
	}
}

func TestPickPreservesSuffixes(t *testing.T) {
	sel := newTestSelector(nil, nil, nil, 6)
	drill, ok := sel.Pick("Dogs bark, loudly!")
	if !ok {
		t.Fatalf("expected a drill")
	}
	restored := strings.Replace(drill.Blanked, Placeholder, drill.Answer, 1)
	if restored != "Dogs bark, loudly!" {
		t.Fatalf("suffixes not preserved: %q", drill.Blanked)
	}
}

func TestPickExactCaseVocabularyGuard(t *testing.T) {
	// "Apple" in the sentence is not an exact-case vocabulary member, so it
	// must not reach the first tier; with everything else excluded the
	// selector falls through to the second tier and still picks it there.
	sel := newTestSelector([]string{"apple"}, []string{"the", "is", "red"}, nil, 7)
	for i := 0; i < 50; i++ {
		drill, ok := sel.Pick("The Apple is red.")
		if !ok {
			t.Fatalf("expected a drill")
		}
		if drill.Answer != "Apple" {
			t.Fatalf("expected Apple via second tier, got %q", drill.Answer)
		}
	}
}
