// Package session drives the interactive drill state machine.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okhlin/cloze/internal/blank"
	"github.com/okhlin/cloze/internal/wordset"
)

// State enumerates the machine states.
type State int

// Session states.
const (
	StatePresenting State = iota
	StateAwaiting
	StateFinished
	StateTerminated
)

// Persister saves the cursor and the practiced-word log.
type Persister interface {
	SaveCursor(source string, value int) error
	AppendPracticed(word string) error
}

// OutcomeKind classifies the result of handling one input.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeCorrect OutcomeKind = iota
	OutcomeIncorrect
	OutcomePrevious
	OutcomeNoPrevious
	OutcomeQuit
)

// Outcome reports what an input did. PersistErr carries a non-fatal
// persistence failure for the caller to surface.
type Outcome struct {
	Kind       OutcomeKind
	Sentence   string
	Answer     string
	PersistErr error
}

// Session owns the cursor, the current drill, and the previous-drill memory.
type Session struct {
	source    string
	sentences []string
	selector  *blank.Selector
	practiced *wordset.Set
	persist   Persister

	state State
	index int
	drill blank.Drill
	prev  *prevDrill
}

// prevDrill remembers the last answered sentence in its original form, so
// show-previous never has to reverse the placeholder substitution.
type prevDrill struct {
	sentence string
	answer   string
}

// New builds a session starting at the given sentence index.
func New(source string, sentences []string, selector *blank.Selector, practiced *wordset.Set, persist Persister, start int) *Session {
	if start < 0 {
		start = 0
	}
	return &Session{
		source:    source,
		sentences: sentences,
		selector:  selector,
		practiced: practiced,
		persist:   persist,
		state:     StatePresenting,
		index:     start,
	}
}

// State returns the current machine state.
func (s *Session) State() State {
	return s.state
}

// Index returns the 0-based index of the current sentence.
func (s *Session) Index() int {
	return s.index
}

// Total returns the number of sentences.
func (s *Session) Total() int {
	return len(s.sentences)
}

// Position returns the 1-based position of the current sentence.
func (s *Session) Position() int {
	return s.index + 1
}

// Drill returns the active drill. Valid only in StateAwaiting.
func (s *Session) Drill() blank.Drill {
	return s.drill
}

// Present moves from Presenting to Awaiting by blanking the current
// sentence. Sentences with no blankable token are skipped in memory only;
// the skip is not persisted, so an interrupted run re-attempts the same
// sentence on resume.
func (s *Session) Present() State {
	if s.state != StatePresenting {
		return s.state
	}
	for s.index < len(s.sentences) {
		drill, ok := s.selector.Pick(s.sentences[s.index])
		if !ok {
			s.index++
			continue
		}
		s.drill = drill
		s.state = StateAwaiting
		return s.state
	}
	s.state = StateFinished
	return s.state
}

// HandleInput processes one line of user input in StateAwaiting: the quit
// and show-previous commands, or an answer attempt. Jump targets arrive via
// Jump because collecting the number is the caller's concern.
func (s *Session) HandleInput(input string) Outcome {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "q":
		return s.quit()
	case "p":
		return s.previous()
	}
	return s.answer(trimmed)
}

func (s *Session) quit() Outcome {
	err := s.persist.SaveCursor(s.source, s.index)
	s.state = StateTerminated
	return Outcome{Kind: OutcomeQuit, PersistErr: err}
}

func (s *Session) previous() Outcome {
	if s.prev == nil {
		return Outcome{Kind: OutcomeNoPrevious}
	}
	return Outcome{
		Kind:     OutcomePrevious,
		Sentence: s.prev.sentence,
		Answer:   s.prev.answer,
	}
}

func (s *Session) answer(input string) Outcome {
	if input != s.drill.Answer {
		return Outcome{Kind: OutcomeIncorrect, Answer: s.drill.Answer}
	}

	// Blanking is lossless, so the original sentence is the exact restored
	// form; substituting the placeholder back could hit a literal
	// underscore run in the surrounding filler instead.
	full := s.sentences[s.index]
	var persistErr error
	if err := s.persist.AppendPracticed(s.drill.Answer); err != nil {
		persistErr = err
	}
	s.practiced.Add(s.drill.Answer)
	if err := s.persist.SaveCursor(s.source, s.index+1); err != nil && persistErr == nil {
		persistErr = err
	}

	s.prev = &prevDrill{sentence: full, answer: s.drill.Answer}
	s.index++
	s.state = StatePresenting
	return Outcome{
		Kind:       OutcomeCorrect,
		Sentence:   full,
		Answer:     s.drill.Answer,
		PersistErr: persistErr,
	}
}

// Jump parses a 1-based sentence number and moves the session there without
// persisting. Parse failures and out-of-range targets leave the state
// untouched.
func (s *Session) Jump(input string) error {
	target, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("invalid sentence number: %q", strings.TrimSpace(input))
	}
	if target < 1 || target > len(s.sentences) {
		return fmt.Errorf("sentence number out of range (1-%d)", len(s.sentences))
	}
	s.index = target - 1
	s.state = StatePresenting
	return nil
}
