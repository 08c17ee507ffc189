// Package wordset provides file-backed word collections.
package wordset

import (
	"bufio"
	"os"
	"strings"
)

// Set holds words with exact-case and case-folded membership.
type Set struct {
	exact  map[string]struct{}
	folded map[string]struct{}
}

// New returns an empty set.
func New() *Set {
	return &Set{
		exact:  map[string]struct{}{},
		folded: map[string]struct{}{},
	}
}

// Load reads one word per line from the provided file path, skipping blank
// lines. A missing file yields an empty set, not an error.
func Load(path string) (*Set, error) {
	set := New()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		set.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// Add inserts a word, preserving its case for exact lookups.
func (s *Set) Add(word string) {
	s.exact[word] = struct{}{}
	s.folded[strings.ToLower(word)] = struct{}{}
}

// Contains reports exact-case membership.
func (s *Set) Contains(word string) bool {
	_, ok := s.exact[word]
	return ok
}

// ContainsFold reports membership with both sides lower-cased.
func (s *Set) ContainsFold(word string) bool {
	_, ok := s.folded[strings.ToLower(word)]
	return ok
}

// Len returns the number of distinct exact-case words.
func (s *Set) Len() int {
	return len(s.exact)
}
