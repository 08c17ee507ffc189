// Package progress persists the sentence cursor and the practiced-word log.
package progress

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okhlin/cloze/internal/wordset"
)

const practicedFile = "practiced_words.txt"

// Store keeps per-source cursor files and the practiced-word log in one
// directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) cursorPath(source string) string {
	return filepath.Join(s.dir, filepath.Base(source)+".progress")
}

// LoadCursor reads the saved sentence index for a source. A missing or
// malformed file yields 0.
func (s *Store) LoadCursor(source string) int {
	data, err := os.ReadFile(s.cursorPath(source))
	if err != nil {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// SaveCursor overwrites the saved sentence index for a source.
func (s *Store) SaveCursor(source string, value int) error {
	if err := os.WriteFile(s.cursorPath(source), []byte(strconv.Itoa(value)), 0o644); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// AppendPracticed appends one word to the practiced-word log.
func (s *Store) AppendPracticed(word string) error {
	file, err := os.OpenFile(filepath.Join(s.dir, practicedFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open practiced log: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after append.
			_ = cerr
		}
	}()
	if _, err := file.WriteString(word + "\n"); err != nil {
		return fmt.Errorf("failed to append practiced word: %w", err)
	}
	return nil
}

// LoadPracticed reads the practiced-word log back into a set. A missing log
// yields an empty set.
func (s *Store) LoadPracticed() (*wordset.Set, error) {
	return wordset.Load(filepath.Join(s.dir, practicedFile))
}
