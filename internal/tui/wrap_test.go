package tui

import (
	"strings"
	"testing"
)

func TestWrapTextBreaksAtSpaces(t *testing.T) {
	out := wrapText("the quick brown fox", 10)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 10 {
			t.Fatalf("line too long: %q", line)
		}
	}
	if strings.ReplaceAll(out, "\n", " ") != "the quick brown fox" {
		t.Fatalf("wrapping lost content: %q", out)
	}
}

func TestWrapTextHardBreaksLongRuns(t *testing.T) {
	out := wrapText("abcdefghij", 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	if strings.Join(lines, "") != "abcdefghij" {
		t.Fatalf("wrapping lost content: %q", out)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	// Each ideograph is two cells wide, so only two fit per 4-cell line.
	out := wrapText("你好世界", 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines for wide runes, got %v", lines)
	}
}

func TestWrapTextZeroWidth(t *testing.T) {
	if out := wrapText("unchanged", 0); out != "unchanged" {
		t.Fatalf("expected unchanged text, got %q", out)
	}
}
