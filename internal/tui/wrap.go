// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps text to the given display width, breaking at spaces when
// possible and mid-run otherwise (CJK text has no spaces to break at).
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out strings.Builder
	runes := []rune(text)
	line := make([]rune, 0, len(runes))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(runes); {
		r := runes[i]
		w := runewidth.RuneWidth(r)
		if lineWidth+w > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(string(line[:lastSpace]))
				out.WriteRune('\n')
				line = append([]rune{}, line[lastSpace+1:]...)
			} else {
				out.WriteString(string(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			lastSpace = lastSpaceIndex(line)
			continue
		}
		line = append(line, r)
		lineWidth += w
		if r == ' ' {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(string(line))
	return out.String()
}

func lineWidthOf(line []rune) int {
	total := 0
	for _, r := range line {
		total += runewidth.RuneWidth(r)
	}
	return total
}

func lastSpaceIndex(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}
