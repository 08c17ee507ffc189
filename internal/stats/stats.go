// Package stats contains run statistics calculations and reporting.
package stats

import (
	"math"
	"os"

	"golang.org/x/term"
)

const sparkChars = " .:-=+*#%@"

const terminalWidthBackup = 80

// Accuracy computes the correct ratio for a set of attempts.
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	chars := []rune(sparkChars)
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if max > min {
			idx = int((v - min) / (max - min) * float64(len(chars)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		out[i] = chars[idx]
	}
	return string(out)
}

// TerminalWidth returns the stdout width or a fallback when unavailable.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
