package image

import (
	"iter"
	"strings"
)

// MeasureFunc reports the rendered width of s in pixels.
type MeasureFunc func(s string) float64

// WrapText breaks text into lines no wider than maxWidth, filling each line
// greedily. Words are separated by single spaces only. A word that is wider
// than maxWidth on its own is emitted as its own line rather than split.
// The returned sequence may be ranged over any number of times.
func WrapText(text string, maxWidth float64, measure MeasureFunc) iter.Seq[string] {
	return func(yield func(string) bool) {
		current := ""
		for _, word := range strings.Split(text, " ") {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}

			if measure(candidate) > maxWidth && current != "" {
				if !yield(current) {
					return
				}
				current = word
			} else {
				current = candidate
			}
		}
		if current != "" {
			yield(current)
		}
	}
}

// LimitLines keeps at most maxLines lines of seq. Extra lines are dropped
// without any overflow marker.
func LimitLines(seq iter.Seq[string], maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	lines := make([]string, 0, min(maxLines, 8))
	for line := range seq {
		lines = append(lines, line)
		if len(lines) == maxLines {
			break
		}
	}
	return lines
}
