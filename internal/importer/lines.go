package importer

import (
	"iter"
	"strings"
)

// Lines yields the non-blank lines of text, trimmed, in order. The sequence
// re-scans text on every range, so it can be iterated any number of times.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for len(rest) > 0 {
			var line string
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				line, rest = rest[:i], rest[i+1:]
			} else {
				line, rest = rest, ""
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}
