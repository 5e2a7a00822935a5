package importer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxUsers     = 20
	MaxQuestions = 50
)

// ErrOrphanField is returned in legacy mode when an answer line appears
// before any question line.
var ErrOrphanField = errors.New("answer line without a question")

// Options tunes question parsing.
type Options struct {
	// LegacyAnswerGuard keeps the historical rule where an "Answer..." line
	// is treated as a field even before the first question.
	LegacyAnswerGuard bool
}

// ParseQuestions turns question-bank text into records. Lines that are
// neither questions nor answers are skipped silently.
func ParseQuestions(text string, opts Options) ([]Record, error) {
	var acc Accumulator
	n := 0
	for line := range Lines(text) {
		n++
		switch Classify(line, ModeQuestions, acc.Open(), opts.LegacyAnswerGuard) {
		case KindRecordStart:
			acc.Start(line, stripPromptLabel(line))
		case KindField:
			field, correct := StripCorrectMarker(line)
			if !acc.Add(stripAnswerLabel(field), correct) {
				return nil, fmt.Errorf("line %d: %w", n, ErrOrphanField)
			}
		case KindIgnored:
		}
	}
	return acc.Records(), nil
}

// ParseUsers returns the valid phone numbers found in the first column of
// each line, in order. Invalid entries are dropped.
func ParseUsers(text string) []string {
	users := []string{}
	for line := range Lines(text) {
		if Classify(line, ModeUsers, false, false) != KindRecordStart {
			continue
		}
		phone, _, _ := strings.Cut(line, ",")
		if phone = strings.TrimSpace(phone); ValidPhone(phone) {
			users = append(users, phone)
		}
	}
	return users
}

// Truncate keeps at most max leading elements of s.
func Truncate[T any](s []T, max int) []T {
	if max < 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
