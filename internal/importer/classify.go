package importer

import "strings"

// Mode selects the line grammar of an upload.
type Mode int

const (
	ModeUsers Mode = iota
	ModeQuestions
)

func (m Mode) String() string {
	switch m {
	case ModeUsers:
		return "users"
	case ModeQuestions:
		return "questions"
	default:
		return "unknown"
	}
}

// Kind is the classification of a single trimmed line.
type Kind int

const (
	KindIgnored Kind = iota
	KindRecordStart
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindRecordStart:
		return "record-start"
	case KindField:
		return "field"
	default:
		return "ignored"
	}
}

// Classify decides what a trimmed line contributes. open reports whether a
// record is currently being accumulated. In user mode every line with a
// non-blank first column starts a record.
//
// With legacy set, a line beginning with "Answer" counts as a field even when
// no record is open; older uploads were parsed that way and failed as a whole.
func Classify(line string, mode Mode, open, legacy bool) Kind {
	switch mode {
	case ModeUsers:
		if first, _, _ := strings.Cut(line, ","); strings.TrimSpace(first) == "" {
			return KindIgnored
		}
		return KindRecordStart
	case ModeQuestions:
		if strings.HasPrefix(line, "Q") || strings.HasPrefix(line, "Question") {
			return KindRecordStart
		}
		if open && (strings.HasPrefix(line, "A") || strings.HasPrefix(line, "Answer")) {
			return KindField
		}
		if legacy && strings.HasPrefix(line, "Answer") {
			return KindField
		}
		return KindIgnored
	default:
		return KindIgnored
	}
}
