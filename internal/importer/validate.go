package importer

import (
	"regexp"
	"strings"
)

var (
	phoneRe = regexp.MustCompile(`^01[3-9]\d{8}$`)

	// detection is case-insensitive; stripping removes the first marker only
	markerRe      = regexp.MustCompile(`(?i)\(correct.*?\)`)
	answerLabelRe = regexp.MustCompile(`^(?:Answer|A)\s*(?:\d+|[A-Za-z])?\s*[-.:)]\s*`)
	promptLabelRe = regexp.MustCompile(`^(?:Question|Q)\s*\d*\s*[-.:)]\s*`)
)

// ValidPhone reports whether s is an 11 digit mobile number of the form
// 01[3-9]XXXXXXXX. No normalization is applied.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// StripCorrectMarker removes an inline "(correct)" or "(correct answer)"
// annotation from s and reports whether one was present.
func StripCorrectMarker(s string) (string, bool) {
	lower := strings.ToLower(s)
	correct := strings.Contains(lower, "(correct)") || strings.Contains(lower, "(correct answer)")
	if loc := markerRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}
	return strings.TrimSpace(s), correct
}

func stripAnswerLabel(s string) string {
	if loc := answerLabelRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	return strings.TrimSpace(s)
}

func stripPromptLabel(s string) string {
	if loc := promptLabelRe.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	return strings.TrimSpace(s)
}
