package domain

import "strings"

// SanitizeText prepares user-submitted free text for storage:
//   - trims leading/trailing whitespace
//   - strips '<' and '>' to keep markup out of notes and posts
//   - caps the result at MaxNoteLen runes
func SanitizeText(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range s {
		if r == '<' || r == '>' {
			continue
		}
		if n == MaxNoteLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// SanitizeOptionalText applies SanitizeText and collapses empty results to nil.
func SanitizeOptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	s := SanitizeText(*input)
	if s == "" {
		return nil
	}
	return &s
}
