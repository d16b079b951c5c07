package validate

import (
	"strings"
	"unicode"

	"github.com/manav03panchal/workflowr/internal/model"
)

// SanitizeName trims whitespace and drops control characters.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	for _, r := range name {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeNote cleans a description or note for storage.
func SanitizeNote(note string) string {
	note = strings.TrimSpace(note)
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return StripControlChars(note)
}

// StripControlChars removes control characters except newlines and tabs.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TruncateString shortens s to maxLen runes, ending in "..." when cut.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SafeFilename converts a string into something usable as a file name.
// Whitespace becomes underscores.
func SafeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"\x00", "",
	)
	s = replacer.Replace(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "_")
	s = strings.Trim(s, ".")

	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// SanitizeProjectInput cleans every non-nil text field in place.
func SanitizeProjectInput(in *model.ProjectInput) {
	cleanField(in.Name, SanitizeName)
	cleanField(in.ClientName, SanitizeName)
	cleanField(in.Description, SanitizeNote)
}

// SanitizeTaskInput cleans every non-nil text field in place.
func SanitizeTaskInput(in *model.TaskInput) {
	cleanField(in.ProjectID, strings.TrimSpace)
	cleanField(in.Name, SanitizeName)
	cleanField(in.Description, SanitizeNote)
}

func cleanField(p *string, clean func(string) string) {
	if p != nil {
		*p = clean(*p)
	}
}
