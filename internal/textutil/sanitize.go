package textutil

import "strings"

const maxSegmentLength = 200

// segmentReplacer maps filesystem-invalid characters to underscores.
var segmentReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeName makes a string safe to use as a single path segment: invalid
// characters become underscores, internal whitespace collapses to single
// spaces, and the result is truncated to 200 characters.
func SanitizeName(name string) string {
	sanitized := segmentReplacer.Replace(name)
	sanitized = strings.Join(strings.Fields(sanitized), " ")
	if runes := []rune(sanitized); len(runes) > maxSegmentLength {
		sanitized = string(runes[:maxSegmentLength])
	}
	return sanitized
}
