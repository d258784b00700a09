package internal

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SanitizeFilename creates a safe, lower-case filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ExportFileName names a missed-word export for a level.
// Format: missed_<level>_<yyyymmdd_hhmmss>.csv
func ExportFileName(levelID string, t time.Time) string {
	return fmt.Sprintf("missed_%s_%s.csv", SanitizeFilename(levelID), t.Format("20060102_150405"))
}
