package organizer

import (
	"path"
	"strings"
	"time"

	"docshelf/internal/category"
	"docshelf/internal/textutil"
)

// SuggestedPath builds the relative destination "Company/Category/Year/
// filename". When a date is known the filename gains a YYYY-MM-DD prefix.
// Every derived segment passes through sanitization.
func SuggestedPath(company string, cat category.Category, year, filename string, date time.Time, hasDate bool) string {
	name := filename
	if hasDate {
		name = OrganizedFilename(filename, date)
	}
	return path.Join(
		textutil.SanitizeName(company),
		textutil.SanitizeName(cat.String()),
		textutil.SanitizeName(year),
		name,
	)
}

// OrganizedFilename rewrites filename to "YYYY-MM-DD_stem.ext".
func OrganizedFilename(filename string, date time.Time) string {
	stem := filename
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		stem = filename[:idx]
		ext = filename[idx:]
	}
	return textutil.SanitizeName(date.Format("2006-01-02") + "_" + stem + ext)
}
