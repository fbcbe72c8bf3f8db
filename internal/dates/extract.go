// Package dates recovers calendar dates from filenames with a filesystem
// mtime fallback.
package dates

import (
	"os"
	"regexp"
	"strconv"
	"time"
)

type pattern struct {
	re    *regexp.Regexp
	parse func(groups []string) (year, month, day int)
}

// Extractor tries an ordered set of date patterns against filenames.
type Extractor struct {
	patterns []pattern
}

// NewExtractor builds the default pattern set, tried in order:
// YYYY-MM-DD, DD[-/]MM[-/]YYYY, YYYY/MM/DD, YYYYMMDD, DD[-/]MM[-/]YY.
func NewExtractor() *Extractor {
	return &Extractor{patterns: []pattern{
		{
			re: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
			parse: func(g []string) (int, int, int) {
				return atoi(g[1]), atoi(g[2]), atoi(g[3])
			},
		},
		{
			re: regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`),
			parse: func(g []string) (int, int, int) {
				return atoi(g[3]), atoi(g[2]), atoi(g[1])
			},
		},
		{
			re: regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`),
			parse: func(g []string) (int, int, int) {
				return atoi(g[1]), atoi(g[2]), atoi(g[3])
			},
		},
		{
			re: regexp.MustCompile(`(\d{8})`),
			parse: func(g []string) (int, int, int) {
				return atoi(g[1][:4]), atoi(g[1][4:6]), atoi(g[1][6:8])
			},
		},
		{
			// Two-digit years are assumed to be 2000 onward.
			re: regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2})`),
			parse: func(g []string) (int, int, int) {
				return 2000 + atoi(g[3]), atoi(g[2]), atoi(g[1])
			},
		},
	}}
}

// FromFilename returns the first structurally valid date found in name.
// Validity is bounds-only: 1900-2100 for the year, 1-12 for the month,
// 1-31 for the day.
func (e *Extractor) FromFilename(name string) (time.Time, bool) {
	for _, p := range e.patterns {
		groups := p.re.FindStringSubmatch(name)
		if groups == nil {
			continue
		}
		year, month, day := p.parse(groups)
		if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, false
}

// FromFileStats returns the file's last-modified date, used only when no
// filename pattern matched.
func (e *Extractor) FromFileStats(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	mod := info.ModTime()
	return time.Date(mod.Year(), mod.Month(), mod.Day(), 0, 0, 0, 0, time.Local), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
