// Package category classifies files into document categories by extension.
package category

import "strings"

// Category is a closed enumeration of document categories. The display name
// doubles as the folder segment in the organized tree.
type Category int

const (
	Other Category = iota
	PDF
	Word
	Excel
	PowerPoint
	Images
	Video
	Audio
	Archives
	Code
)

var displayNames = map[Category]string{
	Other:      "Other",
	PDF:        "PDF",
	Word:       "Word",
	Excel:      "Excel",
	PowerPoint: "PowerPoint",
	Images:     "Images",
	Video:      "Video",
	Audio:      "Audio",
	Archives:   "Archives",
	Code:       "Code",
}

// String returns the display name used as a path segment.
func (c Category) String() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return displayNames[Other]
}

// Parse resolves a display name back to its Category. Unknown names map to
// Other.
func Parse(name string) (Category, bool) {
	for cat, display := range displayNames {
		if strings.EqualFold(display, strings.TrimSpace(name)) {
			return cat, true
		}
	}
	return Other, false
}

// compoundSuffixes are multi-part extensions recognized before the generic
// last-dot rule.
var compoundSuffixes = []string{".tar.gz", ".tar.bz2", ".tar.xz"}

// Extension returns the lower-cased extension of filename including the dot,
// recognizing compound archive suffixes. Files without a dot yield "".
func Extension(filename string) string {
	lower := strings.ToLower(filename)
	for _, suffix := range compoundSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return suffix
		}
	}
	if idx := strings.LastIndex(lower, "."); idx >= 0 {
		return lower[idx:]
	}
	return ""
}

// Table owns the extension to category mapping. Mutation happens only
// through Register and Remove.
type Table struct {
	byExtension map[string]Category
}

// NewTable builds a Table with the default extension mapping.
func NewTable() *Table {
	t := &Table{byExtension: make(map[string]Category, len(defaultExtensions))}
	for ext, cat := range defaultExtensions {
		t.byExtension[ext] = cat
	}
	return t
}

// Categorize determines the category of filename from its extension.
// Unmapped extensions resolve to Other.
func (t *Table) Categorize(filename string) Category {
	if cat, ok := t.byExtension[Extension(filename)]; ok {
		return cat
	}
	return Other
}

// Register adds or replaces an extension mapping. The extension is
// lower-cased and prefixed with a dot when missing.
func (t *Table) Register(extension string, cat Category) {
	t.byExtension[canonicalExtension(extension)] = cat
}

// Remove deletes an extension mapping if present.
func (t *Table) Remove(extension string) {
	delete(t.byExtension, canonicalExtension(extension))
}

// Extensions returns every registered extension for a category.
func (t *Table) Extensions(cat Category) []string {
	var exts []string
	for ext, c := range t.byExtension {
		if c == cat {
			exts = append(exts, ext)
		}
	}
	return exts
}

func canonicalExtension(extension string) string {
	extension = strings.ToLower(strings.TrimSpace(extension))
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return extension
}

var defaultExtensions = map[string]Category{
	".pdf": PDF,

	".doc": Word, ".docx": Word, ".docm": Word, ".dot": Word,
	".dotx": Word, ".dotm": Word, ".odt": Word, ".rtf": Word,

	".xls": Excel, ".xlsx": Excel, ".xlsm": Excel, ".xlsb": Excel,
	".xlt": Excel, ".xltx": Excel, ".xltm": Excel, ".xlam": Excel,
	".ods": Excel, ".csv": Excel,

	".ppt": PowerPoint, ".pptx": PowerPoint, ".pptm": PowerPoint,
	".pot": PowerPoint, ".potx": PowerPoint, ".potm": PowerPoint,
	".pps": PowerPoint, ".ppsx": PowerPoint, ".ppsm": PowerPoint,
	".odp": PowerPoint,

	".jpg": Images, ".jpeg": Images, ".png": Images, ".gif": Images,
	".bmp": Images, ".tiff": Images, ".tif": Images, ".svg": Images,
	".webp": Images, ".ico": Images, ".raw": Images, ".cr2": Images,
	".nef": Images, ".arw": Images, ".dng": Images, ".psd": Images,
	".ai": Images, ".eps": Images,

	".mp4": Video, ".avi": Video, ".mkv": Video, ".mov": Video,
	".wmv": Video, ".flv": Video, ".webm": Video, ".m4v": Video,
	".3gp": Video, ".mpg": Video, ".mpeg": Video, ".ts": Video,
	".vob": Video,

	".mp3": Audio, ".wav": Audio, ".flac": Audio, ".aac": Audio,
	".ogg": Audio, ".wma": Audio, ".m4a": Audio, ".opus": Audio,
	".aiff": Audio, ".au": Audio,

	".zip": Archives, ".rar": Archives, ".7z": Archives, ".tar": Archives,
	".gz": Archives, ".bz2": Archives, ".xz": Archives, ".tar.gz": Archives,
	".tar.bz2": Archives, ".tar.xz": Archives, ".iso": Archives,
	".dmg": Archives,

	".py": Code, ".js": Code, ".html": Code, ".htm": Code, ".css": Code,
	".php": Code, ".java": Code, ".cpp": Code, ".c": Code, ".h": Code,
	".cs": Code, ".vb": Code, ".rb": Code, ".go": Code, ".rs": Code,
	".swift": Code, ".kt": Code, ".scala": Code, ".r": Code, ".sql": Code,
	".xml": Code, ".json": Code, ".yaml": Code, ".yml": Code, ".toml": Code,
	".ini": Code, ".cfg": Code, ".conf": Code, ".sh": Code, ".bat": Code,
	".ps1": Code, ".md": Code, ".txt": Code,
}
