// Package scandir walks a directory tree applying extension, folder, and
// size filters.
package scandir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docshelf/internal/category"
)

// Filters narrows the set of files a scan yields. Zero values disable the
// corresponding filter.
type Filters struct {
	IncludeExtensions []string
	ExcludeExtensions []string
	ExcludeFolders    []string
	MaxFileSizeMB     float64
}

// Progress reports scan advancement as (current, total). Total is only
// known when the scanner ran its counting pass first.
type Progress func(current, total int)

// Scanner enumerates files under a root according to its filters.
type Scanner struct {
	include        map[string]struct{}
	exclude        map[string]struct{}
	excludeFolders map[string]struct{}
	maxBytes       int64
}

// New builds a Scanner. Extensions are lower-cased and dot-prefixed.
func New(filters Filters) *Scanner {
	s := &Scanner{
		exclude:        make(map[string]struct{}, len(filters.ExcludeExtensions)),
		excludeFolders: make(map[string]struct{}, len(filters.ExcludeFolders)),
	}
	if len(filters.IncludeExtensions) > 0 {
		s.include = make(map[string]struct{}, len(filters.IncludeExtensions))
		for _, ext := range filters.IncludeExtensions {
			s.include[canonicalExtension(ext)] = struct{}{}
		}
	}
	for _, ext := range filters.ExcludeExtensions {
		s.exclude[canonicalExtension(ext)] = struct{}{}
	}
	for _, folder := range filters.ExcludeFolders {
		s.excludeFolders[folder] = struct{}{}
	}
	if filters.MaxFileSizeMB > 0 {
		s.maxBytes = int64(filters.MaxFileSizeMB * 1024 * 1024)
	}
	return s
}

// Scan recursively enumerates files under root that survive the filters.
// When progress is non-nil a counting pass runs first so the callback
// receives a meaningful total.
func (s *Scanner) Scan(root string, progress Progress) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("invalid directory: %s", root)
	}

	total := 0
	if progress != nil {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				total++
			}
			return nil
		})
	}

	var files []string
	current := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		current++
		if progress != nil {
			progress(current, total)
		}
		if s.folderExcluded(root, path) {
			return nil
		}
		if !s.extensionAllowed(d.Name()) {
			return nil
		}
		if !s.sizeAllowed(d) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return files, nil
}

func (s *Scanner) folderExcluded(root, path string) bool {
	if len(s.excludeFolders) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	segments := strings.Split(rel, string(filepath.Separator))
	// The last segment is the filename, not a folder.
	for _, segment := range segments[:max(len(segments)-1, 0)] {
		if _, excluded := s.excludeFolders[segment]; excluded {
			return true
		}
	}
	return false
}

func (s *Scanner) extensionAllowed(filename string) bool {
	ext := category.Extension(filename)
	if _, excluded := s.exclude[ext]; excluded {
		return false
	}
	if s.include != nil {
		if _, included := s.include[ext]; !included {
			return false
		}
	}
	return true
}

// sizeAllowed fails open: when the size cannot be read the file is kept.
func (s *Scanner) sizeAllowed(d fs.DirEntry) bool {
	if s.maxBytes == 0 {
		return true
	}
	info, err := d.Info()
	if err != nil {
		return true
	}
	return info.Size() <= s.maxBytes
}

func canonicalExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
