package scandir

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func names(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	sort.Strings(out)
	return out
}

func TestScanFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.pdf"), 10)
	writeFile(t, filepath.Join(root, "skip.tmp"), 10)
	writeFile(t, filepath.Join(root, "sub", "nested.docx"), 10)
	writeFile(t, filepath.Join(root, "node_modules", "dep.pdf"), 10)
	writeFile(t, filepath.Join(root, "big.pdf"), 3*1024*1024)

	s := New(Filters{
		ExcludeExtensions: []string{".tmp"},
		ExcludeFolders:    []string{"node_modules"},
		MaxFileSizeMB:     2,
	})

	files, err := s.Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := names(files)
	want := []string{"keep.pdf", "nested.docx"}
	if len(got) != len(want) {
		t.Fatalf("Scan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Scan = %v, want %v", got, want)
		}
	}
}

func TestScanIncludeList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "doc.pdf"), 1)
	writeFile(t, filepath.Join(root, "doc.docx"), 1)
	writeFile(t, filepath.Join(root, "doc.mp3"), 1)

	s := New(Filters{IncludeExtensions: []string{"pdf", ".DOCX"}})
	files, err := s.Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := names(files)
	if len(got) != 2 || got[0] != "doc.docx" || got[1] != "doc.pdf" {
		t.Fatalf("Scan = %v, want [doc.docx doc.pdf]", got)
	}
}

func TestScanCompoundExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bundle.tar.gz"), 1)

	s := New(Filters{ExcludeExtensions: []string{".tar.gz"}})
	files, err := s.Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("compound extension should be excluded, got %v", files)
	}
}

func TestScanInvalidRoot(t *testing.T) {
	s := New(Filters{})
	if _, err := s.Scan(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("expected an error for a missing root")
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, 1)
	if _, err := s.Scan(file, nil); err == nil {
		t.Fatal("expected an error when root is a file")
	}
}

func TestScanProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"), 1)
	writeFile(t, filepath.Join(root, "b.pdf"), 1)
	writeFile(t, filepath.Join(root, "c.tmp"), 1)

	s := New(Filters{ExcludeExtensions: []string{".tmp"}})

	var calls int
	var lastCurrent, lastTotal int
	files, err := s.Scan(root, func(current, total int) {
		calls++
		lastCurrent, lastTotal = current, total
	})
	if err != nil {
		t.Fatal(err)
	}
	// Progress covers every walked file, including filtered ones.
	if calls != 3 || lastCurrent != 3 || lastTotal != 3 {
		t.Errorf("progress calls=%d current=%d total=%d, want 3/3/3", calls, lastCurrent, lastTotal)
	}
	if len(files) != 2 {
		t.Errorf("Scan returned %d files, want 2", len(files))
	}
}
