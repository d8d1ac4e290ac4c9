package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/fsclean/pkg/fsclean/changelog"
	"github.com/jamesainslie/fsclean/pkg/fsclean/logging"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		style     Style
		spaceChar string
		want      string
	}{
		{"report.txt", StyleNone, "", "report.txt"},
		{" draft .txt", StyleNone, "", "draft.txt"},
		{"_notes_.md", StyleNone, "", "notes.md"},
		{"-archive-.tar", StyleNone, "", "archive.tar"},
		{"my  spaced   file.txt", StyleNone, "", "my spaced file.txt"},
		{"photo.JPG", StyleNone, "", "photo.jpg"},
		{"doc . txt", StyleNone, "", "doc.txt"},
		{"a..b", StyleNone, "", "a.b"},
		{"foo_.txt", StyleNone, "", "foo.txt"},
		{".bashrc", StyleNone, "", ".bashrc"},
		{"README.TXT", StyleLowercase, "", "readme.txt"},
		{"annual report.txt", StyleTitlecase, "", "Annual Report.txt"},
		{"aNNUAL rEPORT.txt", StyleCapitalized, "", "Annual report.txt"},
		{"loud file.txt", StyleUppercase, "", "LOUD FILE.txt"},
		{"my file.txt", StyleNone, "_", "my_file.txt"},
		{"one two three.txt", StyleNone, "-", "one-two-three.txt"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.name, tt.style, tt.spaceChar); got != tt.want {
			t.Errorf("Normalize(%q, %q, %q) = %q, want %q",
				tt.name, tt.style, tt.spaceChar, got, tt.want)
		}
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		filename string
		name     string
		ext      string
	}{
		{"report.txt", "report", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing", "."},
	}

	for _, tt := range tests {
		name, ext := splitName(tt.filename)
		if name != tt.name || ext != tt.ext {
			t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)",
				tt.filename, name, ext, tt.name, tt.ext)
		}
	}
}

func TestParseStyle(t *testing.T) {
	for _, name := range StyleNames {
		if _, err := ParseStyle(name); err != nil {
			t.Errorf("ParseStyle(%q): %v", name, err)
		}
	}

	if style, err := ParseStyle(""); err != nil || style != StyleNone {
		t.Errorf("ParseStyle(\"\") = (%q, %v), want StyleNone", style, err)
	}
	if style, err := ParseStyle("  TitleCase "); err != nil || style != StyleTitlecase {
		t.Errorf("ParseStyle with padding and case = (%q, %v)", style, err)
	}
	if _, err := ParseStyle("camel"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRenamesInconsistentNames(t *testing.T) {
	dir := t.TempDir()
	messy := touch(t, dir, " messy  file .TXT")
	clean := touch(t, dir, "clean.txt")

	cl := changelog.New()
	r := New(Options{}, logging.Nop())
	if err := r.Run(dir, cl); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Lstat(messy); !os.IsNotExist(err) {
		t.Errorf("source still present: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(dir, "messy file.txt")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Lstat(clean); err != nil {
		t.Errorf("consistent name was touched: %v", err)
	}

	entries := cl.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d ledger entries, want 1", len(entries))
	}
	e := entries[0]
	if !e.Executed || e.Src != messy || e.Dest != filepath.Join(dir, "messy file.txt") {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestRunRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "file .txt")
	dest := touch(t, dir, "file.txt")

	cl := changelog.New()
	r := New(Options{}, logging.Nop())
	if err := r.Run(dir, cl); err != nil {
		t.Fatal(err)
	}

	// Both files survive; the collision lands in the ledger.
	if _, err := os.Lstat(src); err != nil {
		t.Errorf("source removed despite occupied destination: %v", err)
	}
	if _, err := os.Lstat(dest); err != nil {
		t.Errorf("destination disturbed: %v", err)
	}

	entries := cl.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d ledger entries, want 1", len(entries))
	}
	if entries[0].Executed || entries[0].Message == "" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	src := touch(t, dir, "padded .txt")

	cl := changelog.New()
	r := New(Options{DryRun: true}, logging.Nop())
	if err := r.Run(dir, cl); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Lstat(src); err != nil {
		t.Errorf("dry run renamed a file: %v", err)
	}
	entries := cl.Entries()
	if len(entries) != 1 || entries[0].Executed {
		t.Fatalf("unexpected ledger state: %+v", entries)
	}
	if entries[0].Dest != filepath.Join(dir, "padded.txt") {
		t.Errorf("planned destination: got %q", entries[0].Dest)
	}
}

func TestRunRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, sub, "inner .txt")

	cl := changelog.New()
	r := New(Options{Recursive: true}, logging.Nop())
	if err := r.Run(dir, cl); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Lstat(filepath.Join(sub, "inner.txt")); err != nil {
		t.Errorf("nested rename missing: %v", err)
	}
}
