package filesystem

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDirectoryExists(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		filePath string
	}{
		{"current directory", "feed.xml"},
		{"single directory", filepath.Join(tempDir, "public", "feed.xml")},
		{"nested directories", filepath.Join(tempDir, "a", "b", "c", "feed.xml")},
		{"path with spaces", filepath.Join(tempDir, "dir with spaces", "feed.xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := EnsureDirectoryExists(tt.filePath); err != nil {
				t.Fatalf("EnsureDirectoryExists(%q) error: %v", tt.filePath, err)
			}

			dir := filepath.Dir(tt.filePath)
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				t.Errorf("EnsureDirectoryExists(%q) did not create directory %q", tt.filePath, dir)
			}
		})
	}

	t.Run("parent is a file", func(t *testing.T) {
		file := filepath.Join(tempDir, "plain")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := EnsureDirectoryExists(filepath.Join(file, "feed.xml")); err == nil {
			t.Errorf("expected error when the parent is a regular file")
		}
	})
}

func TestGetDefaultPath(t *testing.T) {
	path, err := GetDefaultPath("blog-rss.yaml")
	if err != nil {
		t.Fatalf("GetDefaultPath() error: %v", err)
	}
	if filepath.Base(path) != "blog-rss.yaml" || !filepath.IsAbs(path) {
		t.Errorf("GetDefaultPath() = %q, want an absolute path ending in blog-rss.yaml", path)
	}
}

func TestWriteOutput_Stdout(t *testing.T) {
	for _, path := range []string{Stdout, ""} {
		var buf bytes.Buffer
		if err := WriteOutput(path, []byte("<rss/>"), &buf); err != nil {
			t.Fatalf("WriteOutput(%q) error: %v", path, err)
		}
		if buf.String() != "<rss/>" {
			t.Errorf("stdout = %q, want %q", buf.String(), "<rss/>")
		}
	}
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "rss.xml")

	var stdout bytes.Buffer
	for _, content := range []string{"first", "second"} {
		if err := WriteOutput(path, []byte(content), &stdout); err != nil {
			t.Fatalf("WriteOutput() error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error: %v", err)
		}
		if string(got) != content {
			t.Errorf("file content = %q, want %q", got, content)
		}
	}

	if stdout.Len() != 0 {
		t.Errorf("nothing should be written to stdout, got %q", stdout.String())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriteOutput_StdoutError(t *testing.T) {
	if err := WriteOutput(Stdout, []byte("x"), failingWriter{}); err == nil {
		t.Errorf("expected error from failing writer")
	}
}
