package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"
)

// buildZip assembles an in-memory archive from name/content pairs.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func TestWalk(t *testing.T) {
	data := buildZip(t, map[string]string{
		"docs/readme.txt":      "readme content",
		"docs/guide.txt":       "guide content",
		"ppt/theme/theme1.xml": `<theme/>`,
		"config.yml":           "config content",
	})

	t.Run("walk with prefix", func(t *testing.T) {
		var visited []string
		err := Walk("test.zip", data, "docs/", func(name string, f *zip.File) error {
			visited = append(visited, f.Name)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if len(visited) != 2 {
			t.Fatalf("Walk() visited %v, want 2 entries", visited)
		}
	})

	t.Run("walk with exact path", func(t *testing.T) {
		var visited []string
		err := Walk("test.zip", data, "ppt/theme/theme1.xml", func(name string, f *zip.File) error {
			visited = append(visited, f.Name)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if len(visited) != 1 || visited[0] != "ppt/theme/theme1.xml" {
			t.Fatalf("Walk() visited %v, want exactly the theme part", visited)
		}
	})

	t.Run("walk with no matching prefix", func(t *testing.T) {
		calls := 0
		err := Walk("test.zip", data, "nothere/", func(name string, f *zip.File) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if calls != 0 {
			t.Fatalf("Walk() made %d calls, want 0", calls)
		}
	})

	t.Run("walk with empty prefix visits everything", func(t *testing.T) {
		calls := 0
		err := Walk("test.zip", data, "", func(name string, f *zip.File) error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if calls != 4 {
			t.Fatalf("Walk() made %d calls, want 4", calls)
		}
	})

	t.Run("walkFn error stops the walk", func(t *testing.T) {
		wantErr := errors.New("stop")
		calls := 0
		err := Walk("test.zip", data, "docs/", func(name string, f *zip.File) error {
			calls++
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("Walk() error = %v, want %v", err, wantErr)
		}
		if calls != 1 {
			t.Fatalf("Walk() made %d calls after error, want 1", calls)
		}
	})
}

func TestWalkFileContent(t *testing.T) {
	data := buildZip(t, map[string]string{"a/b.txt": "payload"})

	var content []byte
	err := Walk("test.zip", data, "a/", func(name string, f *zip.File) error {
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		content, err = io.ReadAll(rc)
		return err
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if string(content) != "payload" {
		t.Fatalf("Walk() read %q, want %q", content, "payload")
	}
}

func TestWalkInvalidArchive(t *testing.T) {
	if err := Walk("bad.zip", []byte("this is not a zip"), "", func(string, *zip.File) error { return nil }); err == nil {
		t.Fatal("Walk() expected error for invalid archive")
	}
}

func TestWalkUnsafePaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"traversal", "../escape.txt"},
		{"nested_traversal", "ok/../../escape.txt"},
		{"absolute", "/etc/passwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildZip(t, map[string]string{tt.path: "x"})
			err := Walk("test.zip", data, "", func(string, *zip.File) error { return nil })
			if err == nil {
				t.Fatalf("Walk() accepted unsafe path %q", tt.path)
			}
		})
	}
}

func TestWalkCaseSensitivity(t *testing.T) {
	data := buildZip(t, map[string]string{"Docs/readme.txt": "x"})

	calls := 0
	if err := Walk("test.zip", data, "docs/", func(string, *zip.File) error { calls++; return nil }); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if calls != 0 {
		t.Fatalf("Walk() matched %d entries case insensitively, want 0", calls)
	}
}
