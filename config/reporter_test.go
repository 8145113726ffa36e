package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func newTestReport(t *testing.T) *Report {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "report.zip"))
	if err != nil {
		t.Fatalf("failed to create report file: %v", err)
	}
	return &Report{items: make(map[string]item), file: f}
}

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open archive entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read archive entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReportClose_FinalizesArchive(t *testing.T) {
	r := newTestReport(t)
	name := r.Name()

	layoutPath := filepath.Join(t.TempDir(), "layout.txt")
	if err := os.WriteFile(layoutPath, []byte("layout 13.33 x 7.50 in"), 0644); err != nil {
		t.Fatalf("failed to write layout dump: %v", err)
	}

	r.Store("layout/dump.txt", layoutPath)
	r.StoreData("brief/normalized.json", []byte(`{"title":"Q3 Review"}`))

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	got := readArchive(t, name)
	if _, ok := got["MANIFEST"]; !ok {
		t.Error("archive is missing MANIFEST")
	}
	if got["layout/dump.txt"] != "layout 13.33 x 7.50 in" {
		t.Errorf("archive entry layout/dump.txt = %q", got["layout/dump.txt"])
	}
	if got["brief/normalized.json"] != `{"title":"Q3 Review"}` {
		t.Errorf("archive entry brief/normalized.json = %q", got["brief/normalized.json"])
	}
}

func TestReportClose_RemovesScratchCopies(t *testing.T) {
	r := newTestReport(t)

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "trace.log")
	if err := os.WriteFile(srcPath, []byte("tier escalation: fast -> standard"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	if err := r.StoreCopy("llm/trace.log", srcPath); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if len(r.scratch) != 1 {
		t.Fatalf("StoreCopy() created %d scratch dirs, want 1", len(r.scratch))
	}
	scratch := r.scratch[0]
	if _, err := os.Stat(scratch); err != nil {
		t.Fatalf("scratch dir should exist before Close: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Error("expected scratch dir to be removed by Close")
	}
	// The caller's file is not the report's to clean up.
	if _, err := os.Stat(srcPath); err != nil {
		t.Errorf("original file should survive Close: %v", err)
	}
}

func TestReportStoreCopy_VersionsDuplicateNames(t *testing.T) {
	r := newTestReport(t)

	srcPath := filepath.Join(t.TempDir(), "solve.txt")
	if err := os.WriteFile(srcPath, []byte("pass 1"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	if err := r.StoreCopy("layout/solve.txt", srcPath); err != nil {
		t.Fatalf("StoreCopy() first call error: %v", err)
	}
	if err := os.WriteFile(srcPath, []byte("pass 2"), 0644); err != nil {
		t.Fatalf("failed to rewrite source file: %v", err)
	}
	if err := r.StoreCopy("layout/solve.txt", srcPath); err != nil {
		t.Fatalf("StoreCopy() second call error: %v", err)
	}

	if len(r.items) != 2 {
		t.Errorf("expected versioned duplicate to add a second entry, got %d", len(r.items))
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{items: make(map[string]item)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
