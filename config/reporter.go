package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/multierr"

	"infogen/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {

	r := &Report{items: make(map[string]item)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

// item is a single report entry. Either data holds the bytes directly or
// resolved points at a file or directory to be archived on Close.
type item struct {
	source   string
	resolved string
	stamp    time.Time
	data     []byte
}

// Report accumulates everything needed for a debug report of a generation
// run: effective configuration, normalized brief, solved layout, llm traces.
// NOTE: presently not to be used concurrently!
type Report struct {
	items map[string]item
	// scratch holds temporary directories created by StoreCopy, removed when the report is finalized.
	scratch []string
	file    *os.File
}

// Close builds the report archive and removes scratch copies made by StoreCopy.
func (r *Report) Close() error {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This means no report has been requested.
		return nil
	}
	if r.file == nil {
		return nil
	}
	defer r.file.Close()

	err := r.finalize()
	for _, dir := range r.scratch {
		err = multierr.Append(err, os.RemoveAll(dir))
	}
	r.scratch = nil
	return err
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store saves path to file or directory to be put in the final archive later.
func (r *Report) Store(name, path string) {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This means no report has been requested.
		return
	}

	if old, exists := r.items[name]; exists && old.source != path {
		// Somewhere I do not know what I am doing.
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.source, path))
	}

	it := item{
		source:   path,
		resolved: path,
	}
	if p, err := filepath.Abs(path); err == nil {
		it.resolved = p
	}
	r.items[name] = it
}

// StoreData saves binary data to be put in the final archive later as a file under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This means no report has been requested.
		return
	}

	if _, exists := r.items[name]; exists {
		// Somewhere I do not know what I am doing.
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}

	r.items[name] = item{
		data:  data,
		stamp: time.Now(),
	}
}

// StoreCopy snapshots the file or directory into a temporary location to be
// put in the final archive later. Names are versioned with timestamps to
// avoid collisions, so it is safe to put the same content into report
// multiple times.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		// Ignore uninitialized cases to avoid checking in many places. This means no report has been requested.
		return nil
	}

	it := item{
		stamp:  time.Now(),
		source: path,
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	it.resolved = absPath

	if _, exists := r.items[name]; exists {
		// version the name to avoid collisions
		name = fmt.Sprintf("%s-%d", name, it.stamp.UnixNano())
	}

	dir, err := os.MkdirTemp("", "infogen-r-")
	if err != nil {
		return err
	}
	r.scratch = append(r.scratch, dir)

	info, err := os.Stat(it.resolved)
	if err != nil {
		return err
	}
	switch {
	case info.Mode().IsRegular():
		where, err := copyFile(dir, it.resolved, info.ModTime())
		if err != nil {
			return err
		}
		it.resolved = where
	case info.Mode().IsDir():
		if err := copyDir(dir, it.resolved); err != nil {
			return err
		}
		it.resolved = dir
	}

	r.items[name] = it
	return nil
}

func copyFile(dir, src string, modTime time.Time) (string, error) {
	// always make sure destination directory exists
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}
	if err = out.Sync(); err != nil {
		return "", err
	}
	out.Close()

	if err := os.Chtimes(dst, modTime, modTime); err != nil {
		return "", err
	}
	return dst, nil
}

func copyDir(dir, src string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			// ignore links, sockets, etc.
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		newpath := filepath.Join(dir, rel)

		if _, err := copyFile(filepath.Dir(newpath), path, info.ModTime()); err != nil {
			return err
		}
		return nil
	})
}

// finalize creates the final archive (report) with all previously stored items.
func (r *Report) finalize() error {

	arc := zip.NewWriter(r.file)
	defer arc.Close()

	t := time.Now()

	names, manifest := r.manifest(t)
	if err := saveFile(arc, "MANIFEST", t, manifest); err != nil {
		return err
	}

	// in the same order as in manifest
	for _, name := range names {
		it := r.items[name]

		if len(it.data) > 0 {
			if err := saveFile(arc, name, it.stamp, bytes.NewReader(it.data)); err != nil {
				return err
			}
			continue
		}

		// ignoring absent files
		info, err := os.Stat(it.resolved)
		if err != nil {
			continue
		}
		switch {
		case info.Mode().IsRegular():
			f, err := os.Open(it.resolved)
			if err != nil {
				return err
			}
			if err := saveFile(arc, name, info.ModTime(), f); err != nil {
				f.Close()
				return err
			}
			f.Close()
		case info.Mode().IsDir():
			if err := saveDir(arc, name, it.resolved); err != nil {
				return err
			}
		}
	}
	return nil
}

// manifest renders the archive index: one line per item, sorted by name,
// prefixed with a line identifying the producing binary.
func (r *Report) manifest(now time.Time) ([]string, *bytes.Buffer) {

	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s %s report created %s\n\n", misc.GetAppName(), misc.GetVersion(), now.UTC().Format(time.UnixDate))

	if len(r.items) == 0 {
		return nil, buf
	}

	names := make([]string, 0, len(r.items))
	for k := range r.items {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		it := r.items[name]
		if it.stamp.IsZero() {
			it.stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", it.stamp.UTC().Format(time.UnixDate), name, it.source, it.resolved)
	}
	return names, buf
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return nil
}

func saveDir(dst *zip.Writer, name, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			// ignore links, sockets, etc.
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(filepath.Join(name, rel))

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		return saveFile(dst, rel, info.ModTime(), f)
	})
}
