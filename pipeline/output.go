package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"infogen/config"
)

// Values is a struct that holds variables we make available for output name
// template expansion
type Values struct {
	Context     string
	Title       string
	Subtitle    string
	DiagramType string
	Format      string
	Language    string
	Date        string
	ID          string
	Caller      string
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// buildOutputPath returns the file path a rendered artifact should be
// written to. It uses either the content addressed artifact name or the
// user-defined template, cleans the path and if requested transliterates it.
func buildOutputPath(dir string, out Output, res *Result, req *Request, doc config.DocumentConfig, log *zap.Logger) string {
	if doc.OutputNameTemplate == "" {
		return filepath.Join(dir, out.Name)
	}

	values := Values{
		Title:       res.Brief.Title,
		Subtitle:    res.Brief.Subtitle,
		DiagramType: res.Brief.DiagramType.String(),
		Format:      out.Format.String(),
		Language:    res.Lang,
		Date:        time.Now().Format("2006-01-02"),
		ID:          res.ID,
		Caller:      req.Caller,
	}

	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, doc.OutputNameTemplate, values)
	if err != nil {
		// fallback to the artifact name if template expansion failed
		log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(dir, out.Name)
	}
	expanded = filepath.FromSlash(expanded)
	if strings.TrimSpace(expanded) == "" {
		return filepath.Join(dir, out.Name)
	}

	return assemblePathWithSubdirs(dir, expanded, out.Format.Ext(), doc)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output
// path, cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName, outExt string, doc config.DocumentConfig) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], doc) + outExt
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, doc))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
		path = head
	}

	return segments
}

func cleanPathSegment(segment string, doc config.DocumentConfig) string {
	if doc.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
