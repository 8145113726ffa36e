// Package pptx renders a positioned layout into a native PowerPoint file.
// The output is a minimal OPC package with a single slide: every part is
// built with etree and written into an archive/zip stream, then the archive
// is rewritten without data descriptors so strict readers open it without a
// recovery prompt. The renderer is stateless and never computes geometry,
// it converts the layout's inches to EMU exactly once at write time.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"

	"infogen/layout"
)

// OPC part names.
const (
	contentTypesPart = "[Content_Types].xml"
	rootRelsPart     = "_rels/.rels"
	corePropsPart    = "docProps/core.xml"
	appPropsPart     = "docProps/app.xml"
	presentationPart = "ppt/presentation.xml"
	presRelsPart     = "ppt/_rels/presentation.xml.rels"
	masterPart       = "ppt/slideMasters/slideMaster1.xml"
	masterRelsPart   = "ppt/slideMasters/_rels/slideMaster1.xml.rels"
	layoutPart       = "ppt/slideLayouts/slideLayout1.xml"
	layoutRelsPart   = "ppt/slideLayouts/_rels/slideLayout1.xml.rels"
	themePart        = "ppt/theme/theme1.xml"
	slidePart        = "ppt/slides/slide1.xml"
	slideRelsPart    = "ppt/slides/_rels/slide1.xml.rels"
)

// DrawingML namespaces.
const (
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Render produces the complete presentation file for a layout.
func Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("nothing to render")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{contentTypesPart, contentTypesDoc()},
		{rootRelsPart, rootRelsDoc()},
		{corePropsPart, corePropsDoc(l)},
		{appPropsPart, appPropsDoc()},
		{presentationPart, presentationDoc()},
		{presRelsPart, presRelsDoc()},
		{masterPart, masterDoc()},
		{masterRelsPart, masterRelsDoc()},
		{layoutPart, layoutDoc()},
		{layoutRelsPart, layoutRelsDoc()},
		{themePart, themeDoc()},
		{slidePart, slideDoc(l)},
		{slideRelsPart, slideRelsDoc()},
	}
	for _, p := range parts {
		if err := writeXMLToZip(zw, p.name, p.doc); err != nil {
			return nil, fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}

	// make sure buffers are flushed before rewriting
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("unable to close output archive: %w", err)
	}
	return stripDataDescriptors(buf.Bytes())
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// stripDataDescriptors rewrites the archive so every entry carries its sizes
// in the local file header instead of a trailing data descriptor. Office
// readers reject streamed archives otherwise.
func stripDataDescriptors(data []byte) ([]byte, error) {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unable to read staged archive: %w", err)
	}

	var out bytes.Buffer
	w := fixzip.NewWriter(&out)
	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return nil, fmt.Errorf("unable to rewrite %s: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("unable to finalize archive: %w", err)
	}
	return out.Bytes(), nil
}

func newXMLDoc() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}
