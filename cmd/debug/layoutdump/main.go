// layoutdump feeds a stored brief through the deterministic layout engine and
// dumps the solved geometry for inspection. Input is a brief JSON file, either
// bare or still wrapped in model response fences, so files captured by the
// debug reporter can be replayed as-is.
//
// The geometry dump goes to <file>-layout.txt. Optional flags render the same
// layout to artifact formats next to it, which makes renderer diffs cheap:
// solve once, render everything, compare.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"infogen/brief"
	"infogen/common"
	"infogen/layout"
	"infogen/measure"
	"infogen/render/pptx"
	"infogen/render/raster"
	"infogen/render/svg"
	"infogen/utils/debug"
)

func main() {
	toSvg := flag.Bool("svg", false, "render layout to <file>.svg")
	toPptx := flag.Bool("pptx", false, "render layout to <file>.pptx")
	toPng := flag.Bool("png", false, "render layout to <file>.png")
	toJson := flag.Bool("json", false, "write solved layout to <file>-layout.json")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: layoutdump [-svg] [-pptx] [-png] [-json] [-overwrite] <brief.json> [outdir]\n\n")
		fmt.Fprintf(os.Stderr, "Solves the brief and writes the positioned geometry to <file>-layout.txt.\n")
		fmt.Fprintf(os.Stderr, "Model response fences around the JSON are stripped automatically.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	inPath := flag.Arg(0)
	outDir := flag.Arg(1)

	raw, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", inPath, err)
		os.Exit(1)
	}

	b, err := brief.Parse(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse brief: %v\n", err)
		os.Exit(1)
	}
	if problems := brief.Validate(b); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "brief rejected: %s\n", p)
		}
		os.Exit(1)
	}

	var warns common.Warnings
	brief.Normalize(b, &warns)

	lay, solveWarns := layout.Solve(b, measure.New())
	warns = append(warns, solveWarns...)

	if err := writeOutput(inPath, outDir, "-layout.txt", dumpLayout(b, lay, warns), *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *toJson {
		data, err := json.MarshalIndent(lay, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal layout: %v\n", err)
			os.Exit(1)
		}
		if err := writeOutput(inPath, outDir, "-layout.json", append(data, '\n'), *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	renders := []struct {
		want   bool
		suffix string
		render func(*layout.Layout) ([]byte, error)
	}{
		{*toSvg, ".svg", svg.Render},
		{*toPptx, ".pptx", pptx.Render},
		{*toPng, ".png", raster.Render},
	}
	for _, r := range renders {
		if !r.want {
			continue
		}
		data, err := r.render(lay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s: %v\n", r.suffix, err)
			os.Exit(1)
		}
		if err := writeOutput(inPath, outDir, r.suffix, data, *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
}

func dumpLayout(b *brief.Brief, l *layout.Layout, warns common.Warnings) []byte {
	tw := debug.NewTreeWriter()

	tw.Line(0, "layout %.2f x %.2f in, background #%s, type %s", l.Width, l.Height, l.Background, b.DiagramType)
	dumpElement(tw, 1, "title", l.Title)
	dumpElement(tw, 1, "subtitle", l.Subtitle)

	elements := l.ByZOrder()
	tw.Line(0, "elements (%d, back to front):", len(elements))
	for i := range elements {
		dumpElement(tw, 1, "", &elements[i])
	}

	tw.Line(0, "connectors (%d):", len(l.Connectors))
	for _, c := range l.Connectors {
		tw.Line(1, "%-14s %s %s #%s %.1fpt [%.2f,%.2f -> %.2f,%.2f]",
			c.ID, endpoints(c), c.Style, c.Color, c.StrokeWidthPt, c.From.X, c.From.Y, c.To.X, c.To.Y)
		if c.Label != nil {
			tw.TextBlock(2, "label", c.Label.Content)
		}
	}

	if len(warns) > 0 {
		tw.Line(0, "warnings (%d):", len(warns))
		for _, w := range warns {
			tw.Line(1, "- %s", w)
		}
	}

	if problems := l.Validate(); len(problems) > 0 {
		tw.Line(0, "PROBLEMS (%d):", len(problems))
		for _, p := range problems {
			tw.Line(1, "! %s", p)
		}
	} else {
		tw.Line(0, "problems: none")
	}

	return tw.Bytes()
}

func dumpElement(tw *debug.TreeWriter, depth int, role string, e *layout.Element) {
	if e == nil {
		return
	}

	var sb strings.Builder
	if role == "" {
		fmt.Fprintf(&sb, "z %4d %-8s %-14s", e.ZOrder, e.Kind, e.ID)
	} else {
		fmt.Fprintf(&sb, "%-8s %-14s", role, e.ID)
	}
	fmt.Fprintf(&sb, " [%.2f %.2f %.2f %.2f] fill #%s", e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H, e.Fill)
	if e.Text != nil {
		fmt.Fprintf(&sb, " %dpt", e.Text.SizePt)
		if e.Text.Bold {
			sb.WriteString(" bold")
		}
	}
	if e.LayerID != "" {
		fmt.Fprintf(&sb, " layer=%s", e.LayerID)
	}
	tw.Line(depth, "%s", sb.String())

	// wrapped lines as solved, one under the other
	if e.Text != nil {
		for _, line := range e.Text.Lines {
			tw.TextBlock(depth+1, "line", line)
		}
	}
}

func endpoints(c layout.Connector) string {
	if c.FromID == "" && c.ToID == "" {
		return "(free)"
	}
	return "(" + c.FromID + " -> " + c.ToID + ")"
}

// writeOutput writes data to <stem><suffix> in either the input file's directory or outDir.
func writeOutput(inPath, outDir, suffix string, data []byte, overwrite bool) error {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(inPath)
	if outDir != "" {
		dir = outDir
	}
	outPath := filepath.Join(dir, stem+suffix)

	if _, err := os.Stat(outPath); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s (use -overwrite)", outPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}
