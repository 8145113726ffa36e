// Package debug holds output helpers shared by the standalone dump tools.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates a depth-indented text dump. Dump tools print
// hierarchies through it so output stays stable and diffable line by line.
type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return new(TreeWriter)
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

func (tw *TreeWriter) Bytes() []byte {
	return []byte(tw.b.String())
}

// Line appends one formatted line at the given depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// TextBlock appends a labeled value, quoted so control characters and
// leading or trailing spaces survive inspection. An empty value prints
// nothing after the label rather than a pair of quotes.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	if value != "" {
		tw.b.WriteString(strconv.Quote(value))
	}
	tw.b.WriteByte('\n')
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.b.WriteString("  ")
	}
}
