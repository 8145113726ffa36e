//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// CleanFileName strips path separators from a single path segment so expanded
// output-path templates cannot climb out of the target directory. Leading dots
// go too, a template expanding to ".." or a hidden file is never intended.
func CleanFileName(in string) string {
	var b strings.Builder
	b.Grow(len(in))
	for _, sym := range in {
		if sym == os.PathSeparator || sym == os.PathListSeparator {
			continue
		}
		b.WriteRune(sym)
	}
	out := strings.TrimLeft(b.String(), ".")
	if len(out) == 0 {
		return "_bad_file_name_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
