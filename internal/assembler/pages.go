package assembler

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Pages splits story text into page bodies on blank lines, dropping empty segments.
func Pages(text string) []string {
	var out []string
	for _, seg := range strings.Split(text, "\n\n") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// maxNameBytes caps the child-name part of a file name.
const maxNameBytes = 100

// FileName derives the output file name for a child's book. Whitespace, path
// separators and URL-reserved characters in the name become underscores, and
// the name is cut to maxNameBytes on a rune boundary.
func FileName(childName string, at time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return '_'
		}
		switch r {
		case '/', '\\', '?', '#', '%':
			return '_'
		}
		return r
	}, childName)
	if len(safe) > maxNameBytes {
		cut := 0
		for i := range safe {
			if i > maxNameBytes {
				break
			}
			cut = i
		}
		safe = safe[:cut]
	}
	if safe == "" || safe == "." || safe == ".." {
		safe = "book"
	}
	return fmt.Sprintf("%s_book_%d.pdf", safe, at.UnixMilli())
}
