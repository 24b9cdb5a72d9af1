package domain

import (
	"io/fs"
	"strings"
)

// Document is the ordered line content of one source file. Each line keeps
// its original terminator, if it had one.
type Document struct {
	Path  string
	Lines []string
	Perm  fs.FileMode
}

// Bytes renders the document with every line followed by a terminator.
// Lines that already end in "\n" are written as-is.
func (d Document) Bytes() []byte {
	var b strings.Builder
	for _, l := range d.Lines {
		b.WriteString(l)
		if !strings.HasSuffix(l, "\n") {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}
