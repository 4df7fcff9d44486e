// Package sourcefile accumulates the lines of a generated source file, keeping track of indentation.
package sourcefile

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// IndentUnit is the text added per indentation level.
const IndentUnit = "    "

// File is an append-only list of lines.
// The zero value is ready to use.
type File struct {
	lines  []string
	indent int
}

// New returns an empty File.
func New() *File {
	return &File{}
}

// Printf appends one line, formatted with fmt.Sprintf and indented at the current level.
func (f *File) Printf(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	f.lines = append(f.lines, strings.Repeat(IndentUnit, f.indent)+line)
}

// Line appends an empty line.
func (f *File) Line() {
	f.lines = append(f.lines, "")
}

// Indent increases the indentation level and returns the function that restores it.
// The returned function can be called more than once, only the first call has an effect:
//
//	defer f.Indent()()
func (f *File) Indent() (release func()) {
	f.indent++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		f.indent--
	}
}

// Block runs fn one indentation level deeper. The level is restored however fn returns,
// including by panic.
func (f *File) Block(fn func()) {
	defer f.Indent()()
	fn()
}

// Depth returns the current indentation level.
func (f *File) Depth() int {
	return f.indent
}

// Lines returns a copy of the lines appended so far, without trailing spaces.
func (f *File) Lines() []string {
	lines := make([]string, len(f.lines))
	for i, line := range f.lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return lines
}

// WriteTo writes all lines to w, each one right trimmed and terminated with a new line.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range f.Lines() {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Bytes returns the contents of the file.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = f.WriteTo(&buf)
	return buf.Bytes()
}
