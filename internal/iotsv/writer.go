package iotsv

import (
	"bufio"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Writer writes rows of a tab separated file. Output is compressed
// with pgzip when the path ends in .gz. Use "-" for stdout.
type Writer struct {
	path string
	file *os.File
	gz   *pgzip.Writer
	w    *bufio.Writer
}

// NewWriter creates path, truncating any previous file.
func NewWriter(path string) (*Writer, error) {
	w := &Writer{path: path}
	if path == "-" {
		w.w = bufio.NewWriter(os.Stdout)
		return w, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, WriteFileError(path, err)
	}
	w.file = f
	if strings.HasSuffix(path, ".gz") {
		w.gz = pgzip.NewWriter(f)
		w.w = bufio.NewWriter(w.gz)
	} else {
		w.w = bufio.NewWriter(f)
	}
	return w, nil
}

// WriteRow writes fields joined by tabs with a trailing line break.
func (w *Writer) WriteRow(fields ...string) error {
	return w.WriteLine(strings.Join(fields, "\t"))
}

// WriteLine writes a preassembled row with a trailing line break.
func (w *Writer) WriteLine(line string) error {
	if _, err := w.w.WriteString(line); err != nil {
		return WriteFileError(w.path, err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return WriteFileError(w.path, err)
	}
	return nil
}

// Path returns the output path the writer was created with.
func (w *Writer) Path() string { return w.path }

// Close flushes buffers and closes the file. Stdout stays open.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return WriteFileError(w.path, err)
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return WriteFileError(w.path, err)
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return WriteFileError(w.path, err)
		}
	}
	return nil
}
