// Package iotsv reads and writes the tab separated files the toolkit
// lives on: BOLD snapshots, species checklists and taxonomy dumps.
// Readers decode UTF-8 by default and can restart a file as Latin-1,
// which BOLD used for snapshots before its switch to Unicode.
package iotsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/pgzip"
	"golang.org/x/text/encoding/charmap"
)

// ErrNotUTF8 signals a line that does not decode as UTF-8. Callers
// that can re-read the file should Restart the reader with latin1 set,
// drop any accumulated state and scan again.
var ErrNotUTF8 = errors.New("input is not valid UTF-8")

// maxLineSize caps scanner tokens. BOLD rows carry whole sequences,
// so the default 64kB line limit is not enough.
const maxLineSize = 16 * 1024 * 1024

// Reader streams rows of a tab separated file. It handles plain and
// gzip compressed input, a UTF-8 byte order mark on the header, and
// "-" for stdin.
type Reader struct {
	path       string
	latin1     bool
	file       *os.File
	gz         *pgzip.Reader
	sc         *bufio.Scanner
	header     []string
	headerLine string
	cols       map[string]int
	row        []string
	raw        string
	line       int
	err        error
}

// NewReader opens path and reads its header row. Use "-" for stdin.
// A header that is not valid UTF-8 returns an error wrapping
// ErrNotUTF8; use NewLatin1Reader for such files.
func NewReader(path string) (*Reader, error) {
	r := &Reader{path: path}
	if err := r.open(false); err != nil {
		return nil, err
	}
	return r, nil
}

// NewLatin1Reader opens path decoding it as ISO 8859-1.
func NewLatin1Reader(path string) (*Reader, error) {
	r := &Reader{path: path}
	if err := r.open(true); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) open(latin1 bool) error {
	r.latin1 = latin1
	r.row = nil
	r.raw = ""
	r.line = 0
	r.err = nil

	var src io.Reader
	if r.path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(r.path)
		if err != nil {
			return OpenInputError(r.path, err)
		}
		r.file = f
		src = f
	}

	if strings.HasSuffix(r.path, ".gz") {
		zr, err := pgzip.NewReader(src)
		if err != nil {
			r.close()
			return OpenInputError(r.path, err)
		}
		r.gz = zr
		src = zr
	}

	if latin1 {
		src = charmap.ISO8859_1.NewDecoder().Reader(src)
	}

	sc := bufio.NewScanner(src)
	buf := make([]byte, 0, 1024*1024)
	sc.Buffer(buf, maxLineSize)
	r.sc = sc

	if err := r.readHeader(); err != nil {
		r.close()
		return err
	}
	return nil
}

func (r *Reader) readHeader() error {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return OpenInputError(r.path, err)
		}
		return EmptyInputError(r.path)
	}
	line := strings.TrimPrefix(r.sc.Text(), "\uFEFF")
	if !r.latin1 && !utf8.ValidString(line) {
		return DecodeError(r.path, fmt.Errorf("header row: %w", ErrNotUTF8))
	}
	r.line = 1
	r.headerLine = line
	r.header = strings.Split(line, "\t")
	r.cols = make(map[string]int, len(r.header))
	for i, h := range r.header {
		r.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return nil
}

// Next advances to the following data row. It returns false at the
// end of the file or on error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			r.err = OpenInputError(r.path, err)
		}
		return false
	}
	line := r.sc.Text()
	r.line++
	if !r.latin1 && !utf8.ValidString(line) {
		r.err = DecodeError(r.path,
			fmt.Errorf("line %d: %w", r.line, ErrNotUTF8))
		return false
	}
	r.raw = line
	r.row = strings.Split(line, "\t")
	return true
}

// Header returns the column names as they appear in the file.
func (r *Reader) Header() []string { return r.header }

// HeaderLine returns the raw header row without its line break.
func (r *Reader) HeaderLine() string { return r.headerLine }

// Column returns the position of the first alias present in the
// header. Matching ignores case and surrounding space.
func (r *Reader) Column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if idx, ok := r.cols[strings.ToLower(a)]; ok {
			return idx, true
		}
	}
	return 0, false
}

// RequireColumn is Column for headers that must be present. The error
// names every alias tried and the columns the file does have.
func (r *Reader) RequireColumn(aliases ...string) (int, error) {
	if idx, ok := r.Column(aliases...); ok {
		return idx, nil
	}
	return 0, MissingColumnError(r.path, aliases, r.header)
}

// Row returns the fields of the current row.
func (r *Reader) Row() []string { return r.row }

// Raw returns the current row as it appears in the file.
func (r *Reader) Raw() string { return r.raw }

// Field returns the column at idx of the current row, or an empty
// string when the row is shorter than the header.
func (r *Reader) Field(idx int) string {
	if idx < 0 || idx >= len(r.row) {
		return ""
	}
	return r.row[idx]
}

// Line returns the file line number of the current row. The header
// is line 1.
func (r *Reader) Line() int { return r.line }

// Err returns the first error the reader ran into.
func (r *Reader) Err() error { return r.err }

// Path returns the input path the reader was created with.
func (r *Reader) Path() string { return r.path }

// Restart reopens the file from the beginning; with latin1 true the
// stream is decoded as ISO 8859-1 instead of UTF-8. Stdin cannot be
// restarted.
func (r *Reader) Restart(latin1 bool) error {
	if r.path == "-" {
		return DecodeError(r.path,
			fmt.Errorf("cannot re-read stdin: %w", ErrNotUTF8))
	}
	r.close()
	return r.open(latin1)
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.close()
}

func (r *Reader) close() error {
	var err error
	if r.gz != nil {
		err = r.gz.Close()
		r.gz = nil
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
		r.file = nil
	}
	return err
}

// Sanitize makes a messy field safe for tab separated output: tabs,
// line breaks and other control characters become spaces, double
// quotes are dropped, surrounding space is trimmed. NCBI exports are
// the usual source of such fields.
func Sanitize(field string) string {
	if !strings.ContainsAny(field, "\t\n\r\"") {
		return strings.TrimSpace(field)
	}
	var b strings.Builder
	b.Grow(len(field))
	for _, c := range field {
		switch c {
		case '\t', '\n', '\r':
			b.WriteRune(' ')
		case '"':
		default:
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}
