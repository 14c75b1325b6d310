package iotsv

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/pkg/errcode"
)

func OpenInputError(path string, err error) error {
	msg := "Cannot open input file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OpenInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s: %w",
			fn, path, err),
	}
}

func EmptyInputError(path string) error {
	msg := "Input file <em>%s</em> has no header row"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptyInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s is empty", fn, path),
	}
}

func DecodeError(path string, err error) error {
	msg := "Cannot decode input file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s: %w",
			fn, path, err),
	}
}

// MissingColumnError reports every alias that was tried and the
// columns the file does have, so a user can spot a renamed header.
func MissingColumnError(path string, aliases, header []string) error {
	msg := "No <em>%s</em> column in <em>%s</em>"
	vars := []any{aliases[0], path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"from %s: none of the columns [%s] found in %s, file has [%s]",
			fn, strings.Join(aliases, ", "), path,
			strings.Join(header, ", "),
		),
	}
}

func WriteFileError(path string, err error) error {
	msg := "Cannot write output file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn, path, err),
	}
}
