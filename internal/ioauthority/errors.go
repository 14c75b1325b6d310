package ioauthority

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/nhmuk/bgap/pkg/errcode"
)

func DBOpenError(path string, err error) error {
	msg := "Cannot open authority database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AuthDBOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s: %w",
			fn, path, err),
	}
}

func DBCreateError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AuthDBCreateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create table %s: %w",
			fn, table, err),
	}
}

func DBImportError(table string, err error) error {
	msg := "Cannot import rows into <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AuthDBImportError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: import into %s failed: %w",
			fn, table, err),
	}
}

func DBQueryError(err error) error {
	msg := "Authority database query failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AuthDBQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: query failed: %w", fn, err),
	}
}

func DBExportError(err error) error {
	msg := "Species list export failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AuthDBExportError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: export failed: %w", fn, err),
	}
}
