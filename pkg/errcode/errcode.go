package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigLoadError
	PresetFileError
	PresetUnknownError

	// Tabular input errors
	OpenInputError
	MissingColumnError
	DecodeError
	EmptyInputError

	// Analysis errors
	SpeciesListError
	RecordScanError
	AnalysisError
	ReportError

	// Assessment errors
	AssessInputError
	AssessWriteError

	// Extraction errors
	ExtractInputError
	ExtractWriteError

	// Authority database errors
	AuthDBOpenError
	AuthDBCreateError
	AuthDBImportError
	AuthDBQueryError
	AuthDBExportError
)
