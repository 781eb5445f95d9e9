// SPDX-License-Identifier: AGPL-3.0-or-later
package convert

import "errors"

// Stage failures. ExitCode maps each to the converter's return code.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnexpectedFormat = errors.New("unexpected format")
	ErrImport           = errors.New("import failed")
	ErrProcess          = errors.New("process failed")
	ErrExport           = errors.New("export failed")
)

// Return codes of the conversion stages.
const (
	CodeOK               = 0
	CodeGeneralException = 2
	CodeInvalidArgument  = 5
	CodeUnexpectedFormat = 101
	CodeImportError      = 103
	CodeProcessError     = 200
	CodeExportError      = 300
)

// ExitCode returns the return code for an error produced by Run.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrUnexpectedFormat):
		return CodeUnexpectedFormat
	case errors.Is(err, ErrImport):
		return CodeImportError
	case errors.Is(err, ErrProcess):
		return CodeProcessError
	case errors.Is(err, ErrExport):
		return CodeExportError
	default:
		return CodeGeneralException
	}
}
