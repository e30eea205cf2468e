// Package validation implements the upload pre-checks performed by the
// HTTP adapter before a file enters the processing pipeline.
package validation

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkrasnov/pdfscan/internal/common"
)

// MaxFileSize is the default upload size ceiling.
const MaxFileSize = 10 * 1024 * 1024

// Stable machine codes surfaced to HTTP clients.
const (
	CodeMissingFilename = "MISSING_FILENAME"
	CodeInvalidFileType = "INVALID_FILE_TYPE"
	CodeEmptyFile       = "EMPTY_FILE"
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeNotAPDF         = "NOT_A_PDF"
)

var pdfMagic = []byte("%PDF-")

// Error carries a stable machine code alongside the human message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap makes every validation error match common.ErrValidation.
func (e *Error) Unwrap() error { return common.ErrValidation }

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CheckUpload validates filename, size and content. maxSize <= 0 falls
// back to MaxFileSize.
func CheckUpload(filename string, content []byte, maxSize int64) error {
	if strings.TrimSpace(filename) == "" {
		return newError(CodeMissingFilename, "filename is required")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return newError(CodeInvalidFileType, "invalid file type, only PDF files are allowed")
	}
	if len(content) == 0 {
		return newError(CodeEmptyFile, "uploaded file is empty")
	}
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if int64(len(content)) > maxSize {
		return newError(CodeFileTooLarge, fmt.Sprintf("file exceeds maximum size of %d bytes", maxSize))
	}
	if !bytes.HasPrefix(content, pdfMagic) {
		return newError(CodeNotAPDF, "file content is not a PDF document")
	}
	return nil
}
