package apperr

import (
	"fmt"
	"strings"
)

// ValidationError is returned when command line input is rejected before any work starts.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// FileAccessError wraps an I/O failure while opening or reading an input file.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

func NewFileAccess(path string, err error) *FileAccessError {
	return &FileAccessError{Path: path, Err: err}
}

// MalformedRecordError reports a record that could not be decoded.
// Position is the 1-based line (CSV) or element index (XML, JSON); 0 means the whole document.
type MalformedRecordError struct {
	Path     string
	Position int
	Message  string
	Err      error
}

func (e *MalformedRecordError) Error() string {
	var sb strings.Builder
	sb.WriteString("malformed record")
	if e.Path != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.Path)
	}
	if e.Position > 0 {
		fmt.Fprintf(&sb, " at %d", e.Position)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func NewMalformedRecord(position int, msg string) *MalformedRecordError {
	return &MalformedRecordError{Position: position, Message: msg}
}

func NewMalformedRecordWrap(position int, msg string, err error) *MalformedRecordError {
	return &MalformedRecordError{Position: position, Message: msg, Err: err}
}

// NormalizationError is returned when a stored record lacks a value needed for display.
type NormalizationError struct {
	Fields []string
}

func (e *NormalizationError) Error() string {
	return "cannot normalize record, absent fields: " + strings.Join(e.Fields, ", ")
}

func NewNormalization(fields []string) *NormalizationError {
	return &NormalizationError{Fields: fields}
}
