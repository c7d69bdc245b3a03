// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Store errors.
	ErrNotFound      = errors.New("not found")
	ErrCatalogEmpty  = errors.New("catalog not loaded")
	ErrDuplicateCode = errors.New("duplicate item code")

	// Aggregation errors.
	ErrNoCounts = errors.New("no counts recorded")
)

// ValidationError reports rejected ingestion input. Either MissingColumns is
// set (the header lacked required columns) or Row/Column point at a single
// malformed value. The ingestion that produced it loaded nothing.
type ValidationError struct {
	Err            error
	MissingColumns []string
	Column         string
	Row            int
}

func (e *ValidationError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
	}
	if e.Column != "" {
		return fmt.Sprintf("row %d: invalid value in column %q: %v", e.Row, e.Column, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %v", e.Err)
	}
	return "invalid input"
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewMissingColumnsError creates a ValidationError for absent header columns.
func NewMissingColumnsError(columns []string) error {
	return &ValidationError{MissingColumns: columns}
}

// NewColumnError creates a ValidationError for one malformed cell. Rows are
// numbered as in the source file, header included.
func NewColumnError(row int, column string, err error) error {
	return &ValidationError{Row: row, Column: column, Err: err}
}
