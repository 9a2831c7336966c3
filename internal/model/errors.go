package model

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a missing source file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("source not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports a source file that cannot be decoded as tabular data.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports canonical columns absent after normalization.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// EmptyInputError reports an aggregate with no rows to compute over.
type EmptyInputError struct {
	Aggregate string
	Reason    string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Aggregate, e.Reason)
}

// IsNotFound returns true if err (or any error in its chain) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsParse returns true if err (or any error in its chain) is a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsSchema returns true if err (or any error in its chain) is a SchemaError.
func IsSchema(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsEmptyInput returns true if err (or any error in its chain) is an EmptyInputError.
func IsEmptyInput(err error) bool {
	var ee *EmptyInputError
	return errors.As(err, &ee)
}
