// Package engineerr defines the error kinds raised by the de-identification
// engine, following the same sentinel + wrapping convention used throughout
// the dicom package.
package engineerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Callers test with errors.Is against these, and extract
// structured detail (when present) with errors.As against the *Error type
// below.
var (
	// ErrConfigInvalid indicates the rule document failed static validation
	// before any instance was processed.
	ErrConfigInvalid = errors.New("config invalid")

	// ErrParseFailed indicates the DICOM byte stream could not be read.
	ErrParseFailed = errors.New("dicom parse failed")

	// ErrQueryInvalid indicates a DICOMQueryFilter string failed to compile.
	ErrQueryInvalid = errors.New("query invalid")

	// ErrPathInvalid indicates a tag path or tag-path pattern failed to parse.
	ErrPathInvalid = errors.New("tag path invalid")

	// ErrPreconditionFailed indicates an operation was attempted outside the
	// conditions it requires (pixel edit on compressed data, missing pixel
	// geometry elements, empty scope_value for a non-always reuse scope).
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrMappingStore indicates the mapping store was unavailable or returned
	// an error during lookup_or_insert.
	ErrMappingStore = errors.New("mapping store error")

	// ErrTransformFailed indicates a runtime error during a pipeline step.
	ErrTransformFailed = errors.New("transform failed")
)

// Error carries the path-annotated detail every pipeline error must report:
// the step and tag-path being processed when the failure occurred, per the
// propagation policy.
type Error struct {
	Kind error
	Step string
	Path string
	Tag  string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	loc := ""
	if e.Step != "" {
		loc += " step=" + e.Step
	}
	if e.Tag != "" {
		loc += " tag=" + e.Tag
	}
	if e.Path != "" {
		loc += " path=" + e.Path
	}
	if e.Err != nil {
		return fmt.Sprintf("%s:%s %s: %v", e.Kind, loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s:%s %s", e.Kind, loc, e.Msg)
}

// Unwrap exposes both the error kind (so errors.Is matches the sentinel)
// and the underlying cause, using Go's multi-error unwrap support.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// ConfigInvalid builds a path-annotated config-validation error.
func ConfigInvalid(path, msg string) error {
	return &Error{Kind: ErrConfigInvalid, Path: path, Msg: msg}
}

// ParseFailed wraps a low-level parse error.
func ParseFailed(msg string, cause error) error {
	return &Error{Kind: ErrParseFailed, Msg: msg, Err: cause}
}

// QueryInvalid builds a filter-compilation error.
func QueryInvalid(filter, msg string) error {
	return &Error{Kind: ErrQueryInvalid, Path: filter, Msg: msg}
}

// PathInvalid builds a tag-path/pattern parse error.
func PathInvalid(path, msg string) error {
	return &Error{Kind: ErrPathInvalid, Path: path, Msg: msg}
}

// PreconditionFailed builds a precondition error for the given step.
func PreconditionFailed(step, msg string) error {
	return &Error{Kind: ErrPreconditionFailed, Step: step, Msg: msg}
}

// MappingStoreError wraps a failure from the mapping store collaborator.
func MappingStoreError(msg string, cause error) error {
	return &Error{Kind: ErrMappingStore, Msg: msg, Err: cause}
}

// TransformFailed builds a TransformFailed(step, tag, cause) error per §7.
func TransformFailed(step, tagPath string, cause error) error {
	return &Error{Kind: ErrTransformFailed, Step: step, Path: tagPath, Err: cause}
}
