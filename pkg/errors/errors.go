// Package errors provides the core's typed error vocabulary, so callers
// can use errors.As to recover structured detail without string matching.
// ParseError, ValidationError and CompileFailureError also wrap an
// underlying cause via Unwrap; BlockedError and PromiseViolationError
// carry no cause.
package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a YAML parsing failure in the project-graph
// loader, with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures project-graph validation issues, e.g. a
// dependency naming an unknown project or a duplicate project name.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CompileFailureError wraps a project's compile-time throwable together
// with the project's name.
type CompileFailureError struct {
	Project string
	Err     error
}

// NewCompileFailureError constructs a CompileFailureError.
func NewCompileFailureError(project string, err error) error {
	return &CompileFailureError{Project: project, Err: err}
}

func (e *CompileFailureError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("compile failed for %s: %v", e.Project, e.Err)
}

// Unwrap exposes the underlying throwable.
func (e *CompileFailureError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BlockedError marks a node that was never compiled because one or more
// direct dependencies were blocked or failed. Blocking is
// always intransitive: Projects lists only the direct upstreams responsible,
// never the deeper transitive root cause.
type BlockedError struct {
	Project  string
	Projects []string
}

// NewBlockedError constructs a BlockedError naming the blocking upstreams.
func NewBlockedError(project string, blockingProjects []string) error {
	return &BlockedError{Project: project, Projects: append([]string(nil), blockingProjects...)}
}

func (e *BlockedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s blocked by: %s", e.Project, strings.Join(e.Projects, ", "))
}

// PromiseViolationError is a programmer error: a one-shot promise was
// written to more than once.
type PromiseViolationError struct {
	Detail string
}

// NewPromiseViolationError constructs a PromiseViolationError.
func NewPromiseViolationError(detail string) error {
	return &PromiseViolationError{Detail: detail}
}

func (e *PromiseViolationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("promise violation: %s", e.Detail)
}
