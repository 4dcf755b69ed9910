package model

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a failure the way §7 of the specification does.
// It is a kind, not a concrete type hierarchy: every failure the core
// produces is a *Error carrying one of these.
type ErrorKind int

const (
	ErrInternal ErrorKind = iota
	ErrConfiguration
	ErrResolutionNotFound
	ErrVersionConflict
	ErrCircularDependency
	ErrNetwork
	ErrCache
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConfiguration:
		return "Configuration"
	case ErrResolutionNotFound:
		return "ResolutionNotFound"
	case ErrVersionConflict:
		return "VersionConflict"
	case ErrCircularDependency:
		return "CircularDependency"
	case ErrNetwork:
		return "Network"
	case ErrCache:
		return "Cache"
	case ErrIO:
		return "IO"
	default:
		return "Internal"
	}
}

// Error is the single error type the core emits. cmd/knot switches on
// Kind to pick the process exit status.
type Error struct {
	Kind    ErrorKind
	Message string

	// Configuration
	Field   string
	Example string

	// ResolutionNotFound / VersionConflict
	PackageID    *PackageId
	Searched     []string
	Suggestions  []string
	Requirements []string

	// CircularDependency
	Cycle []PackageId

	// Network
	Timeout bool

	// IO
	Path string
	Op   string

	Hint  string
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, " (%s)", e.Hint)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func ConfigurationError(field, message, example string) *Error {
	return &Error{Kind: ErrConfiguration, Field: field, Message: message, Example: example}
}

func PackageNotFoundError(id PackageId, searched, suggestions []string) *Error {
	return &Error{
		Kind:        ErrResolutionNotFound,
		PackageID:   &id,
		Message:     fmt.Sprintf("no versions found for package %q", id.Name),
		Searched:    searched,
		Suggestions: suggestions,
	}
}

func VersionConflictError(id PackageId, requirements []string, hint string) *Error {
	return &Error{
		Kind:         ErrVersionConflict,
		PackageID:    &id,
		Message:      fmt.Sprintf("no version of %q satisfies all requirements: %s", id.Name, strings.Join(requirements, ", ")),
		Requirements: requirements,
		Hint:         hint,
	}
}

func CircularDependencyError(cycle []PackageId) *Error {
	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = id.Name
	}
	return &Error{
		Kind:    ErrCircularDependency,
		Cycle:   cycle,
		Message: fmt.Sprintf("circular dependency: %s", strings.Join(names, " -> ")),
	}
}

func NetworkError(id PackageId, detail string, timeout bool) *Error {
	return &Error{
		Kind:      ErrNetwork,
		PackageID: &id,
		Message:   fmt.Sprintf("network error for %q: %s", id.Name, detail),
		Timeout:   timeout,
	}
}

func CacheError(op string, cause error) *Error {
	return &Error{Kind: ErrCache, Op: op, Message: fmt.Sprintf("cache %s failed", op), Cause: cause}
}

func IOError(op, path string, cause error) *Error {
	return &Error{Kind: ErrIO, Op: op, Path: path, Message: fmt.Sprintf("%s failed for %s", op, path), Cause: cause}
}

func InternalError(message string, cause error) *Error {
	return &Error{Kind: ErrInternal, Message: message, Cause: cause}
}
