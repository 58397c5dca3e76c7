package router

import (
	"errors"
	"fmt"
)

// Registration errors. Register wraps these with the offending route id
// and pattern, so match with errors.Is.
var (
	// ErrDuplicateRouteID reports a Register call reusing an existing id.
	ErrDuplicateRouteID = errors.New("duplicate route id")

	// ErrAmbiguousPattern reports a pattern that is structurally
	// indistinguishable from one already registered: same literals at the
	// same positions for some arity both can match.
	ErrAmbiguousPattern = errors.New("ambiguous route pattern")

	// ErrInvalidPattern reports a pattern that does not parse.
	ErrInvalidPattern = errors.New("invalid route pattern")

	// ErrSchemaMismatch reports a param schema that does not line up with
	// the parameters named in the pattern.
	ErrSchemaMismatch = errors.New("param schema does not match pattern")

	// ErrRegistryFrozen reports a Register call after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")
)

// Resolution errors. MissingParamError and ParamTypeMismatchError carry
// per-parameter detail; match those with errors.As.
var (
	// ErrMalformedPath reports input that is not a well-formed app path:
	// empty, missing the leading "/", containing empty interior segments
	// or undecodable percent-escapes.
	ErrMalformedPath = errors.New("malformed path")

	// ErrNotFound reports that no registered route matches the path.
	ErrNotFound = errors.New("no route matches path")
)

// MissingParamError reports a required parameter with no value, either
// because the path is short of segments or because a caller omitted it.
type MissingParamError struct {
	Param string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required param %q", e.Param)
}

// ParamTypeMismatchError reports a parameter value that failed schema
// coercion. Expected describes what the schema would have accepted.
type ParamTypeMismatchError struct {
	Param    string
	Expected string
}

func (e *ParamTypeMismatchError) Error() string {
	return fmt.Sprintf("param %q must be %s", e.Param, e.Expected)
}
