package router

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// ResolveOptions configures a single resolution.
type ResolveOptions struct {
	// Params override or supplement values captured from the path. They
	// are validated against the schema like any other value. Keys that
	// name no schema parameter are ignored, so query strings can be
	// passed through untouched.
	Params map[string]any
}

// ResolveOption is a functional option for Resolve.
type ResolveOption func(*ResolveOptions)

// WithParams overrides or supplements captured parameter values.
func WithParams(params map[string]any) ResolveOption {
	return func(o *ResolveOptions) {
		o.Params = params
	}
}

// Resolve matches path against the table and returns the route identity
// with fully typed parameter values.
//
// Candidates are tried from most specific to least: more literal
// segments first, non-catch-alls before catch-alls, earlier
// registration breaking remaining ties. The first structural match
// commits, and its validation failures are final rather than retried
// against less specific routes. When nothing matches structurally but
// some candidate lined up on every literal while short of required
// parameters, the miss is reported as a MissingParamError instead of
// ErrNotFound.
func (r *Registry) Resolve(path string, opts ...ResolveOption) (Resolved, error) {
	var o ResolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	segs, err := splitResolvePath(path)
	if err != nil {
		return Resolved{}, err
	}

	snap := r.snap.Load()
	var static []*compiledRoute
	if len(segs) > 0 {
		static = snap.static[segs[0]]
	}

	missing := ""
	for _, c := range orderedCandidates(static, snap.dynamic) {
		raw, short, ok := c.pat.match(segs)
		if !ok {
			if short != "" && missing == "" {
				missing = short
			}
			continue
		}
		return c.finish(raw, o.Params)
	}
	if missing != "" {
		return Resolved{}, &MissingParamError{Param: missing}
	}
	return Resolved{}, ErrNotFound
}

// Make builds a Resolved for the identified route from caller-supplied
// params, validating them exactly as Resolve would. It is the typed
// entry point for structured navigation: callers hand over a route id
// and a param map instead of a rendered path.
func (r *Registry) Make(id string, params map[string]any) (Resolved, error) {
	c, ok := r.snap.Load().byID[id]
	if !ok {
		return Resolved{}, fmt.Errorf("route %q: %w", id, ErrNotFound)
	}
	p, err := c.bind(nil, params)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{RouteID: id, Params: p}, nil
}

// splitResolvePath splits a navigation path into segments. Exactly one
// trailing slash is tolerated and treated as an absent final segment;
// empty interior segments are malformed.
func splitResolvePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrMalformedPath)
	}
	if path[0] != '/' {
		return nil, fmt.Errorf("%w: %q does not begin with '/'", ErrMalformedPath, path)
	}
	if path == "/" {
		return nil, nil
	}

	segs := strings.Split(strings.TrimSuffix(path[1:], "/"), "/")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: %q contains an empty segment", ErrMalformedPath, path)
		}
	}
	return segs, nil
}

// orderedCandidates merges two specificity-sorted candidate lists into
// one specificity-ordered walk.
func orderedCandidates(a, b []*compiledRoute) []*compiledRoute {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]*compiledRoute, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if moreSpecific(b[j], a[i]) {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// finish decodes the captured values and binds them, together with any
// overrides, against the route schema.
func (c *compiledRoute) finish(raw map[string]string, overrides map[string]any) (Resolved, error) {
	for name, v := range raw {
		decoded, err := routepath.DecodeSegment(v, name == c.pat.caName)
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: param %q: %v", ErrMalformedPath, name, err)
		}
		raw[name] = decoded
	}
	params, err := c.bind(raw, overrides)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{RouteID: c.def.ID, Params: params}, nil
}

// bind merges captured and override values and coerces them to their
// schema types, walking parameters in pattern order so the first
// offending one is reported. Empty string values count as absent.
func (c *compiledRoute) bind(raw map[string]string, overrides map[string]any) (Params, error) {
	out := make(Params, len(c.params))
	for _, name := range c.params {
		spec := c.schema[name]

		var v any
		if ov, ok := overrides[name]; ok {
			v = ov
		} else if rv, ok := raw[name]; ok {
			v = rv
		}
		if v == nil || v == "" {
			if spec.Optional {
				continue
			}
			return nil, &MissingParamError{Param: name}
		}

		coerced, err := coerceParam(name, spec, v, name == c.pat.caName)
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}
	return out, nil
}

// coerceParam validates one value against its spec and converts it to
// the canonical runtime type: string for string and enum kinds, int64
// for int. Non-catch-all values must stay within a single segment.
func coerceParam(name string, spec ParamSpec, v any, catchAll bool) (any, error) {
	switch spec.Kind {
	case KindInt:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case string:
			if !isDigits(n) {
				return nil, &ParamTypeMismatchError{Param: name, Expected: "int"}
			}
			parsed, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, &ParamTypeMismatchError{Param: name, Expected: "int"}
			}
			return parsed, nil
		default:
			return nil, &ParamTypeMismatchError{Param: name, Expected: "int"}
		}

	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return nil, &ParamTypeMismatchError{Param: name, Expected: enumExpectation(spec.Enum)}
		}
		for _, allowed := range spec.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, &ParamTypeMismatchError{Param: name, Expected: enumExpectation(spec.Enum)}

	default:
		s, ok := v.(string)
		if !ok {
			return nil, &ParamTypeMismatchError{Param: name, Expected: "string"}
		}
		if catchAll {
			for _, part := range strings.Split(s, "/") {
				if part == "" {
					return nil, &ParamTypeMismatchError{Param: name, Expected: "slash-separated non-empty segments"}
				}
			}
			return s, nil
		}
		if strings.Contains(s, "/") {
			return nil, &ParamTypeMismatchError{Param: name, Expected: "a single path segment"}
		}
		return s, nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func enumExpectation(vals []string) string {
	return "one of: " + strings.Join(vals, ", ")
}
