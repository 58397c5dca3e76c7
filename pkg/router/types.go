package router

// Kind identifies the value type of a route parameter.
type Kind string

const (
	// KindString accepts any single path segment. This is the default.
	KindString Kind = "string"

	// KindInt accepts digit-only segments and yields int64 values.
	KindInt Kind = "int"

	// KindEnum accepts one of a fixed set of string values.
	KindEnum Kind = "enum"
)

// ParamSpec describes a single route parameter.
type ParamSpec struct {
	// Kind is the parameter's value type. The zero value means KindString.
	Kind Kind

	// Optional marks the parameter as omittable. For ordinary params this
	// must agree with the "?" marker in the pattern; for a catch-all it
	// allows the tail to match zero segments.
	Optional bool

	// Enum lists the allowed values for KindEnum parameters. Values must
	// be unique, non-empty and free of "/".
	Enum []string
}

// Schema maps parameter names to their specs. Every parameter named in
// the route pattern must have exactly one entry here, and vice versa.
type Schema map[string]ParamSpec

// Definition declares a route for registration.
type Definition struct {
	// ID is the stable identity callers navigate by. Unique per registry.
	ID string

	// Pattern is the path pattern, e.g. "/users/:id" or "/files/*path".
	Pattern string

	// Params is the parameter schema. May be nil for literal-only routes.
	Params Schema

	// Source is the file the route was discovered in when it came from a
	// scanner or manifest. Informational; used in error reporting.
	Source string
}

// Resolved is the outcome of a successful resolution: a route identity
// plus fully typed parameter values. It is the unit the navigator,
// deep-link listener and history stack all traffic in.
type Resolved struct {
	RouteID string
	Params  Params
}

// Params holds resolved parameter values keyed by name. String and enum
// parameters are string values, int parameters are int64, and a
// catch-all is the remaining segments joined with "/". Absent optional
// parameters have no entry.
type Params map[string]any

// Has reports whether the named parameter is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String returns the named parameter as a string, or "" if absent or
// not a string value.
func (p Params) String(name string) string {
	v, _ := p[name].(string)
	return v
}

// Int returns the named parameter as an int64, or 0 if absent or not
// an int value.
func (p Params) Int(name string) int64 {
	v, _ := p[name].(int64)
	return v
}

// Clone returns a shallow copy of the params map.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
