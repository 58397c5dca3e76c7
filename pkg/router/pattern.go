package router

import (
	"fmt"
	"strings"
)

// segKind discriminates the four pattern segment forms.
type segKind uint8

const (
	segLiteral segKind = iota
	segParam
	segOptional
	segCatchAll
)

// segment is one parsed pattern segment: a literal's text or a
// parameter's name.
type segment struct {
	kind segKind
	val  string
}

// pattern is a compiled route pattern plus the facts resolution needs:
// arity bounds, literal count and catch-all behavior.
type pattern struct {
	raw      string
	segs     []segment
	fixed    int  // segments before the catch-all
	reqFixed int  // fixed segments that are not optional
	literals int  // literal count, the primary specificity key
	catchAll bool
	caOpt    bool   // catch-all may match zero segments
	caName   string // catch-all parameter name
}

// parsePattern splits raw into validated segments. Patterns begin with
// "/", contain no empty segments, keep optionals after all required
// segments and allow a catch-all only in final position.
func parsePattern(raw string) ([]segment, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	if raw[0] != '/' {
		return nil, fmt.Errorf("pattern must begin with '/'")
	}
	if raw == "/" {
		return nil, nil
	}
	if strings.HasSuffix(raw, "/") {
		return nil, fmt.Errorf("pattern must not end with '/'")
	}

	parts := strings.Split(raw[1:], "/")
	segs := make([]segment, 0, len(parts))
	names := make(map[string]bool, len(parts))
	seenOptional := false

	for i, part := range parts {
		switch {
		case part == "":
			return nil, fmt.Errorf("empty segment at position %d", i)

		case strings.HasPrefix(part, ":"):
			name := part[1:]
			kind := segParam
			if strings.HasSuffix(name, "?") {
				name = name[:len(name)-1]
				kind = segOptional
			}
			if err := checkParamName(name); err != nil {
				return nil, err
			}
			if names[name] {
				return nil, fmt.Errorf("param %q appears twice", name)
			}
			names[name] = true
			if kind == segParam && seenOptional {
				return nil, fmt.Errorf("required param %q after optional segment", name)
			}
			if kind == segOptional {
				seenOptional = true
			}
			segs = append(segs, segment{kind: kind, val: name})

		case strings.HasPrefix(part, "*"):
			name := part[1:]
			if err := checkParamName(name); err != nil {
				return nil, err
			}
			if names[name] {
				return nil, fmt.Errorf("param %q appears twice", name)
			}
			names[name] = true
			if i != len(parts)-1 {
				return nil, fmt.Errorf("catch-all *%s must be the final segment", name)
			}
			segs = append(segs, segment{kind: segCatchAll, val: name})

		default:
			if strings.ContainsAny(part, ":*?") {
				return nil, fmt.Errorf("literal segment %q contains reserved characters", part)
			}
			if seenOptional {
				return nil, fmt.Errorf("literal segment %q after optional segment", part)
			}
			segs = append(segs, segment{kind: segLiteral, val: part})
		}
	}
	return segs, nil
}

// checkParamName enforces identifier-style parameter names.
func checkParamName(name string) error {
	if name == "" {
		return fmt.Errorf("param name is empty")
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("param name %q starts with a digit", name)
			}
		default:
			return fmt.Errorf("param name %q contains %q", name, r)
		}
	}
	return nil
}

// compilePattern parses raw and reconciles it with the schema. It
// returns the compiled pattern and a normalized schema copy: kinds
// defaulted to string, enum sets validated and copied.
func compilePattern(raw string, schema Schema) (*pattern, Schema, error) {
	segs, err := parsePattern(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	p := &pattern{raw: raw, segs: segs, fixed: len(segs)}
	for _, s := range segs {
		switch s.kind {
		case segLiteral:
			p.literals++
		case segCatchAll:
			p.catchAll = true
			p.caName = s.val
			p.fixed--
		}
	}
	p.reqFixed = p.fixed
	for i := 0; i < p.fixed; i++ {
		if segs[i].kind == segOptional {
			p.reqFixed--
		}
	}

	norm := make(Schema, len(schema))
	for _, s := range segs {
		if s.kind == segLiteral {
			continue
		}
		spec, ok := schema[s.val]
		if !ok {
			return nil, nil, fmt.Errorf("%w: pattern names %q but the schema has no entry for it", ErrSchemaMismatch, s.val)
		}
		spec, err := normalizeSpec(s, spec)
		if err != nil {
			return nil, nil, err
		}
		norm[s.val] = spec
	}
	for name := range schema {
		if _, ok := norm[name]; !ok {
			return nil, nil, fmt.Errorf("%w: schema names %q but the pattern does not", ErrSchemaMismatch, name)
		}
	}
	if p.catchAll {
		p.caOpt = norm[p.caName].Optional
	}
	return p, norm, nil
}

// normalizeSpec checks one schema entry against its pattern segment and
// fills defaults.
func normalizeSpec(s segment, spec ParamSpec) (ParamSpec, error) {
	switch spec.Kind {
	case "":
		spec.Kind = KindString
	case KindString, KindInt, KindEnum:
	default:
		return spec, fmt.Errorf("%w: param %q has unknown kind %q", ErrSchemaMismatch, s.val, spec.Kind)
	}

	if s.kind == segCatchAll {
		if spec.Kind != KindString {
			return spec, fmt.Errorf("%w: catch-all %q must be a string param", ErrSchemaMismatch, s.val)
		}
	} else {
		wantOptional := s.kind == segOptional
		if spec.Optional != wantOptional {
			if wantOptional {
				return spec, fmt.Errorf("%w: pattern marks %q optional but the schema does not", ErrSchemaMismatch, s.val)
			}
			return spec, fmt.Errorf("%w: schema marks %q optional but the pattern does not", ErrSchemaMismatch, s.val)
		}
	}

	if spec.Kind == KindEnum {
		if len(spec.Enum) == 0 {
			return spec, fmt.Errorf("%w: enum param %q has no values", ErrSchemaMismatch, s.val)
		}
		seen := make(map[string]bool, len(spec.Enum))
		vals := make([]string, len(spec.Enum))
		for i, v := range spec.Enum {
			if v == "" || strings.Contains(v, "/") {
				return spec, fmt.Errorf("%w: enum param %q has invalid value %q", ErrSchemaMismatch, s.val, v)
			}
			if seen[v] {
				return spec, fmt.Errorf("%w: enum param %q repeats value %q", ErrSchemaMismatch, s.val, v)
			}
			seen[v] = true
			vals[i] = v
		}
		spec.Enum = vals
	} else if len(spec.Enum) > 0 {
		return spec, fmt.Errorf("%w: param %q has enum values but kind %s", ErrSchemaMismatch, s.val, spec.Kind)
	}
	return spec, nil
}

// paramNames returns the parameter names in pattern order.
func paramNames(p *pattern) []string {
	var names []string
	for _, s := range p.segs {
		if s.kind != segLiteral {
			names = append(names, s.val)
		}
	}
	return names
}

// shapes returns one distinguishability signature per arity the pattern
// can match. Literal segments contribute their text, parameters
// contribute ":" regardless of name, a catch-all contributes "*". Two
// patterns that share a signature cannot be told apart by the matcher,
// so registration rejects the second one.
func (p *pattern) shapes() []string {
	parts := make([]string, 0, p.fixed)
	for i := 0; i < p.fixed; i++ {
		if p.segs[i].kind == segLiteral {
			parts = append(parts, "="+p.segs[i].val)
		} else {
			parts = append(parts, ":")
		}
	}

	var sigs []string
	for n := p.reqFixed; n <= p.fixed; n++ {
		prefix := strings.Join(parts[:n], "/")
		switch {
		case !p.catchAll:
			sigs = append(sigs, prefix)
		case p.caOpt:
			sigs = append(sigs, prefix, joinSig(prefix, "*"))
		default:
			sigs = append(sigs, joinSig(prefix, "*"))
		}
	}
	return sigs
}

func joinSig(prefix, tail string) string {
	if prefix == "" {
		return tail
	}
	return prefix + "/" + tail
}

// match binds path segments to the pattern positionally. On a
// structural match it returns the raw captured values, still
// percent-encoded. When every present segment lined up but required
// parameters are absent, it reports the first missing name so the
// caller can prefer a missing-param error over a plain miss.
//
// Segments fill fixed positions left to right. When a required
// catch-all would otherwise be left empty, the last optional gives its
// segment back to the tail, so "/a/x" matches "/a/:opt?/*rest" with opt
// absent and rest == "x".
func (p *pattern) match(segs []string) (raw map[string]string, missing string, ok bool) {
	n := len(segs)
	if !p.catchAll && n > p.fixed {
		return nil, "", false
	}

	fill := p.fixed
	if n < fill {
		fill = n
	}
	if p.catchAll && !p.caOpt && n == fill && fill > p.reqFixed {
		fill--
	}

	for i := 0; i < fill; i++ {
		if p.segs[i].kind == segLiteral && p.segs[i].val != segs[i] {
			return nil, "", false
		}
	}

	if fill < p.reqFixed {
		for i := fill; i < p.reqFixed; i++ {
			if p.segs[i].kind == segLiteral {
				return nil, "", false
			}
		}
		return nil, p.segs[fill].val, false
	}
	if p.catchAll && n == fill && !p.caOpt {
		return nil, p.caName, false
	}

	raw = make(map[string]string, len(p.segs)-p.literals)
	for i := 0; i < fill; i++ {
		if p.segs[i].kind != segLiteral {
			raw[p.segs[i].val] = segs[i]
		}
	}
	if p.catchAll && n > fill {
		raw[p.caName] = strings.Join(segs[fill:], "/")
	}
	return raw, "", true
}
