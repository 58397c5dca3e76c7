package router

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Scanner discovers route definitions from a directory tree of screen
// files. The relative file path (extension stripped, "index" collapsed)
// becomes both the route id and the pattern.
//
// Two dynamic-segment conventions are accepted:
//
//  1. Bracket notation (Next.js/Expo style):
//     [id] → :id, [id:int] → typed :id, [[q]] → :q?,
//     [...rest] → *rest, [[...rest]] → optional *rest
//
//  2. Underscore notation, for file systems that dislike brackets:
//     _id_ → :id, _rest___ → *rest (triple underscore)
//
// Files and directories whose names start with "." are ignored, as are
// _test.go files and "_"-prefixed helper files such as _layout.go.
// Untyped params get their kind inferred from the name: id-like and
// counter-like names scan as ints, everything else as strings. Enum
// params cannot be declared in file names; use a manifest for those.
type Scanner struct {
	fsys fs.FS
}

// NewScanner creates a scanner over the given file system, typically
// os.DirFS(dir) or an embedded fs.
func NewScanner(fsys fs.FS) *Scanner {
	return &Scanner{fsys: fsys}
}

// Scan walks the tree and returns the discovered definitions in
// lexical order. The result is ready to hand to Registry.Register,
// which is where duplicate and ambiguity checking happens.
func (s *Scanner) Scan() ([]Definition, error) {
	var defs []Definition
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()

		if d.IsDir() {
			if p == "." {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if strings.HasPrefix(name, "_") && !strings.HasSuffix(name, "_") {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if strings.HasPrefix(name, "_") && !strings.HasSuffix(strings.TrimSuffix(name, ".go"), "_") {
			return nil
		}

		def, err := s.scanFile(p)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// scanFile converts one file path into a route definition.
func (s *Scanner) scanFile(p string) (Definition, error) {
	id := strings.TrimSuffix(p, ".go")

	segs := strings.Split(id, "/")
	if last := len(segs) - 1; segs[last] == "index" {
		segs = segs[:last]
	}

	parts := make([]string, 0, len(segs))
	schema := Schema{}
	for _, seg := range segs {
		text, pname, spec, isParam, err := scanSegment(seg)
		if err != nil {
			return Definition{}, err
		}
		parts = append(parts, text)
		if isParam {
			if _, dup := schema[pname]; dup {
				return Definition{}, fmt.Errorf("param %q appears twice", pname)
			}
			schema[pname] = spec
		}
	}

	pattern := "/" + strings.Join(parts, "/")
	if len(parts) == 0 {
		pattern = "/"
	}
	if len(schema) == 0 {
		schema = nil
	}
	return Definition{
		ID:      id,
		Pattern: pattern,
		Params:  schema,
		Source:  p,
	}, nil
}

// scanSegment converts one path segment into pattern text plus, for
// dynamic segments, the parameter's name and schema entry.
func scanSegment(seg string) (text, name string, spec ParamSpec, isParam bool, err error) {
	switch {
	case strings.HasPrefix(seg, "[[...") && strings.HasSuffix(seg, "]]"):
		name = seg[5 : len(seg)-2]
		if err = checkParamName(name); err != nil {
			return
		}
		return "*" + name, name, ParamSpec{Kind: KindString, Optional: true}, true, nil

	case strings.HasPrefix(seg, "[...") && strings.HasSuffix(seg, "]"):
		name = seg[4 : len(seg)-1]
		if err = checkParamName(name); err != nil {
			return
		}
		return "*" + name, name, ParamSpec{Kind: KindString}, true, nil

	case strings.HasPrefix(seg, "[[") && strings.HasSuffix(seg, "]]"):
		var kind Kind
		name, kind, err = splitParamDecl(seg[2 : len(seg)-2])
		if err != nil {
			return
		}
		return ":" + name + "?", name, ParamSpec{Kind: kind, Optional: true}, true, nil

	case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]"):
		var kind Kind
		name, kind, err = splitParamDecl(seg[1 : len(seg)-1])
		if err != nil {
			return
		}
		return ":" + name, name, ParamSpec{Kind: kind}, true, nil

	case strings.HasPrefix(seg, "_") && strings.HasSuffix(seg, "___"):
		name = seg[1 : len(seg)-3]
		if err = checkParamName(name); err != nil {
			return
		}
		return "*" + name, name, ParamSpec{Kind: KindString}, true, nil

	case strings.HasPrefix(seg, "_") && strings.HasSuffix(seg, "_") && len(seg) > 2:
		name = seg[1 : len(seg)-1]
		if err = checkParamName(name); err != nil {
			return
		}
		return ":" + name, name, ParamSpec{Kind: inferKindFromName(name)}, true, nil

	default:
		return seg, "", ParamSpec{}, false, nil
	}
}

// splitParamDecl parses "name" or "name:kind" from a bracket segment.
func splitParamDecl(decl string) (string, Kind, error) {
	name, kindText, hasKind := strings.Cut(decl, ":")
	if err := checkParamName(name); err != nil {
		return "", "", err
	}
	if !hasKind {
		return name, inferKindFromName(name), nil
	}
	switch Kind(kindText) {
	case KindString, KindInt:
		return name, Kind(kindText), nil
	default:
		return "", "", fmt.Errorf("param %q has unknown kind annotation %q", name, kindText)
	}
}

// inferKindFromName guesses a param kind from its name, following the
// naming conventions screens tend to use. uuid-ish names are checked
// first since "uuid" also ends in "id".
func inferKindFromName(name string) Kind {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, "uuid") {
		return KindString
	}
	if strings.HasSuffix(lower, "id") {
		return KindInt
	}
	switch lower {
	case "page", "limit", "offset", "count", "index", "num", "number", "year", "month", "day":
		return KindInt
	}
	return KindString
}

// RelSource rebases a definition's Source against a root directory for
// display, e.g. in CLI listings.
func RelSource(root string, def Definition) string {
	if def.Source == "" {
		return ""
	}
	return path.Join(root, def.Source)
}
