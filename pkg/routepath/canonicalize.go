// Package routepath normalizes and validates navigation paths before
// they reach the resolver. It exists so every entry point that accepts
// outside input (deep links, dev tooling, HTTP bridges) applies the
// same canonical form and the same rejections.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path validation errors.
var (
	ErrNotRelative  = errors.New("path is not relative to the app root")
	ErrBackslash    = errors.New("path contains a backslash")
	ErrNULByte      = errors.New("path contains a NUL byte")
	ErrBadEscape    = errors.New("invalid percent escape")
	ErrEscapesRoot  = errors.New("path escapes the root via ..")
	ErrEncodedSlash = errors.New("encoded slash in a single-segment value")
)

// Result is the outcome of canonicalization.
type Result struct {
	// Path is the canonical path, query string removed.
	Path string

	// Query is the raw query string without the leading "?". It is
	// carried through untouched.
	Query string

	// Changed reports whether canonicalization altered the path.
	Changed bool
}

// Canonicalize normalizes a path into the form the resolver expects:
//
//   - a leading "/" is added if missing
//   - repeated slashes collapse ("/a//b" → "/a/b")
//   - "." segments are dropped, ".." segments pop their parent
//   - a trailing slash is removed (except on "/")
//
// Inputs that smuggle structure are rejected: backslashes, NUL bytes
// (literal or %00), malformed percent escapes, and ".." sequences that
// would climb above the root. A query string may be attached and is
// split off unmodified.
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	path, query, _ := strings.Cut(input, "?")
	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslash
	}
	if strings.Contains(path, "\x00") {
		return Result{}, ErrNULByte
	}
	if err := checkEscapes(path); err != nil {
		return Result{}, err
	}

	original := path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	kept := make([]string, 0, 8)
	for _, seg := range strings.Split(path[1:], "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(kept) == 0 {
				return Result{}, ErrEscapesRoot
			}
			kept = kept[:len(kept)-1]
		default:
			kept = append(kept, seg)
		}
	}

	path = "/" + strings.Join(kept, "/")
	return Result{
		Path:    path,
		Query:   query,
		Changed: path != original,
	}, nil
}

// NavPath canonicalizes a path supplied by the outside world. On top of
// Canonicalize it refuses anything that is not app-root relative, which
// closes the open-redirect shapes "http://...", "https://..." and
// "//host". The query string, when present, is re-attached to the
// result.
func NavPath(path string) (string, error) {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "", ErrNotRelative
	}
	if strings.Contains(path, "://") {
		return "", ErrNotRelative
	}
	res, err := Canonicalize(path)
	if err != nil {
		return "", err
	}
	if res.Query != "" {
		return res.Path + "?" + res.Query, nil
	}
	return res.Path, nil
}

// DecodeSegment percent-decodes one captured path value. Values bound
// to a single segment must not decode to anything containing "/"; a
// %2F there is a path smuggling attempt, not data. Catch-all values
// span segments, so for them "/" is ordinary content.
func DecodeSegment(value string, catchAll bool) (string, error) {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", ErrBadEscape
	}
	if !catchAll && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlash
	}
	return decoded, nil
}

// checkEscapes validates every % sequence as %XX with hex digits and
// rejects encoded NUL bytes.
func checkEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) {
			return ErrBadEscape
		}
		hi, okHi := hexVal(path[i+1])
		lo, okLo := hexVal(path[i+2])
		if !okHi || !okLo {
			return ErrBadEscape
		}
		if hi == 0 && lo == 0 {
			return ErrNULByte
		}
		i += 2
	}
	return nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
