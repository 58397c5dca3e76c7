package router

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ToPath renders a resolved route back into its canonical path, the
// inverse of Resolve: resolving the returned path yields res again.
// Values are validated against the schema before rendering, so a
// hand-built Resolved with a missing required param or a wrong value
// type is rejected instead of rendered into a broken path. Param values
// are percent-escaped per segment.
func (r *Registry) ToPath(res Resolved) (string, error) {
	c, ok := r.snap.Load().byID[res.RouteID]
	if !ok {
		return "", fmt.Errorf("route %q: %w", res.RouteID, ErrNotFound)
	}
	return c.path(res.Params)
}

// PathFor validates params for the identified route and renders the
// path in one step.
func (r *Registry) PathFor(id string, params map[string]any) (string, error) {
	res, err := r.Make(id, params)
	if err != nil {
		return "", err
	}
	return r.ToPath(res)
}

func (c *compiledRoute) path(params Params) (string, error) {
	parts := make([]string, 0, len(c.pat.segs))

	// The first absent optional ends the rendered path; a later value
	// would leave a hole, so it is reported against the absent param.
	stoppedAt := ""
	for i := 0; i < c.pat.fixed; i++ {
		seg := c.pat.segs[i]
		if seg.kind == segLiteral {
			parts = append(parts, seg.val)
			continue
		}
		v, ok := params[seg.val]
		if !ok || v == "" {
			if seg.kind == segParam {
				return "", &MissingParamError{Param: seg.val}
			}
			if stoppedAt == "" {
				stoppedAt = seg.val
			}
			continue
		}
		if stoppedAt != "" {
			return "", &MissingParamError{Param: stoppedAt}
		}
		coerced, err := coerceParam(seg.val, c.schema[seg.val], v, false)
		if err != nil {
			return "", err
		}
		parts = append(parts, renderSegment(coerced))
	}

	if c.pat.catchAll {
		v, ok := params[c.pat.caName]
		switch {
		case !ok || v == "":
			if !c.pat.caOpt {
				return "", &MissingParamError{Param: c.pat.caName}
			}
		default:
			coerced, err := coerceParam(c.pat.caName, c.schema[c.pat.caName], v, true)
			if err != nil {
				return "", err
			}
			tail := coerced.(string)
			// After an absent optional, only the shape the matcher can
			// reproduce is renderable: a required tail holding exactly
			// one segment, which resolution hands back to the catch-all.
			// Anything longer would re-resolve into the optional.
			if stoppedAt != "" && (c.pat.caOpt || strings.Contains(tail, "/")) {
				return "", &MissingParamError{Param: stoppedAt}
			}
			for _, part := range strings.Split(tail, "/") {
				parts = append(parts, url.PathEscape(part))
			}
		}
	}

	if len(parts) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(parts, "/"), nil
}

// renderSegment formats one typed value as an escaped path segment.
func renderSegment(v any) string {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10)
	case string:
		return url.PathEscape(t)
	default:
		return url.PathEscape(fmt.Sprintf("%v", t))
	}
}
