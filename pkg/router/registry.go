package router

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// compiledRoute pairs a definition with its compiled pattern and
// normalized schema. Instances are immutable once built.
type compiledRoute struct {
	def    Definition
	pat    *pattern
	schema Schema
	params []string // parameter names in pattern order
	seq    int      // registration sequence, the final specificity tie break
}

// snapshot is an immutable view of the route table. Resolvers load the
// current snapshot once and work against it; Register installs a fresh
// snapshot built from a copy, so readers never observe a partial table.
type snapshot struct {
	static  map[string][]*compiledRoute // keyed by first literal segment
	dynamic []*compiledRoute            // root and patterns starting with a param or catch-all
	byID    map[string]*compiledRoute
	shapes  map[string]string // signature → owning route id
	routes  []*compiledRoute  // registration order
}

// Registry is the navigation route table. Registration takes an
// exclusive lock; resolution is lock-free against the latest snapshot
// and safe to call from any goroutine. The zero value is not usable;
// create registries with New.
type Registry struct {
	mu     sync.Mutex
	frozen bool
	snap   atomic.Pointer[snapshot]
}

// New creates an empty registry.
func New() *Registry {
	r := &Registry{}
	r.snap.Store(&snapshot{
		static: map[string][]*compiledRoute{},
		byID:   map[string]*compiledRoute{},
		shapes: map[string]string{},
	})
	return r
}

// Register adds routes to the table. The batch is atomic: either every
// definition is accepted and one new snapshot is installed, or the
// table is left untouched and the first offending definition is
// reported. Errors wrap ErrDuplicateRouteID, ErrInvalidPattern,
// ErrSchemaMismatch or ErrAmbiguousPattern.
func (r *Registry) Register(defs ...Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}

	next := r.snap.Load().clone()
	for _, def := range defs {
		if err := next.add(def); err != nil {
			return err
		}
	}
	next.sort()
	r.snap.Store(next)
	return nil
}

// Freeze ends the population phase; further Register calls fail with
// ErrRegistryFrozen. Freezing is optional: an unfrozen registry accepts
// live registration, which resolvers observe atomically.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	return len(r.snap.Load().routes)
}

// Routes returns the registered definitions in registration order.
func (r *Registry) Routes() []Definition {
	snap := r.snap.Load()
	out := make([]Definition, len(snap.routes))
	for i, c := range snap.routes {
		out[i] = c.definition()
	}
	return out
}

// Lookup returns the definition registered under id.
func (r *Registry) Lookup(id string) (Definition, bool) {
	c, ok := r.snap.Load().byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.definition(), true
}

// definition returns a caller-safe copy of the route's definition with
// the normalized schema.
func (c *compiledRoute) definition() Definition {
	def := c.def
	def.Params = cloneSchema(c.schema)
	return def
}

func cloneSchema(s Schema) Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for name, spec := range s {
		if len(spec.Enum) > 0 {
			spec.Enum = append([]string(nil), spec.Enum...)
		}
		out[name] = spec
	}
	return out
}

func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		static:  make(map[string][]*compiledRoute, len(s.static)),
		dynamic: append([]*compiledRoute(nil), s.dynamic...),
		byID:    make(map[string]*compiledRoute, len(s.byID)+1),
		shapes:  make(map[string]string, len(s.shapes)+1),
		routes:  append([]*compiledRoute(nil), s.routes...),
	}
	for k, v := range s.static {
		next.static[k] = append([]*compiledRoute(nil), v...)
	}
	for k, v := range s.byID {
		next.byID[k] = v
	}
	for k, v := range s.shapes {
		next.shapes[k] = v
	}
	return next
}

// add validates one definition against the snapshot and inserts it.
func (s *snapshot) add(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("route with pattern %q has an empty id", def.Pattern)
	}
	if _, dup := s.byID[def.ID]; dup {
		return fmt.Errorf("route %q: %w", def.ID, ErrDuplicateRouteID)
	}

	pat, schema, err := compilePattern(def.Pattern, def.Params)
	if err != nil {
		return fmt.Errorf("route %q: %w", def.ID, err)
	}
	sigs := pat.shapes()
	for _, sig := range sigs {
		if other, clash := s.shapes[sig]; clash {
			return fmt.Errorf("route %q: pattern %q cannot be told apart from route %q: %w",
				def.ID, def.Pattern, other, ErrAmbiguousPattern)
		}
	}

	def.Params = schema
	c := &compiledRoute{
		def:    def,
		pat:    pat,
		schema: schema,
		params: paramNames(pat),
		seq:    len(s.routes),
	}
	for _, sig := range sigs {
		s.shapes[sig] = def.ID
	}
	s.byID[def.ID] = c
	s.routes = append(s.routes, c)

	if len(pat.segs) > 0 && pat.segs[0].kind == segLiteral {
		key := pat.segs[0].val
		s.static[key] = append(s.static[key], c)
	} else {
		s.dynamic = append(s.dynamic, c)
	}
	return nil
}

// sort orders every candidate bucket by specificity.
func (s *snapshot) sort() {
	for _, bucket := range s.static {
		sortBySpecificity(bucket)
	}
	sortBySpecificity(s.dynamic)
}

func sortBySpecificity(routes []*compiledRoute) {
	sort.Slice(routes, func(i, j int) bool {
		return moreSpecific(routes[i], routes[j])
	})
}

// moreSpecific reports whether a is tried before b: more literal
// segments first, then non-catch-alls before catch-alls, then
// registration order.
func moreSpecific(a, b *compiledRoute) bool {
	if a.pat.literals != b.pat.literals {
		return a.pat.literals > b.pat.literals
	}
	if a.pat.catchAll != b.pat.catchAll {
		return !a.pat.catchAll
	}
	return a.seq < b.seq
}
