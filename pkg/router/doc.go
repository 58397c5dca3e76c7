// Package router implements Wayfind's route registry and resolver.
//
// The router provides:
//   - A typed route table keyed by stable route ids
//   - Pattern matching with literals, params, optionals and catch-alls
//   - Parameter coercion against a per-route schema
//   - Path construction (ToPath) as the inverse of resolution
//   - File-system based route discovery and manifest loading
//
// # Pattern Grammar
//
// Patterns are slash-separated and always begin with "/":
//
//	/settings              literal segments only
//	/users/:id             :id is required, one segment
//	/search/:query?        :query? may be omitted
//	/files/*path           *path consumes the remaining segments
//
// Optional segments may only appear after all required ones, and a
// catch-all must be the final segment. Each named parameter carries a
// schema entry declaring its kind (string, int or enum) and optionality.
//
// # File Structure Convention
//
// Routes can be discovered from a directory of Go files:
//
//	app/screens/
//	├── index.go            → /
//	├── settings.go         → /settings
//	├── users/
//	│   ├── index.go        → /users
//	│   └── [id:int].go     → /users/:id (int)
//	└── files/
//	    └── [...path].go    → /files/*path
//
// Bracket segments declare params ([id]), typed params ([id:int]),
// optionals ([[q]]) and catch-alls ([...path], [[...path]] optional).
// The underscore forms _id_ and _path___ are accepted for file systems
// that dislike brackets.
//
// # Usage
//
//	reg := router.New()
//	err := reg.Register(router.Definition{
//	    ID:      "post-detail",
//	    Pattern: "/post/:id",
//	    Params:  router.Schema{"id": {Kind: router.KindInt}},
//	})
//
//	res, err := reg.Resolve("/post/42")
//	// res.RouteID == "post-detail", res.Params.Int("id") == 42
//
//	path, err := reg.ToPath(res)
//	// path == "/post/42"
//
// Resolution reads a registry snapshot and never blocks registration;
// Register installs a new snapshot atomically, so resolvers running on
// other goroutines see either the old table or the new one, never a
// partial write.
package router
