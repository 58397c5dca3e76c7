// Package errors provides structured, actionable error messages for Wayfind.
//
// The errors package implements an error system that:
//   - Assigns every known failure a stable code (e.g., "W001")
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues
//   - Links to documentation for deeper understanding
//
// # Error Categories
//
// Errors are organized into categories:
//   - registration: Route table construction errors (duplicates, ambiguity)
//   - resolution: Path resolution errors (no match, bad params)
//   - link: Deep link and association file errors
//   - config: wayfind.json errors
//   - cli: Command-line usage errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "W001") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Usage
//
//	err := errors.New("W002").
//	    WithLocation("app/routes/users/[id].go", 0).
//	    WithSuggestion("Rename one of the params or remove a route")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR W002: Ambiguous route patterns
//	//
//	//   app/routes/users/[id].go
//	//
//	//   Two route patterns can match the same concrete path. ...
//	//
//	//   Hint: Rename one of the params or remove a route
//	//
//	//   Learn more: https://wayfind.dev/docs/errors/W002
package errors
