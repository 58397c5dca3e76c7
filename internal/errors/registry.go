package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Registration Errors (W001-W019)
	// ============================================

	"W001": {
		Category: CategoryRegistration,
		Message:  "Duplicate route id",
		Detail:   "Two route definitions share the same id. Route ids must be unique across the whole table; the second registration is rejected and the table is left unchanged.",
		DocURL:   "https://wayfind.dev/docs/errors/W001",
	},
	"W002": {
		Category: CategoryRegistration,
		Message:  "Ambiguous route patterns",
		Detail:   "Two route patterns can match the same concrete path, so resolution would depend on registration order. Make the patterns distinguishable or remove one.",
		DocURL:   "https://wayfind.dev/docs/errors/W002",
	},
	"W003": {
		Category: CategoryRegistration,
		Message:  "Invalid route pattern",
		Detail:   "The pattern does not follow the /literal/:required/:optional?/*catchAll grammar. Optional params must be trailing and a catch-all must be the final segment.",
		DocURL:   "https://wayfind.dev/docs/errors/W003",
	},
	"W004": {
		Category: CategoryRegistration,
		Message:  "Param schema mismatch",
		Detail:   "The param schema does not line up with the pattern: a declared param is missing from the pattern, an optional flag disagrees with the ? marker, or an enum is empty.",
		DocURL:   "https://wayfind.dev/docs/errors/W004",
	},
	"W005": {
		Category: CategoryRegistration,
		Message:  "Registry is frozen",
		Detail:   "Register was called after Freeze. Route tables are populated during start-up and frozen before navigation begins.",
		DocURL:   "https://wayfind.dev/docs/errors/W005",
	},

	// ============================================
	// Resolution Errors (W020-W039)
	// ============================================

	"W020": {
		Category: CategoryResolution,
		Message:  "Malformed path",
		Detail:   "The path is not well-formed: it must start with / and contain no empty interior segments.",
		DocURL:   "https://wayfind.dev/docs/errors/W020",
	},
	"W021": {
		Category: CategoryResolution,
		Message:  "No route matches path",
		Detail:   "No registered route pattern matches the path structurally.",
		DocURL:   "https://wayfind.dev/docs/errors/W021",
	},
	"W022": {
		Category: CategoryResolution,
		Message:  "Missing required param",
		Detail:   "The path matched a route structurally but a required param has no value.",
		DocURL:   "https://wayfind.dev/docs/errors/W022",
	},
	"W023": {
		Category: CategoryResolution,
		Message:  "Param type mismatch",
		Detail:   "A captured segment does not satisfy the declared param type, such as a non-numeric value for an int param or a value outside an enum.",
		DocURL:   "https://wayfind.dev/docs/errors/W023",
	},

	// ============================================
	// Link Errors (W040-W059)
	// ============================================

	"W040": {
		Category: CategoryLink,
		Message:  "Deep link rejected",
		Detail:   "The link's scheme or domain is not in the allowlist configured for the listener.",
		DocURL:   "https://wayfind.dev/docs/errors/W040",
	},
	"W041": {
		Category: CategoryLink,
		Message:  "Association config incomplete",
		Detail:   "Generating site-association files requires an Apple app id and/or an Android package with certificate fingerprints.",
		DocURL:   "https://wayfind.dev/docs/errors/W041",
	},
	"W042": {
		Category: CategoryLink,
		Message:  "Publishing association files failed",
		Detail:   "Uploading the association files to the link bucket failed. Check credentials and bucket configuration.",
		DocURL:   "https://wayfind.dev/docs/errors/W042",
	},

	// ============================================
	// Config Errors (W060-W079)
	// ============================================

	"W060": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No wayfind.json was found in the working directory or any parent directory.",
		DocURL:   "https://wayfind.dev/docs/errors/W060",
	},
	"W061": {
		Category: CategoryConfig,
		Message:  "Config file invalid",
		Detail:   "wayfind.json exists but could not be parsed.",
		DocURL:   "https://wayfind.dev/docs/errors/W061",
	},
	"W062": {
		Category: CategoryConfig,
		Message:  "Config validation failed",
		Detail:   "wayfind.json parsed but contains invalid values.",
		DocURL:   "https://wayfind.dev/docs/errors/W062",
	},

	// ============================================
	// CLI Errors (W080-W099)
	// ============================================

	"W080": {
		Category: CategoryCLI,
		Message:  "Routes directory not found",
		Detail:   "The configured routes directory does not exist or cannot be read.",
		DocURL:   "https://wayfind.dev/docs/errors/W080",
	},
	"W081": {
		Category: CategoryCLI,
		Message:  "Manifest load failed",
		Detail:   "The route manifest could not be read or parsed.",
		DocURL:   "https://wayfind.dev/docs/errors/W081",
	},
	"W082": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names become directory and module names, so they must be lowercase with no spaces and must not start with a digit.",
		DocURL:   "https://wayfind.dev/docs/errors/W082",
	},
	"W083": {
		Category: CategoryCLI,
		Message:  "Target already exists",
		Detail:   "The target file or directory already exists and will not be overwritten.",
		DocURL:   "https://wayfind.dev/docs/errors/W083",
	},
	"W084": {
		Category: CategoryCLI,
		Message:  "Template not found",
		Detail:   "No project template with that name is registered.",
		DocURL:   "https://wayfind.dev/docs/errors/W084",
	},
}
