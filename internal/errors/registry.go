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
	// Runtime Errors (W001-W009)
	// ============================================

	"W001": {
		Category: CategoryRuntime,
		Message:  "Invalid element type",
		Detail:   "An element type must be a host tag string or a component function of the form func(*weave.Scope, weave.Props) *weave.Element.",
		DocURL:   "https://weave.dev/docs/errors/W001",
	},
	"W002": {
		Category: CategoryRuntime,
		Message:  "Hook called outside component render",
		Detail:   "UseState reads the component fiber that is currently rendering. It can only be called synchronously from a component function.",
		DocURL:   "https://weave.dev/docs/errors/W002",
	},
	"W003": {
		Category: CategoryRuntime,
		Message:  "Hook order changed",
		Detail:   "A component declared a different number of state cells than on its previous render. Hooks are addressed by call order, so state may now be mapped to the wrong call site.",
		DocURL:   "https://weave.dev/docs/errors/W003",
	},

	// ============================================
	// Host Errors (W010-W019)
	// ============================================

	"W010": {
		Category: CategoryHost,
		Message:  "Host node creation failed",
		Detail:   "The host adapter could not create a node for a fiber. The work-in-progress generation was abandoned.",
		DocURL:   "https://weave.dev/docs/errors/W010",
	},
	"W011": {
		Category: CategoryHost,
		Message:  "Host mutation failed",
		Detail:   "The host adapter rejected a property, listener or child mutation.",
		DocURL:   "https://weave.dev/docs/errors/W011",
	},
	"W012": {
		Category: CategoryHost,
		Message:  "Foreign host node",
		Detail:   "The host adapter was given a node it did not create.",
		DocURL:   "https://weave.dev/docs/errors/W012",
	},
	"W013": {
		Category: CategoryHost,
		Message:  "Node is not a child of parent",
		Detail:   "RemoveChild was called with a node that is not attached to the given parent.",
		DocURL:   "https://weave.dev/docs/errors/W013",
	},

	// ============================================
	// Commit Errors (W020-W029)
	// ============================================

	"W020": {
		Category: CategoryHost,
		Message:  "Commit aborted",
		Detail:   "A host adapter failure aborted the commit. The host tree may be partially updated; the last committed generation is kept as the baseline.",
		DocURL:   "https://weave.dev/docs/errors/W020",
	},
	"W021": {
		Category: CategoryRuntime,
		Message:  "No host-bearing ancestor",
		Detail:   "A fiber has no ancestor that owns a host node. The root fiber must always own the container node.",
		DocURL:   "https://weave.dev/docs/errors/W021",
	},

	// ============================================
	// Scheduler Errors (W040-W049)
	// ============================================

	"W040": {
		Category: CategoryScheduler,
		Message:  "Scheduler loop closed",
		Detail:   "A task was posted to a loop that is no longer running.",
		DocURL:   "https://weave.dev/docs/errors/W040",
	},
	"W041": {
		Category: CategoryScheduler,
		Message:  "Scheduler loop already running",
		Detail:   "Run was called on a loop that is already running.",
		DocURL:   "https://weave.dev/docs/errors/W041",
	},

	// ============================================
	// Config Errors (W120-W129)
	// ============================================

	"W120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The weave.json file could not be read or parsed.",
		DocURL:   "https://weave.dev/docs/errors/W120",
	},
	"W121": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No weave.json was found.",
		DocURL:   "https://weave.dev/docs/errors/W121",
	},
	"W122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
		DocURL:   "https://weave.dev/docs/errors/W122",
	},

	// ============================================
	// CLI Errors (W140-W149)
	// ============================================

	"W140": {
		Category: CategoryCLI,
		Message:  "Unknown app",
		Detail:   "The requested demo app is not registered.",
		DocURL:   "https://weave.dev/docs/errors/W140",
	},
	"W141": {
		Category: CategoryCLI,
		Message:  "Render did not settle",
		Detail:   "The render did not reach a committed generation within the allotted slices.",
		DocURL:   "https://weave.dev/docs/errors/W141",
	},
	"W142": {
		Category: CategoryCLI,
		Message:  "Invalid flag value",
		Detail:   "A command-line flag was given a value it does not accept.",
		DocURL:   "https://weave.dev/docs/errors/W142",
	},

	// ============================================
	// Export Errors (W150-W159)
	// ============================================

	"W150": {
		Category: CategoryExport,
		Message:  "Export failed",
		Detail:   "The rendered document could not be written to the export target.",
		DocURL:   "https://weave.dev/docs/errors/W150",
	},
	"W151": {
		Category: CategoryExport,
		Message:  "Invalid export target",
		Detail:   "Export targets are a file path or an s3://bucket/key URL.",
		DocURL:   "https://weave.dev/docs/errors/W151",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
