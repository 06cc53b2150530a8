package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Invariant violations (E001-E099)

	"E001": {
		Category: CategoryInvariant,
		Message:  "Node list reached the diff engine",
		Detail:   "A NodeList must be unrolled into its parent's children when the tree is built. It may only appear as the root of a tree and never be diffed against another NodeList.",
	},
	"E002": {
		Category: CategoryInvariant,
		Message:  "Child index out of range",
		Detail:   "Reconciliation computed a sibling index that does not exist in the list being walked.",
	},
	"E003": {
		Category: CategoryInvariant,
		Message:  "Nil node reached the diff engine",
		Detail:   "Trees handed to the diff engine must not contain nil nodes. Build children with the element factories, which drop nil.",
	},
	"E004": {
		Category: CategoryInvariant,
		Message:  "Fragment below the root of a tree",
		Detail:   "A fragment has no node of its own, so it can only be the root of a tree. Build children with the element factories, which splice fragments into their parent.",
	},

	// Configuration (E101-E119)

	"E101": {
		Category: CategoryConfig,
		Message:  "Failed to read config file",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Failed to parse config file",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},

	// Tree documents (E150-E169)

	"E150": {
		Category: CategoryDocument,
		Message:  "Failed to load tree document",
	},
	"E151": {
		Category: CategoryDocument,
		Message:  "Unknown node kind in tree document",
		Detail:   "Each node needs exactly one of tag, text, comment, doctype, symbol or fragment.",
	},
	"E152": {
		Category: CategoryDocument,
		Message:  "Invalid attribute value in tree document",
	},

	// Patch application (E201-E219)

	"E201": {
		Category: CategoryApply,
		Message:  "Patch path does not resolve to a node",
		Detail:   "Paths are computed against the old tree. The consumer's tree no longer matches the tree the patches were computed from.",
	},
	"E202": {
		Category: CategoryApply,
		Message:  "Patch tag hint does not match target",
	},
	"E203": {
		Category: CategoryApply,
		Message:  "Patch cannot be applied to its target",
	},

	// Wire protocol (E301-E319)

	"E301": {
		Category: CategoryProtocol,
		Message:  "Malformed patch frame",
	},

	// CLI (E401-E419)

	"E401": {
		Category: CategoryCLI,
		Message:  "Invalid command arguments",
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
