package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

var (
	registryMu sync.RWMutex

	// registry maps error codes to their templates.
	registry = map[string]ErrorTemplate{
		// Configuration errors (A001-A019)

		"A001": {
			Category: CategoryConfig,
			Message:  "Missing animation class name",
			Detail:   "An animated component needs the CSS class that carries the animation. It is applied while the component is animating.",
			DocURL:   "https://vango.dev/docs/animate/errors/A001",
		},
		"A002": {
			Category: CategoryConfig,
			Message:  "Invalid animation duration",
			Detail:   "The animation duration must be zero or positive. Zero selects the default of 3000ms.",
			DocURL:   "https://vango.dev/docs/animate/errors/A002",
		},
		"A003": {
			Category: CategoryConfig,
			Message:  "Unknown completion strategy",
			Detail:   `The completion strategy decides how an animation ends. Valid values are "timer" and "signal".`,
			DocURL:   "https://vango.dev/docs/animate/errors/A003",
		},
		"A004": {
			Category: CategoryConfig,
			Message:  "Missing inner component",
			Detail:   "WithAnimation needs a component to wrap.",
			DocURL:   "https://vango.dev/docs/animate/errors/A004",
		},
		"A005": {
			Category: CategoryConfig,
			Message:  "Invalid prop type",
			Detail:   "A wrapper prop was supplied with a value of the wrong type.",
			DocURL:   "https://vango.dev/docs/animate/errors/A005",
		},
		"A010": {
			Category: CategoryConfig,
			Message:  "Config file not found",
			Detail:   "No animate.json was found.",
			DocURL:   "https://vango.dev/docs/animate/errors/A010",
		},
		"A011": {
			Category: CategoryConfig,
			Message:  "Invalid config file",
			Detail:   "animate.json could not be parsed.",
			DocURL:   "https://vango.dev/docs/animate/errors/A011",
		},
		"A012": {
			Category: CategoryConfig,
			Message:  "Invalid server address",
			DocURL:   "https://vango.dev/docs/animate/errors/A012",
		},

		// Runtime errors (A020-A039)

		"A020": {
			Category: CategoryRuntime,
			Message:  "Instance disposed",
			Detail:   "The animated component has been disposed. Transitions requested after disposal are ignored.",
			DocURL:   "https://vango.dev/docs/animate/errors/A020",
		},
		"A021": {
			Category: CategoryRuntime,
			Message:  "Render failed",
			DocURL:   "https://vango.dev/docs/animate/errors/A021",
		},
		"A022": {
			Category: CategoryRuntime,
			Message:  "Event loop closed",
			Detail:   "Work was submitted to a host loop after it shut down.",
			DocURL:   "https://vango.dev/docs/animate/errors/A022",
		},

		// Protocol errors (A040-A059)

		"A040": {
			Category: CategoryProtocol,
			Message:  "Malformed client message",
			DocURL:   "https://vango.dev/docs/animate/errors/A040",
		},
		"A041": {
			Category: CategoryProtocol,
			Message:  "Handler not found",
			Detail:   "No handler is registered for this element and event. The component may have re-rendered without it.",
			DocURL:   "https://vango.dev/docs/animate/errors/A041",
		},

		// CLI errors (A060-A079)

		"A060": {
			Category: CategoryCLI,
			Message:  "Command failed",
			DocURL:   "https://vango.dev/docs/animate/errors/A060",
		},
	}
)

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = template
}
