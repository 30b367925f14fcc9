package capability

import "context"

// Capability is an opaque provider reached through a uniform run contract:
// one query string in, one text response out.
type Capability interface {
	Run(ctx context.Context, query string) (string, error)
}

// Config carries node-resolved parameters into a capability constructor.
type Config struct {
	// Model is the model selector passed through to LLM-backed providers.
	Model string
	// Instructions is the system prompt for text-generation providers.
	Instructions string
	// Settings holds deployment-level values (API keys, endpoints) shared
	// by all capabilities of one process.
	Settings map[string]string
}

// Setting returns a settings value or "" when unset.
func (c Config) Setting(key string) string {
	if c.Settings == nil {
		return ""
	}
	return c.Settings[key]
}

// EnrichMode tells the node executor how to fold tool and generic context
// into the query before invoking the capability.
type EnrichMode int

const (
	// EnrichNone passes the query through untouched.
	EnrichNone EnrichMode = iota
	// EnrichSections wraps context in delimited AVAILABLE TOOLS / ADDITIONAL
	// CONTEXT sections with the query as a final User Request instruction.
	EnrichSections
	// EnrichInline prefixes the query with a one-line Context: header.
	EnrichInline
)

// Factory builds a capability from node-resolved config.
type Factory func(cfg Config) (Capability, error)

// Func adapts a plain function to the Capability interface.
type Func func(ctx context.Context, query string) (string, error)

func (f Func) Run(ctx context.Context, query string) (string, error) { return f(ctx, query) }
