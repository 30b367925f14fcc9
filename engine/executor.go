package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/tributary-dev/tributary/capability"
	"github.com/tributary-dev/tributary/model"
)

// DefaultModel is used when a node carries no llm selector field.
const DefaultModel = "gemini"

const defaultInstructions = "You are a helpful AI assistant."

// Executor dispatches one node to its registered capability. Unknown node
// types produce a placeholder response instead of failing the run; capability
// failures become a per-node error result that the scheduler turns into a
// run-level abort.
type Executor struct {
	// Settings is passed through to every capability constructor (API keys,
	// endpoints).
	Settings map[string]string
}

func NewExecutor(settings map[string]string) *Executor {
	return &Executor{Settings: settings}
}

// Execute resolves the node's capability, enriches the query with upstream
// context per the capability's enrichment mode and invokes it.
func (e *Executor) Execute(ctx context.Context, node model.Node, bundle model.InputBundle) model.NodeResult {
	entry, ok := capability.Lookup(node.Type)
	if !ok {
		return model.NodeResult{Response: fmt.Sprintf("Component type '%s' not supported yet", node.Type)}
	}

	cfg := capability.Config{
		Model:        node.ModelSelector(DefaultModel),
		Instructions: node.Instructions(defaultInstructions),
		Settings:     e.Settings,
	}
	provider, err := entry.Factory(cfg)
	if err != nil {
		return model.NodeResult{Err: fmt.Sprintf("Error executing %s: %v", node.Type, err)}
	}

	query := bundle.Query
	switch entry.Enrich {
	case capability.EnrichSections:
		query = SectionPrompt(bundle)
	case capability.EnrichInline:
		query = InlinePrompt(bundle)
	}

	response, err := provider.Run(ctx, query)
	if err != nil {
		return model.NodeResult{Err: fmt.Sprintf("Error executing %s: %v", node.Type, err)}
	}
	return model.NodeResult{Response: response}
}

// SectionPrompt folds tool and generic context into delimited sections with
// the original query appended as a final User Request instruction. The
// enrichment is deterministic string concatenation.
func SectionPrompt(b model.InputBundle) string {
	if len(b.ToolContexts) == 0 && len(b.GeneralContext) == 0 {
		return b.Query
	}

	var parts []string
	if len(b.ToolContexts) > 0 {
		parts = append(parts, "=== AVAILABLE TOOLS & DATA ===")
		for _, tc := range b.ToolContexts {
			parts = append(parts, "\n"+tc.Source+" Results:", tc.Content)
		}
		parts = append(parts, "\n=== END TOOLS DATA ===\n")
	}
	if len(b.GeneralContext) > 0 {
		parts = append(parts, "=== ADDITIONAL CONTEXT ===")
		for _, gc := range b.GeneralContext {
			parts = append(parts, "\n"+gc.Source+" Output:", gc.Content)
		}
		parts = append(parts, "\n=== END CONTEXT ===\n")
	}

	contextText := strings.Join(parts, "\n")
	if b.Query != "" {
		return contextText + "\nUser Request: " + b.Query +
			"\n\nPlease use the above information to provide a comprehensive response to the user's request."
	}
	return contextText + "\nPlease analyze and summarize the above information in a helpful way."
}

// InlinePrompt is the compact enrichment used by fetch-style capabilities: a
// single Context: line ahead of the query.
func InlinePrompt(b model.InputBundle) string {
	if len(b.ToolContexts) == 0 && len(b.GeneralContext) == 0 {
		return b.Query
	}

	var parts []string
	for _, tc := range b.ToolContexts {
		parts = append(parts, fmt.Sprintf("Reference from %s: %s", tc.Source, tc.Content))
	}
	for _, gc := range b.GeneralContext {
		parts = append(parts, fmt.Sprintf("Context from %s: %s", gc.Source, gc.Content))
	}
	return fmt.Sprintf("Context: %s\n\nQuery: %s", strings.Join(parts, " | "), b.Query)
}
