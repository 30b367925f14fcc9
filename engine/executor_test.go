package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributary-dev/tributary/capability"
	"github.com/tributary-dev/tributary/model"
)

func TestExecuteResolvesModelSelector(t *testing.T) {
	var gotModel, gotInstructions string
	capability.Register("exec-model", capability.EnrichNone, func(cfg capability.Config) (capability.Capability, error) {
		gotModel = cfg.Model
		gotInstructions = cfg.Instructions
		return capability.Func(func(ctx context.Context, q string) (string, error) { return q, nil }), nil
	})

	ex := NewExecutor(nil)
	n := node("a", "exec-model",
		model.Field{Name: "llm-selector", Value: "groq"},
		model.Field{Name: "instructions", Value: "be brief"},
	)
	res := ex.Execute(context.Background(), n, model.InputBundle{Query: "q"})
	require.Empty(t, res.Err)
	assert.Equal(t, "groq", gotModel)
	assert.Equal(t, "be brief", gotInstructions)

	res = ex.Execute(context.Background(), node("b", "exec-model"), model.InputBundle{})
	require.Empty(t, res.Err)
	assert.Equal(t, DefaultModel, gotModel)
	assert.Equal(t, defaultInstructions, gotInstructions)
}

func TestExecuteFactoryErrorBecomesNodeError(t *testing.T) {
	capability.Register("exec-badkey", capability.EnrichNone, func(capability.Config) (capability.Capability, error) {
		return nil, errors.New("api key not configured")
	})

	res := NewExecutor(nil).Execute(context.Background(), node("a", "exec-badkey"), model.InputBundle{})
	assert.Contains(t, res.Err, "Error executing exec-badkey")
	assert.Contains(t, res.Err, "api key not configured")
}

func TestExecuteUnknownTypePlaceholder(t *testing.T) {
	res := NewExecutor(nil).Execute(context.Background(), node("a", "Nope-Tool"), model.InputBundle{})
	assert.Empty(t, res.Err)
	assert.Equal(t, "Component type 'Nope-Tool' not supported yet", res.Response)
}

func TestExecuteSectionEnrichment(t *testing.T) {
	var gotQuery string
	capability.Register("exec-sections", capability.EnrichSections, func(capability.Config) (capability.Capability, error) {
		return capability.Func(func(ctx context.Context, q string) (string, error) {
			gotQuery = q
			return "ok", nil
		}), nil
	})

	bundle := model.InputBundle{
		Query:          "summarize",
		ToolContexts:   []model.ContextEntry{{Source: "Wikipedia", Content: "tool data"}},
		GeneralContext: []model.ContextEntry{{Source: "Calculator", Content: "42"}},
	}
	res := NewExecutor(nil).Execute(context.Background(), node("a", "exec-sections"), bundle)
	require.Empty(t, res.Err)
	assert.Contains(t, gotQuery, "=== AVAILABLE TOOLS & DATA ===")
	assert.Contains(t, gotQuery, "Wikipedia Results:")
	assert.Contains(t, gotQuery, "=== END TOOLS DATA ===")
	assert.Contains(t, gotQuery, "=== ADDITIONAL CONTEXT ===")
	assert.Contains(t, gotQuery, "Calculator Output:")
	assert.Contains(t, gotQuery, "User Request: summarize")
}

func TestSectionPromptWithoutContextIsQuery(t *testing.T) {
	assert.Equal(t, "hello", SectionPrompt(model.InputBundle{Query: "hello"}))
}

func TestSectionPromptWithoutQuery(t *testing.T) {
	p := SectionPrompt(model.InputBundle{
		ToolContexts: []model.ContextEntry{{Source: "Wikipedia", Content: "data"}},
	})
	assert.Contains(t, p, "Please analyze and summarize the above information in a helpful way.")
	assert.NotContains(t, p, "User Request:")
}

func TestInlinePrompt(t *testing.T) {
	assert.Equal(t, "https://x.test", InlinePrompt(model.InputBundle{Query: "https://x.test"}))

	p := InlinePrompt(model.InputBundle{
		Query:          "https://x.test",
		ToolContexts:   []model.ContextEntry{{Source: "Wikipedia", Content: "a"}},
		GeneralContext: []model.ContextEntry{{Source: "Text-Agent", Content: "b"}},
	})
	assert.Equal(t, "Context: Reference from Wikipedia: a | Context from Text-Agent: b\n\nQuery: https://x.test", p)
}
