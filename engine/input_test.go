package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tributary-dev/tributary/model"
)

func TestBuildInputUpstreamOverridesLiteral(t *testing.T) {
	target := node("b", "Text-Agent", model.Field{Name: "query", Value: "A"})
	nodes := []model.Node{node("a", "Wikipedia"), target}
	edges := []model.Edge{edge("a", "b", "out", "query")}
	results := map[string]model.NodeResult{"a": {Response: "B"}}

	bundle := BuildInput(target, edges, results, nodes)
	assert.Equal(t, "B", bundle.Query)
	assert.Len(t, bundle.QueryInputs, 1)
	assert.Equal(t, "Wikipedia", bundle.QueryInputs[0].Source)
}

func TestBuildInputToolEdgeKeepsLiteralQuery(t *testing.T) {
	target := node("b", "Text-Agent", model.Field{Name: "query", Value: "A"})
	nodes := []model.Node{node("a", "HackerNews-Search"), target}
	edges := []model.Edge{edge("a", "b", "out", "tools")}
	results := map[string]model.NodeResult{"a": {Response: "C"}}

	bundle := BuildInput(target, edges, results, nodes)
	assert.Equal(t, "A", bundle.Query)
	assert.Empty(t, bundle.QueryInputs)
	assert.Len(t, bundle.ToolContexts, 1)
	assert.Equal(t, "C", bundle.ToolContexts[0].Content)
}

func TestBuildInputGenericBucket(t *testing.T) {
	target := node("b", "Text-Agent")
	nodes := []model.Node{node("a", "Calculator"), target}
	edges := []model.Edge{edge("a", "b", "out", "context")}
	results := map[string]model.NodeResult{"a": {Response: "42"}}

	bundle := BuildInput(target, edges, results, nodes)
	assert.Empty(t, bundle.Query)
	assert.Len(t, bundle.GeneralContext, 1)
	assert.Equal(t, "Calculator", bundle.GeneralContext[0].Source)
}

func TestBuildInputIgnoresUnfinishedSources(t *testing.T) {
	target := node("b", "Text-Agent", model.Field{Name: "query", Value: "A"})
	nodes := []model.Node{node("a", "Wikipedia"), target}
	edges := []model.Edge{edge("a", "b", "out", "query")}

	bundle := BuildInput(target, edges, map[string]model.NodeResult{}, nodes)
	assert.Equal(t, "A", bundle.Query)
	assert.Empty(t, bundle.QueryInputs)
}

func TestBuildInputFirstQueryEdgeWins(t *testing.T) {
	target := node("c", "Text-Agent")
	nodes := []model.Node{node("a", "Wikipedia"), node("b", "ArXiv-Search"), target}
	edges := []model.Edge{
		edge("a", "c", "out", "query"),
		edge("b", "c", "out", "query-2"),
	}
	results := map[string]model.NodeResult{
		"a": {Response: "first"},
		"b": {Response: "second"},
	}

	bundle := BuildInput(target, edges, results, nodes)
	assert.Equal(t, "first", bundle.Query)
	assert.Len(t, bundle.QueryInputs, 2)
}

func TestBuildInputUnknownSourceLabel(t *testing.T) {
	target := node("b", "Text-Agent")
	edges := []model.Edge{edge("a", "b", "out", "tools")}
	results := map[string]model.NodeResult{"a": {Response: "x"}}

	// Source node absent from the node list still contributes, with the
	// fallback label.
	bundle := BuildInput(target, edges, results, []model.Node{target})
	assert.Len(t, bundle.ToolContexts, 1)
	assert.Equal(t, "Previous Component", bundle.ToolContexts[0].Source)
}
