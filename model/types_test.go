package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHandle(t *testing.T) {
	cases := []struct {
		handle string
		want   EdgeRole
	}{
		{"query", RolePrimary},
		{"Query-Input", RolePrimary},
		{"text_in", RolePrimary},
		{"input-0", RolePrimary},
		{"tools", RoleTool},
		{"Tools-Context", RoleTool},
		{"out", RoleGeneric},
		{"", RoleGeneric},
		{"context", RoleGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyHandle(tc.handle), "handle %q", tc.handle)
	}
}

func TestNodeQueryValue(t *testing.T) {
	n := Node{Data: NodeData{Inputs: []Field{
		{Name: "instructions", Value: "be nice"},
		{Name: "Query", Value: "hello"},
		{Name: "text", Value: "later"},
	}}}
	assert.Equal(t, "hello", n.QueryValue())

	empty := Node{Data: NodeData{Inputs: []Field{{Name: "query"}}}}
	assert.Equal(t, "", empty.QueryValue())
}

func TestNodeModelSelector(t *testing.T) {
	n := Node{Data: NodeData{Inputs: []Field{{Name: "LLM Model", Value: "groq"}}}}
	assert.Equal(t, "groq", n.ModelSelector("gemini"))

	assert.Equal(t, "gemini", Node{}.ModelSelector("gemini"))
}

func TestNodeInstructions(t *testing.T) {
	n := Node{Data: NodeData{Inputs: []Field{{Name: "Instructions", Value: "translate"}}}}
	assert.Equal(t, "translate", n.Instructions("default"))
	assert.Equal(t, "default", Node{}.Instructions("default"))
}
