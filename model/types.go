package model

import "strings"

// TerminalType marks sink nodes whose only role is surfacing the final
// response of their producer.
const TerminalType = "End"

// Field is one named input of a node, optionally carrying a literal value.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// NodeData is the payload attached to a node by the workflow editor.
type NodeData struct {
	Inputs []Field `json:"inputs,omitempty"`
}

// Node is one unit of work in a user-authored workflow graph.
type Node struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	Data NodeData `json:"data"`
}

// Edge wires a producing node's output handle to a consuming node's input handle.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
}

// Workflow is the request body of one graph execution.
type Workflow struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeResult is the recorded outcome of one node. Err is non-empty when the
// node's capability failed; a recorded error aborts the surrounding run.
type NodeResult struct {
	Response string `json:"response,omitempty"`
	Err      string `json:"error,omitempty"`
}

// ContextEntry is one piece of upstream output labeled with the type of the
// node that produced it.
type ContextEntry struct {
	Source  string
	Content string
}

// InputBundle is the aggregated input of one node, built fresh at execution
// time from upstream results and the node's own literal fields.
type InputBundle struct {
	Query          string
	QueryInputs    []ContextEntry
	ToolContexts   []ContextEntry
	GeneralContext []ContextEntry
}

// EdgeRole is the semantic intent of an inbound edge, derived from its
// target handle name.
type EdgeRole int

const (
	// RoleGeneric is the fallback for unrecognized handles.
	RoleGeneric EdgeRole = iota
	// RolePrimary feeds the node's main query.
	RolePrimary
	// RoleTool feeds reference/context data.
	RoleTool
)

// ClassifyHandle maps a target handle name to its edge role. Handles
// mentioning query/input/text are primary feeds, handles mentioning tools are
// reference feeds, everything else is generic context. This is the single
// place the handle-name convention lives.
func ClassifyHandle(handle string) EdgeRole {
	h := strings.ToLower(handle)
	switch {
	case strings.Contains(h, "query"), strings.Contains(h, "input"), strings.Contains(h, "text"):
		return RolePrimary
	case strings.Contains(h, "tools"):
		return RoleTool
	default:
		return RoleGeneric
	}
}

// QueryValue returns the node's own literal query: the first field named
// query, text or input (case-insensitive) that carries a value.
func (n Node) QueryValue() string {
	for _, f := range n.Data.Inputs {
		if f.Value == "" {
			continue
		}
		switch strings.ToLower(f.Name) {
		case "query", "text", "input":
			return f.Value
		}
	}
	return ""
}

// ModelSelector returns the value of the first field whose name mentions
// "llm", or def when the node does not pick a model.
func (n Node) ModelSelector(def string) string {
	for _, f := range n.Data.Inputs {
		if f.Value != "" && strings.Contains(strings.ToLower(f.Name), "llm") {
			return f.Value
		}
	}
	return def
}

// Instructions returns the value of the first field whose name mentions
// "instructions", or def when absent.
func (n Node) Instructions(def string) string {
	for _, f := range n.Data.Inputs {
		if f.Value != "" && strings.Contains(strings.ToLower(f.Name), "instructions") {
			return f.Value
		}
	}
	return def
}
