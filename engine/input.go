package engine

import "github.com/tributary-dev/tributary/model"

// BuildInput aggregates a node's input from its own literal fields and the
// already-computed results of its upstream edges. Pure function of its
// arguments: missing data degrades to empty strings, never an error.
//
// When several edges feed a primary handle, the first one in edge order wins
// and the rest are dropped. Merging multiple query feeds is a known
// limitation of the upstream graph format, deliberately not invented here.
func BuildInput(node model.Node, edges []model.Edge, results map[string]model.NodeResult, nodes []model.Node) model.InputBundle {
	bundle := model.InputBundle{Query: node.QueryValue()}

	for _, e := range edges {
		if e.Target != node.ID {
			continue
		}
		r, ok := results[e.Source]
		if !ok {
			continue
		}
		entry := model.ContextEntry{Source: sourceLabel(e.Source, nodes), Content: r.Response}
		switch model.ClassifyHandle(e.TargetHandle) {
		case model.RolePrimary:
			bundle.QueryInputs = append(bundle.QueryInputs, entry)
		case model.RoleTool:
			bundle.ToolContexts = append(bundle.ToolContexts, entry)
		default:
			bundle.GeneralContext = append(bundle.GeneralContext, entry)
		}
	}

	// Upstream wiring takes precedence over static node configuration.
	if len(bundle.QueryInputs) > 0 {
		bundle.Query = bundle.QueryInputs[0].Content
	}
	return bundle
}

func sourceLabel(id string, nodes []model.Node) string {
	for _, n := range nodes {
		if n.ID == id {
			return n.Type
		}
	}
	return "Previous Component"
}
