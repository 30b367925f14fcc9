package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tributary-dev/tributary/model"
)

// Failure classes surfaced by Run. Anything else is a validation or
// node-execution error built with fmt.Errorf.
var (
	ErrNoStartNodes    = errors.New("no start nodes found in the workflow")
	ErrNoNodesExecuted = errors.New("no components were executed")
	ErrIterationBudget = errors.New("workflow execution timeout - possible circular dependency")
)

// budgetFactor bounds scheduler iterations at budgetFactor x node count so an
// unproducible or cyclic graph terminates instead of spinning forever.
const budgetFactor = 10

// Scheduler runs one workflow graph: it validates edges up front, walks the
// graph dependency-first and resolves a single terminal response.
type Scheduler struct {
	exec *Executor
	log  *slog.Logger
}

func New(exec *Executor, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{exec: exec, log: log}
}

// Run executes the workflow and returns the terminal response. Execution
// order is dependency-respecting but otherwise unspecified: nodes whose
// predecessors have not finished are pushed back to the tail of the queue
// rather than blocking. Every requeue spends iteration budget, which is what
// guarantees termination on cyclic graphs.
func (s *Scheduler) Run(ctx context.Context, wf model.Workflow) (string, error) {
	adjacency := make(map[string][]string, len(wf.Nodes))
	inDegree := make(map[string]int, len(wf.Nodes))
	nodesByID := make(map[string]model.Node, len(wf.Nodes))
	for _, n := range wf.Nodes {
		adjacency[n.ID] = nil
		inDegree[n.ID] = 0
		nodesByID[n.ID] = n
	}

	// Reject dangling edges before any capability is invoked.
	for _, e := range wf.Edges {
		if _, ok := adjacency[e.Source]; !ok {
			return "", fmt.Errorf("edge %s references non-existent source node: %s", e.ID, e.Source)
		}
		if _, ok := adjacency[e.Target]; !ok {
			return "", fmt.Errorf("edge %s references non-existent target node: %s", e.ID, e.Target)
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		inDegree[e.Target]++
	}

	var queue []string
	for _, n := range wf.Nodes {
		if inDegree[n.ID] == 0 && n.Type != model.TerminalType {
			queue = append(queue, n.ID)
		}
	}
	if len(queue) == 0 {
		return "", ErrNoStartNodes
	}

	results := make(map[string]model.NodeResult, len(wf.Nodes))
	var executed []string
	budget := len(wf.Nodes) * budgetFactor
	iterations := 0

	for len(queue) > 0 && iterations < budget {
		id := queue[0]
		queue = queue[1:]
		node, ok := nodesByID[id]
		if !ok {
			continue
		}

		// Terminal nodes are sinks: the first producer that already has a
		// result supplies the final answer, even if other branches are still
		// pending. A terminal visited before any producer finished is simply
		// dropped; a completing producer re-enqueues it.
		if node.Type == model.TerminalType {
			for _, e := range wf.Edges {
				if e.Target != id {
					continue
				}
				if r, done := results[e.Source]; done {
					return r.Response, nil
				}
			}
			continue
		}

		ready := true
		for _, e := range wf.Edges {
			if e.Target == id {
				if _, done := results[e.Source]; !done {
					ready = false
					break
				}
			}
		}
		if !ready {
			queue = append(queue, id)
			iterations++
			continue
		}

		bundle := BuildInput(node, wf.Edges, results, wf.Nodes)
		s.log.Debug("executing node", "node", id, "type", node.Type)
		res := s.exec.Execute(ctx, node, bundle)
		if res.Err != "" {
			return "", fmt.Errorf("error executing node %s (%s): %s", id, node.Type, res.Err)
		}
		results[id] = res
		executed = append(executed, id)

		for _, succ := range adjacency[id] {
			if _, done := results[succ]; done {
				continue
			}
			if !contains(queue, succ) {
				queue = append(queue, succ)
			}
		}
		iterations++
	}

	if iterations >= budget {
		return "", ErrIterationBudget
	}

	// Queue drained without a terminal firing: the last recorded response is
	// the best-effort answer.
	if len(executed) > 0 {
		return results[executed[len(executed)-1]].Response, nil
	}
	return "", ErrNoNodesExecuted
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
