package workspace

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/pixi-devenv/internal/errors"
	"github.com/PolarWolf314/pixi-devenv/internal/project"
)

// nodeInfo tracks a node while sorting.
type nodeInfo struct {
	predecessors int
	successors   []project.Name
}

// topologicalOrder returns the nodes of graph so that every node appears
// after all of its upstream nodes. graph maps a node to its upstream nodes
// and names lists the nodes in insertion order.
//
// Nodes are emitted in layers: every node whose upstream nodes are done
// becomes ready in the order it was unlocked, which keeps the result stable
// for a given graph.
func topologicalOrder(names []project.Name, graph map[project.Name][]project.Name) ([]project.Name, error) {
	infos := make(map[project.Name]*nodeInfo)
	var known []project.Name
	info := func(name project.Name) *nodeInfo {
		if i, ok := infos[name]; ok {
			return i
		}
		i := &nodeInfo{}
		infos[name] = i
		known = append(known, name)
		return i
	}

	for _, name := range names {
		node := info(name)
		for _, upstream := range graph[name] {
			node.predecessors++
			up := info(upstream)
			up.successors = append(up.successors, name)
		}
	}

	var ready []project.Name
	for _, name := range known {
		if infos[name].predecessors == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]project.Name, 0, len(known))
	for len(ready) > 0 {
		group := ready
		ready = nil
		order = append(order, group...)
		for _, done := range group {
			for _, successor := range infos[done].successors {
				infos[successor].predecessors--
				if infos[successor].predecessors == 0 {
					ready = append(ready, successor)
				}
			}
		}
	}

	if len(order) != len(known) {
		cycle := findCycle(known, graph)
		return nil, fmt.Errorf("%w: %s", kerrors.ErrCycle, formatCycle(cycle))
	}
	return order, nil
}

// findCycle returns the first cycle found in graph, with the first node
// repeated at the end.
func findCycle(names []project.Name, graph map[project.Name][]project.Name) []project.Name {
	const (
		unvisited = iota
		inProgress
		finished
	)
	state := make(map[project.Name]int, len(names))
	var stack []project.Name
	var cycle []project.Name

	var visit func(project.Name) bool
	visit = func(name project.Name) bool {
		state[name] = inProgress
		stack = append(stack, name)
		for _, upstream := range graph[name] {
			switch state[upstream] {
			case inProgress:
				for i, n := range stack {
					if n == upstream {
						cycle = append(append(cycle, stack[i:]...), upstream)
						return true
					}
				}
			case unvisited:
				if visit(upstream) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = finished
		return false
	}

	for _, name := range names {
		if state[name] == unvisited && visit(name) {
			return cycle
		}
	}
	return nil
}

func formatCycle(cycle []project.Name) string {
	parts := make([]string, len(cycle))
	for i, name := range cycle {
		parts[i] = string(name)
	}
	return strings.Join(parts, " -> ")
}
