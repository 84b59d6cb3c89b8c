package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// LinkGraph holds the dependency edges among a set of required libraries.
// Edges point from a dependent library to the library it depends on.
type LinkGraph struct {
	nodes []string
	edges map[string][]string
	order []string
}

// NewLinkGraph builds the graph for required from the catalog's depends-on
// lists, then applies pairs. A pair adds its edge and removes the opposite
// edge if the table declared one, so curated pairs win over the table.
// Edges to libraries outside required are ignored.
func NewLinkGraph(required []string, catalog *Catalog, pairs []OrderingPair) *LinkGraph {
	nodes := slices.Clone(required)
	slices.Sort(nodes)
	nodes = slices.Compact(nodes)

	in := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		in[n] = true
	}

	edges := make(map[string]map[string]bool, len(nodes))
	add := func(from, to string) {
		if from == to || !in[from] || !in[to] {
			return
		}
		if edges[from] == nil {
			edges[from] = make(map[string]bool)
		}
		edges[from][to] = true
	}

	for _, n := range nodes {
		lib, ok := catalog.Lookup(n)
		if !ok {
			continue
		}
		for _, dep := range lib.dependsOn {
			add(n, dep)
		}
	}

	for _, p := range pairs {
		if edges[p.Dependency] != nil {
			delete(edges[p.Dependency], p.Dependent)
		}
		add(p.Dependent, p.Dependency)
	}

	g := &LinkGraph{nodes: nodes, edges: make(map[string][]string, len(edges))}
	for from, tos := range edges {
		for to := range tos {
			g.edges[from] = append(g.edges[from], to)
		}
		slices.Sort(g.edges[from])
	}
	return g
}

// related returns the nodes that have at least one edge.
func (g *LinkGraph) related() map[string]bool {
	rel := make(map[string]bool)
	for from, tos := range g.edges {
		if len(tos) == 0 {
			continue
		}
		rel[from] = true
		for _, to := range tos {
			rel[to] = true
		}
	}
	return rel
}

// Sort orders the graph so that every library comes after the libraries it
// depends on. Libraries without any relationship come last, in ascending
// name order. A cycle is reported as ErrCycleDetected and yields no order.
func (g *LinkGraph) Sort() error {
	rel := g.related()
	g.order = make([]string, 0, len(g.nodes))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.edges[u] {
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.order = append(g.order, u)
		return nil
	}

	// Nodes are already sorted, so the result is stable across runs.
	for _, name := range g.nodes {
		if rel[name] && visited[name] == 0 {
			if err := visit(name); err != nil {
				g.order = nil
				return err
			}
		}
	}

	for _, name := range g.nodes {
		if !rel[name] {
			g.order = append(g.order, name)
		}
	}
	return nil
}

// Walk yields library names in link order. It assumes Sort returned nil.
func (g *LinkGraph) Walk() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range g.order {
			if !yield(name) {
				return
			}
		}
	}
}

// LinkOrder returns required in link order: dependencies first, unrelated
// libraries last in ascending order.
func LinkOrder(required []string, catalog *Catalog, pairs []OrderingPair) ([]string, error) {
	g := NewLinkGraph(required, catalog, pairs)
	if err := g.Sort(); err != nil {
		return nil, err
	}
	return slices.Collect(g.Walk()), nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	startIdx := slices.Index(path, dep)
	cycle := append(slices.Clone(path[startIdx:]), dep)
	cyclePath := strings.Join(cycle, " -> ")
	return zerr.With(zerr.Wrap(ErrCycleDetected, "libraries depend on each other: "+cyclePath), "cycle", cyclePath)
}
