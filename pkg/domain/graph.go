package domain

import (
	"fmt"
	"strings"
)

// GraphNode is a state in the graph projection.
type GraphNode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Start  bool   `json:"start,omitempty"`
	Accept bool   `json:"accept,omitempty"`
}

// GraphEdge merges every rule sharing the same (source, destination) pair.
type GraphEdge struct {
	ID    string   `json:"id"`
	From  int      `json:"from"`
	To    int      `json:"to"`
	Lines []string `json:"lines"`
}

// Label returns the multi-line edge label.
func (e GraphEdge) Label() string {
	return strings.Join(e.Lines, "\n")
}

// Graph is a read-only projection of the states and the transition table.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ProjectGraph builds the graph view of a machine program.
// Nodes follow the order of states; edges follow the rules in insertion order,
// grouped by destination. Rules leaving states outside of states are ignored.
func ProjectGraph(states []*State, start *State, accept []*State, table *TransitionTable) Graph {
	g := Graph{
		Nodes: make([]GraphNode, 0, len(states)),
	}

	for _, s := range states {
		g.Nodes = append(g.Nodes, GraphNode{
			ID:     s.ID(),
			Name:   s.Name(),
			Start:  s == start,
			Accept: ContainsState(accept, s),
		})
	}

	for _, s := range states {
		index := make(map[*State]int)
		for _, t := range table.Outgoing(s) {
			if i, ok := index[t.Next.State]; ok {
				g.Edges[i].Lines = append(g.Edges[i].Lines, t.Label())
				continue
			}
			index[t.Next.State] = len(g.Edges)
			g.Edges = append(g.Edges, GraphEdge{
				ID:    fmt.Sprintf("%d-%d", s.ID(), t.Next.State.ID()),
				From:  s.ID(),
				To:    t.Next.State.ID(),
				Lines: []string{t.Label()},
			})
		}
	}

	return g
}
