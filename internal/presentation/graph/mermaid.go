package graph

import (
	"fmt"
	"strings"

	"github.com/hashpad/turing/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	// VisitedStates are state IDs seen during the run, e.g. from a trace.
	VisitedStates []int
	// CurrentState is the state ID the machine is in.
	CurrentState int
	// Verdict selects the style of the current state.
	Verdict string
}

// OverlayFromTrace builds an overlay from recorded snapshots.
// It returns nil for an empty trace.
func OverlayFromTrace(trace []domain.Snapshot) *GraphOverlay {
	if len(trace) == 0 {
		return nil
	}
	o := &GraphOverlay{}
	for _, snap := range trace {
		o.VisitedStates = append(o.VisitedStates, snap.StateID)
	}
	last := trace[len(trace)-1]
	o.CurrentState = last.StateID
	o.Verdict = last.Verdict()
	return o
}

// OverlayByName builds an overlay for g from a trace recorded by another machine
// built from the same definition. State IDs differ between builds, so states are
// matched by name; names missing from g are dropped.
func OverlayByName(g domain.Graph, trace []domain.Snapshot) *GraphOverlay {
	ids := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.Name] = n.ID
	}

	rebased := make([]domain.Snapshot, 0, len(trace))
	for _, snap := range trace {
		id, ok := ids[snap.State]
		if !ok {
			continue
		}
		snap.StateID = id
		rebased = append(rebased, snap)
	}
	return OverlayFromTrace(rebased)
}

// OverlayFromSnapshot highlights only the current state.
func OverlayFromSnapshot(snap domain.Snapshot) *GraphOverlay {
	return &GraphOverlay{CurrentState: snap.StateID, Verdict: snap.Verdict()}
}

// GenerateMermaid produces a Mermaid flowchart of the machine program.
// It applies semantic styling:
// - Start: ((Circle))
// - Accepting: (((Double circle)))
// - Default: [Rectangle]
// Rules sharing a source and a destination become one edge with one label line per rule.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range g.Nodes {
		opener, closer := "[", "]"
		switch {
		case node.Accept:
			opener, closer = "(((", ")))"
		case node.Start:
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(node.ID), opener, escapeLabel(node.Name), closer))
	}

	for _, node := range g.Nodes {
		if node.Start {
			sb.WriteString(fmt.Sprintf("    start_%d(( )) --> %s\n", node.ID, nodeID(node.ID)))
		}
	}

	for _, e := range g.Edges {
		lines := make([]string, len(e.Lines))
		for i, l := range e.Lines {
			lines[i] = escapeLabel(l)
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(e.From), strings.Join(lines, "<br/>"), nodeID(e.To)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef accepted fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef rejected fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		known := make(map[int]bool, len(g.Nodes))
		for _, n := range g.Nodes {
			known[n.ID] = true
		}

		visited := make(map[int]bool)
		for _, id := range overlay.VisitedStates {
			if known[id] && !visited[id] && id != overlay.CurrentState {
				visited[id] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
			}
		}

		if known[overlay.CurrentState] {
			class := "current"
			switch overlay.Verdict {
			case domain.VerdictAccepted:
				class = "accepted"
			case domain.VerdictRejected:
				class = "rejected"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", nodeID(overlay.CurrentState), class))
		}
	}

	return sb.String()
}

// nodeID keys nodes by state ID since names need not be unique or Mermaid-safe.
func nodeID(id int) string {
	return fmt.Sprintf("s%d", id)
}

// escapeLabel uses Mermaid entity codes for characters that break quoted labels.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "#", "#35;")
	s = strings.ReplaceAll(s, "\"", "#quot;")
	return s
}
