package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hashpad/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// TapeRenderer is an observer that prints one line per snapshot:
// the step, the state, the tape with the head cell highlighted and, once halted, the verdict.
type TapeRenderer struct {
	mu      sync.Mutex
	w       io.Writer
	profile termenv.Profile
}

// NewTapeRenderer creates a renderer. Use termenv.Ascii for uncolored output.
func NewTapeRenderer(w io.Writer, profile termenv.Profile) *TapeRenderer {
	return &TapeRenderer{w: w, profile: profile}
}

// Render implements domain.Observer.
func (r *TapeRenderer) Render(snap domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, FormatSnapshot(snap, r.profile))
}

// FormatSnapshot renders a snapshot on a single line.
func FormatSnapshot(snap domain.Snapshot, p termenv.Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%5d  %-8s ", snap.Steps, snap.State)
	sb.WriteString(FormatTape(snap, p))

	if !snap.Running {
		sb.WriteString("  ")
		sb.WriteString(FormatVerdict(snap.Verdict(), p))
	}
	return sb.String()
}

// FormatTape renders the tape cells; the head cell is bracketed and, with color, highlighted.
func FormatTape(snap domain.Snapshot, p termenv.Profile) string {
	var sb strings.Builder
	for i, cell := range snap.Tape {
		if i == snap.Head {
			head := p.String("[" + cell + "]")
			if p != termenv.Ascii {
				head = head.Foreground(p.Color("#000000")).Background(p.Color("#ffeb3b")).Bold()
			}
			sb.WriteString(head.String())
			continue
		}
		s := p.String(" " + cell + " ")
		if cell == domain.BlankValue && p != termenv.Ascii {
			s = s.Faint()
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// FormatVerdict renders a verdict: "Accepted" in green, "Rejected" in red, or "Running".
func FormatVerdict(verdict string, p termenv.Profile) string {
	switch verdict {
	case domain.VerdictAccepted:
		return p.String("Accepted").Foreground(p.Color("#22c55e")).Bold().String()
	case domain.VerdictRejected:
		return p.String("Rejected").Foreground(p.Color("#ef4444")).Bold().String()
	default:
		return p.String("Running").Foreground(p.Color("#fbbf24")).String()
	}
}
