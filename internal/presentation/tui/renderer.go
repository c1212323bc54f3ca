package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hashpad/turing/internal/runtime"
	"github.com/hashpad/turing/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// Plain output skips glamour entirely so pipes get the raw markdown.
func NewRenderer(plain bool) func(string) (string, error) {
	if plain {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// DescribeMachine renders a markdown summary of a machine: alphabets, states and rules.
func DescribeMachine(name, description string, m *runtime.Machine) string {
	var sb strings.Builder

	if name == "" {
		name = "Machine"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if description != "" {
		fmt.Fprintf(&sb, "%s\n\n", description)
	}

	var input []string
	for _, s := range m.InputAlphabet() {
		input = append(input, code(s.Value()))
	}
	var states []string
	for _, s := range m.States() {
		states = append(states, code(s.Name()))
	}
	var accept []string
	for _, s := range m.AcceptStates() {
		accept = append(accept, code(s.Name()))
	}
	if len(accept) == 0 {
		accept = []string{"_none_"}
	}

	fmt.Fprintf(&sb, "- **Input alphabet:** %s\n", strings.Join(input, " "))
	fmt.Fprintf(&sb, "- **Blank:** %s\n", code(domain.BlankValue))
	fmt.Fprintf(&sb, "- **States:** %s\n", strings.Join(states, " "))
	fmt.Fprintf(&sb, "- **Start:** %s\n", code(m.StartState().Name()))
	fmt.Fprintf(&sb, "- **Accept:** %s\n", strings.Join(accept, " "))
	fmt.Fprintf(&sb, "- **Tape:** %s\n\n", code(m.Head().Tape().String()))

	entries := m.Transitions().Entries()
	fmt.Fprintf(&sb, "## Transitions (%d)\n\n", len(entries))
	if len(entries) == 0 {
		sb.WriteString("_No rules: the machine halts on its first step._\n")
		return sb.String()
	}

	sb.WriteString("| State | Read | Write | Move | Next |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, t := range entries {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			t.State.Name(),
			code(t.Read.Value()),
			code(t.Next.Symbol.Value()),
			t.Next.Direction,
			t.Next.State.Name(),
		)
	}
	return sb.String()
}

func code(s string) string {
	return "`" + s + "`"
}
