package main

import (
	"encoding/json"
	"fmt"

	"github.com/hashpad/turing/internal/cli"
	"github.com/hashpad/turing/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [definition]",
	Short: "Export the state graph visualization",
	Long: `Outputs a Mermaid diagram (graph LR) of the machine's states and transitions.
With --trace, the states visited by a recorded run are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, preset, tape := definitionArgs(cmd, args)
		format, _ := cmd.Flags().GetString("format")
		runID, _ := cmd.Flags().GetString("run")

		def, err := cli.LoadDefinition(path, preset)
		if err != nil {
			return err
		}
		if tape != nil {
			def.Tape = *tape
		}
		m, err := def.Build(nil)
		if err != nil {
			return err
		}
		g := m.Graph()

		switch format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(g)
		case "mermaid":
		default:
			return fmt.Errorf("unknown format %q", format)
		}

		var overlay *graph.GraphOverlay
		if runID != "" {
			p, err := traceStore()
			if err != nil {
				return err
			}
			defer p.Close()
			trace, err := p.Store.Load(cmd.Context(), runID)
			if err != nil {
				return err
			}
			overlay = graph.OverlayByName(g, trace)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	definitionFlags(graphCmd)
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or json")
	graphCmd.Flags().String("run", "", "Highlight the states visited by this recorded run")
}
