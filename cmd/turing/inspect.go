package main

import (
	"fmt"

	"github.com/hashpad/turing/internal/cli"
	"github.com/hashpad/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [definition]",
	Short: "Describe a machine: alphabets, states and transition table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, preset, tape := definitionArgs(cmd, args)
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

		out := cmd.OutOrStdout()
		plain := cfg.Color == "never" || (cfg.Color != "always" && !cli.IsTerminal(out))
		rendered, err := tui.NewRenderer(plain)(tui.DescribeMachine(def.Name, def.Description, m))
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	definitionFlags(inspectCmd)
}
