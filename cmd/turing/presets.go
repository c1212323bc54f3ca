package main

import (
	"fmt"

	"github.com/hashpad/turing/pkg/presets"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List the built-in machines, or print one as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, def := range presets.All() {
				fmt.Fprintf(out, "%-18s %s\n", def.Name, def.Description)
			}
			return nil
		}

		def, err := presets.Get(args[0])
		if err != nil {
			return err
		}
		data, err := def.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
