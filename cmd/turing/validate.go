package main

import (
	"errors"
	"fmt"

	"github.com/hashpad/turing/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition>...",
	Short: "Check machine definitions for consistency",
	Long:  `Reports every problem of each definition: unknown states, invalid symbols, bad moves and duplicate rules.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0

		for _, path := range args {
			def, err := schema.Load(path)
			if err == nil {
				err = def.Validate()
			}
			if err == nil {
				fmt.Fprintf(out, "%s is valid! ✅\n", path)
				continue
			}

			failed++
			fmt.Fprintf(out, "%s is invalid ❌\n", path)
			if errs := schema.ValidationErrors(err); errs != nil {
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
			} else {
				fmt.Fprintf(out, "  - %v\n", err)
			}
		}

		if failed > 0 {
			return errors.New("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
