package main

import (
	"github.com/hashpad/turing/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [definition]",
	Short: "Run a machine until it halts",
	Long: `Runs a machine from a YAML/JSON definition or a preset, printing the tape after every step.
Ctrl+C stops the run between steps.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, preset, tape := definitionArgs(cmd, args)
		jsonMode, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")
		runID, _ := cmd.Flags().GetString("run-id")

		_, err := cli.RunMachine(cmd.Context(), cfg, cli.RunOptions{
			File:   path,
			Preset: preset,
			Tape:   tape,
			RunID:  runID,
			JSON:   jsonMode,
			Quiet:  quiet,
			Out:    cmd.OutOrStdout(),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	definitionFlags(runCmd)
	runCmd.Flags().Int("max-steps", 0, "Stop after this many steps (0 = unbounded)")
	runCmd.Flags().Duration("delay", 0, "Pause between steps, e.g. 200ms")
	runCmd.Flags().Bool("json", false, "Write one JSON snapshot per line")
	runCmd.Flags().BoolP("quiet", "q", false, "Only print the result")
	runCmd.Flags().String("run-id", "", "Name of the recorded trace (default: random)")
}
