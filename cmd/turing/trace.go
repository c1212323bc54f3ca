package main

import (
	"encoding/json"
	"fmt"

	"github.com/hashpad/turing/internal/cli"
	"github.com/hashpad/turing/internal/config"
	"github.com/hashpad/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Manage recorded run traces",
	Long:  `List, show, and remove traces recorded by 'turing run --trace file|redis'.`,
}

var traceLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded traces",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := traceStore()
		if err != nil {
			return err
		}
		defer p.Close()

		ids, err := p.Store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing traces: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No traces found.")
			return nil
		}
		fmt.Fprintln(out, "Traces:")
		for _, id := range ids {
			fmt.Fprintln(out, "- "+id)
		}
		return nil
	},
}

var traceShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Replay a recorded trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		p, err := traceStore()
		if err != nil {
			return err
		}
		defer p.Close()

		trace, err := p.Store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading trace '%s': %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if jsonMode {
			data, err := json.MarshalIndent(trace, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		profile := cli.ColorProfile(cfg.Color, out)
		for _, snap := range trace {
			fmt.Fprintln(out, tui.FormatSnapshot(snap, profile))
		}
		return nil
	},
}

var traceRmCmd = &cobra.Command{
	Use:   "rm <run-id>...",
	Short: "Remove one or more traces",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := traceStore()
		if err != nil {
			return err
		}
		defer p.Close()

		out := cmd.OutOrStdout()
		var failed bool
		for _, id := range args {
			if err := p.Store.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(out, "Error removing '%s': %v\n", id, err)
				failed = true
				continue
			}
			fmt.Fprintf(out, "Removed trace '%s'\n", id)
		}
		if failed {
			return fmt.Errorf("some traces could not be removed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.AddCommand(traceLsCmd)
	traceCmd.AddCommand(traceShowCmd)
	traceCmd.AddCommand(traceRmCmd)

	traceShowCmd.Flags().Bool("json", false, "Print the snapshots as JSON")
}

// traceStore opens the configured trace backend for reading.
// Traces only outlive a process on disk or in redis, so the file backend is used otherwise.
func traceStore() (*cli.Persistence, error) {
	c := cfg
	if c.Trace.Backend != config.TraceRedis {
		c.Trace.Backend = config.TraceFile
	}
	return cli.OpenPersistence(c)
}
