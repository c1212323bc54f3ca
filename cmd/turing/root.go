package main

import (
	"fmt"
	"os"

	"github.com/hashpad/turing/internal/config"
	"github.com/spf13/cobra"
)

// cfg is loaded before every command and then overridden by flags.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a single-tape Turing machine engine",
	Long: `Turing runs single-tape deterministic Turing machines described in YAML or JSON,
renders their state graphs, and serves them over HTTP and MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlags(cmd)
		return cfg.Validate()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (YAML or JSON)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("color", "", "Color output: auto, always, never")
	flags.String("trace", "", "Trace backend: none, memory, file, redis")
	flags.String("trace-dir", "", "Directory of the file trace backend")
	flags.String("redis-addr", "", "Address of the redis trace backend")
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	str("log-level", &cfg.LogLevel)
	str("log-file", &cfg.LogFile)
	str("color", &cfg.Color)
	str("trace", &cfg.Trace.Backend)
	str("trace-dir", &cfg.Trace.Dir)
	str("redis-addr", &cfg.Redis.Addr)

	if flags.Lookup("max-steps") != nil && flags.Changed("max-steps") {
		cfg.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Lookup("delay") != nil && flags.Changed("delay") {
		cfg.StepDelay, _ = flags.GetDuration("delay")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
}

// definitionFlags registers the machine selection flags shared by several commands.
func definitionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("preset", "p", "", "Use a built-in machine instead of a file")
	cmd.Flags().String("tape", "", "Override the initial tape")
}

// definitionArgs reads the machine selection: an optional file argument or --preset.
func definitionArgs(cmd *cobra.Command, args []string) (path, preset string, tape *string) {
	if len(args) > 0 {
		path = args[0]
	}
	preset, _ = cmd.Flags().GetString("preset")
	if cmd.Flags().Changed("tape") {
		t, _ := cmd.Flags().GetString("tape")
		tape = &t
	}
	return path, preset, tape
}
