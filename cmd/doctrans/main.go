// Command doctrans translates spreadsheets and documents into a single
// target language.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/doctrans"
	"github.com/ZaguanLabs/doctrans/internal/config"
	"github.com/ZaguanLabs/doctrans/internal/logger"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = doctrans.Version
	commit    = doctrans.GitCommit
	buildDate = doctrans.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := rootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel string
	logJSON  bool
}

func rootCmd(stdout, stderr io.Writer) *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           doctrans.Name,
		Short:         doctrans.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "Log as JSON")

	root.AddCommand(
		translateCmd(&g),
		languagesCmd(),
		serveCmd(&g),
		versionCmd(),
	)
	return root
}

// loadConfig applies the global flags and the given overrides on top of the
// environment.
func loadConfig(cmd *cobra.Command, g *globalFlags, overrides map[string]any) (*config.Config, error) {
	if overrides == nil {
		overrides = map[string]any{}
	}
	if g.logLevel != "" {
		overrides["log.level"] = g.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		overrides["log.json"] = g.logJSON
	}
	return config.Load(overrides)
}

func newLogger(cfg *config.Config, out io.Writer) *log.Logger {
	return logger.New(&logger.Config{
		Level:      logger.Level(cfg.Log.Level),
		Output:     out,
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", doctrans.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
			return nil
		},
	}
}
