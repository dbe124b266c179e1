// Package cli implements the blockarray command-line interface.
//
// The solve command builds a block array from a configuration file, steers
// it to the configured target and prints the required element excitations.
// The pattern command prints |AF| of the solved array at chosen directions.
// All commands accept --config and --verbose.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wiless/blockarray/config"
)

// app holds what PersistentPreRunE prepared for the subcommands.
type app struct {
	out        io.Writer
	errOut     io.Writer
	configPath string
	verbose    bool
	logFormat  string
	cfg        *config.Config
	runID      string
}

// NewRootCommand wires every subcommand; out receives reports, errOut logs.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:          "blockarray",
		Short:        "Steer block-built phased arrays and evaluate their beam",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if a.configPath != "" {
				var err error
				if cfg, err = config.Read(a.configPath); err != nil {
					return err
				}
			}
			a.cfg = cfg

			format := cfg.Output.LogFormat
			if cmd.Flags().Changed("log-format") {
				format = a.logFormat
			}
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.runID = uuid.NewString()
			entry := newLogger(a.errOut, level, format).WithField("run", a.runID)
			cmd.SetContext(withLogger(cmd.Context(), entry))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (json, yaml or toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newSolveCmd(a))
	root.AddCommand(newPatternCmd(a))
	return root
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context, out, errOut io.Writer) error {
	return NewRootCommand(out, errOut).ExecuteContext(ctx)
}

func (a *app) logger(cmd *cobra.Command) *log.Entry {
	return loggerFromContext(cmd.Context())
}

func parseFloats(args []string) ([]float64, error) {
	result := make([]float64, len(args))
	for i, s := range args {
		if _, err := fmt.Sscan(s, &result[i]); err != nil {
			return nil, fmt.Errorf("angle %q: %w", s, err)
		}
	}
	return result, nil
}
