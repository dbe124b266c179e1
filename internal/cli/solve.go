package cli

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wiless/blockarray/antenna"
	"github.com/wiless/blockarray/config"
	"github.com/wiless/blockarray/render"
	"github.com/wiless/blockarray/report"
)

type solveOpts struct {
	theta, phi float64
	mfile      string
	plotDir    string
	snapshot   string
	noColour   bool
}

func newSolveCmd(a *app) *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the steering excitations and report the beam",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("theta") {
				cfg.Target.Theta = opts.theta
			}
			if flags.Changed("phi") {
				cfg.Target.Phi = opts.phi
			}
			if flags.Changed("mfile") {
				cfg.Output.MFile = opts.mfile
			}
			if flags.Changed("plots") {
				cfg.Output.PlotDir = opts.plotDir
			}
			if flags.Changed("snapshot") {
				cfg.Output.Snapshot = opts.snapshot
			}
			if opts.noColour {
				cfg.Output.Colour = false
			}
			return a.solve(cmd, cfg)
		},
	}

	cmd.Flags().Float64Var(&opts.theta, "theta", 0, "target theta in degrees (overrides config)")
	cmd.Flags().Float64Var(&opts.phi, "phi", 0, "target phi in degrees (overrides config)")
	cmd.Flags().StringVar(&opts.mfile, "mfile", "", "write a Matlab/Octave script of layout and beam")
	cmd.Flags().StringVar(&opts.plotDir, "plots", "", "directory for layout and pattern PNGs")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "write the solved excitations as JSON")
	cmd.Flags().BoolVar(&opts.noColour, "no-colour", false, "disable coloured headings")
	return cmd
}

func (a *app) solve(cmd *cobra.Command, cfg *config.Config) error {
	logger := a.logger(cmd)
	start := time.Now()

	m, err := cfg.Build(logger.WithField("component", "antenna"))
	if err != nil {
		return err
	}
	if err := m.Solve(); err != nil {
		return err
	}
	grid := cfg.SamplingGrid()
	pattern, err := m.SamplePatternContext(cmd.Context(), grid)
	if err != nil {
		return err
	}
	sum := m.Summarize(grid)
	snap := m.Snapshot()
	logger.WithFields(log.Fields{
		"elements": sum.ElementCount,
		"target":   fmt.Sprintf("%.6f", sum.TargetGain),
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("array solved")

	if err := report.New(a.out, cfg.Output.Colour).Report(snap, sum); err != nil {
		return err
	}

	var renderers render.Multi
	if cfg.Output.MFile != "" {
		renderers = append(renderers, &render.MatlabRenderer{File: cfg.Output.MFile})
	}
	if cfg.Output.PlotDir != "" {
		renderers = append(renderers, &render.PlotRenderer{Dir: cfg.Output.PlotDir})
	}
	if len(renderers) > 0 {
		if err := renderers.Render(snap, pattern); err != nil {
			return err
		}
		logger.WithField("renderers", len(renderers)).Info("pattern rendered")
	}

	if cfg.Output.Snapshot != "" {
		if err := render.SaveSnapshot(cfg.Output.Snapshot, snap); err != nil {
			return err
		}
		logger.WithField("file", cfg.Output.Snapshot).Info("snapshot saved")
	}
	return nil
}

// steeredArray builds and solves the configured array.
func (a *app) steeredArray(cmd *cobra.Command) (*antenna.ArrayModel, error) {
	m, err := a.cfg.Build(a.logger(cmd).WithField("component", "antenna"))
	if err != nil {
		return nil, err
	}
	return m, m.Solve()
}
