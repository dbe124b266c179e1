// Package report prints solved block arrays as console tables.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"

	"github.com/wiless/blockarray/antenna"
)

// Reporter writes human readable tables of a Snapshot and its Summary.
type Reporter struct {
	Out    io.Writer
	Colour bool
}

func New(w io.Writer, colour bool) *Reporter {
	return &Reporter{Out: w, Colour: colour}
}

func (r *Reporter) heading(format string, args ...interface{}) error {
	c := color.New(color.Bold)
	if r.Colour {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	_, err := c.Fprintf(r.Out, format+"\n", args...)
	return err
}

// Report prints the per-block excitations followed by the beam summary.
func (r *Reporter) Report(snap antenna.Snapshot, sum antenna.Summary) error {
	if err := r.Blocks(snap); err != nil {
		return err
	}
	return r.Summary(snap, sum)
}

// Blocks prints one table per block: element index, position, amplitude and
// phase in degrees. Elements whose amplitude fell back to |I| are starred.
func (r *Reporter) Blocks(snap antenna.Snapshot) error {
	theta, phi := snap.Target.Degrees()
	target := fmt.Sprintf("θ=%.2f°", theta)
	if snap.Geometry == antenna.Planar {
		target += fmt.Sprintf(" φ=%.2f°", phi)
	}
	if err := r.heading("\nRequired antenna configuration (%s, %d blocks, target %s):\n", snap.Geometry, len(snap.Blocks), target); err != nil {
		return err
	}
	if !snap.Solved {
		if _, err := fmt.Fprintln(r.Out, "(not solved: excitations are the defaults)"); err != nil {
			return err
		}
	}

	for _, b := range snap.Blocks {
		if _, err := fmt.Fprintf(r.Out, "Block %d @ %s:\n", b.Index+1, formatPosition(snap.Geometry, b.Centre.X, b.Centre.Y)); err != nil {
			return err
		}
		rows := make([][]string, len(b.Elements))
		for i, e := range b.Elements {
			amp := fmt.Sprintf("%.6f", e.Amplitude)
			if e.Degenerate {
				amp += "*"
			}
			rows[i] = []string{
				fmt.Sprintf("%d", i),
				formatPosition(snap.Geometry, e.Position.X, e.Position.Y),
				amp,
				fmt.Sprintf("%.4f", antenna.Degree(e.Phase)),
			}
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Antenna #", "Position", "Amplitude", "Phase (deg)").
			Rows(rows...)
		if r.Colour {
			t = t.StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return lipgloss.NewStyle().Bold(true).Padding(0, 1)
				}
				return lipgloss.NewStyle().Padding(0, 1)
			})
		}
		if _, err := fmt.Fprintln(r.Out, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// Summary prints the achievable and achieved array factor.
func (r *Reporter) Summary(snap antenna.Snapshot, sum antenna.Summary) error {
	if err := r.heading("\nResulting beamform:"); err != nil {
		return err
	}
	theta, phi := sum.PeakDirection.Degrees()
	peak := fmt.Sprintf("θ=%.1f°", theta)
	if snap.Geometry == antenna.Planar {
		peak += fmt.Sprintf(" φ=%.1f°", phi)
	}
	_, err := fmt.Fprintf(r.Out,
		"--- Best expected array factor: %d\n--- Array factor at target: %.6f\n--- Mean array factor: %.6f\n--- Peak array factor: %.6f at %s\n",
		sum.ElementCount, sum.TargetGain, sum.MeanGain, sum.PeakGain, peak)
	return err
}

func formatPosition(g antenna.Geometry, x, y float64) string {
	if g == antenna.Planar {
		return fmt.Sprintf("(%.3f, %.3f)", x, y)
	}
	return fmt.Sprintf("%.3f", x)
}
