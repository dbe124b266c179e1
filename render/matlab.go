package render

import (
	"fmt"
	"io"
	"os"

	"github.com/wiless/vlib"

	"github.com/wiless/blockarray/antenna"
)

// MatlabRenderer writes an .m script that plots the element layout and the
// beam. Writer takes precedence over File.
type MatlabRenderer struct {
	File   string
	Writer io.Writer
	HoldOn bool
}

func (r *MatlabRenderer) Render(snap antenna.Snapshot, pattern *antenna.Pattern) error {
	if pattern == nil {
		return errNoPattern
	}
	if r.Writer == nil && r.File == "" {
		return fmt.Errorf("render: matlab renderer has no output")
	}

	w := r.Writer
	var f *os.File
	if w == nil {
		var err error
		if f, err = os.Create(r.File); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		// vlib must not close f; its error is reported below.
		w = struct{ io.Writer }{f}
	}

	var matlab vlib.Matlab
	matlab.SetDefaults()
	matlab.SetWriter(w)
	matlab.Silent = true

	grid := pattern.Grid
	flat := vlib.NewVectorF(0)
	for i := 0; i < grid.NTheta; i++ {
		flat = append(flat, pattern.Values[i]...)
	}
	theta, phi := snap.Target.Degrees()

	matlab.Export("AntennaLocations", positionsC(snap.Positions()))
	matlab.Export("Theta", grid.Thetas())
	matlab.Export("Phi", grid.Phis())
	matlab.Export("AFlat", flat)
	matlab.Export("N", len(snap.Positions()))
	matlab.Export("Target", vlib.VectorF{theta, phi})
	matlab.Command(fmt.Sprintf("\nAF=reshape(AFlat,%d,%d)';", grid.NPhi, grid.NTheta))

	if !r.HoldOn {
		matlab.Command("figure;")
	}
	matlab.Command("plot(real(AntennaLocations),imag(AntennaLocations),'r*');")
	matlab.Command("title('Antenna Positions'); grid on;")
	if !r.HoldOn {
		matlab.Command("figure;")
	}
	if snap.Geometry == antenna.Planar {
		matlab.Command("[PHI,THETA]=meshgrid(deg2rad(Phi),deg2rad(Theta));")
		matlab.Command("X=AF.*sin(THETA).*cos(PHI); Y=AF.*sin(THETA).*sin(PHI); Z=abs(AF.*cos(THETA));")
		matlab.Command("surf(X,Y,Z); xlabel('X'); ylabel('Y'); zlabel('Z');")
	} else {
		matlab.Command("plot(Theta,AF(:,1),'k-'); xlabel('Angle from Array (Degrees)'); ylabel('Array Factor');")
	}
	matlab.Command("title('Block-Generated Beamform');")
	matlab.Close()
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("render %s: %w", r.File, err)
		}
	}
	return nil
}
