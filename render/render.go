// Package render draws element layouts and sampled radiation patterns of a
// block array, as Matlab/Octave scripts or as PNG plots.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/wiless/vlib"

	"github.com/wiless/blockarray/antenna"
)

// Renderer consumes a read-only snapshot and the sampled pattern of an array.
type Renderer interface {
	Render(snap antenna.Snapshot, pattern *antenna.Pattern) error
}

var errNoPattern = errors.New("render: nil pattern")

// Multi runs every renderer and returns the first failure.
type Multi []Renderer

func (m Multi) Render(snap antenna.Snapshot, pattern *antenna.Pattern) error {
	for _, r := range m {
		if err := r.Render(snap, pattern); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot writes snap as indented JSON to path.
func SaveSnapshot(path string, snap antenna.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

func positionsC(locs []vlib.Location3D) vlib.VectorC {
	result := vlib.NewVectorC(len(locs))
	for i, l := range locs {
		result[i] = l.Cmplx()
	}
	return result
}
