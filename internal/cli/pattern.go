package cli

import (
	"fmt"
	"math/cmplx"

	"github.com/spf13/cobra"

	"github.com/wiless/blockarray/antenna"
)

func newPatternCmd(a *app) *cobra.Command {
	var phi float64

	cmd := &cobra.Command{
		Use:   "pattern THETA...",
		Short: "Print |AF| of the steered array at the given theta angles (degrees)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thetas, err := parseFloats(args)
			if err != nil {
				return err
			}
			m, err := a.steeredArray(cmd)
			if err != nil {
				return err
			}
			for _, th := range thetas {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				af := m.ArrayFactor(antenna.DirectionDeg(th, phi))
				fmt.Fprintf(a.out, "%8.3f %8.3f %12.6f\n", th, phi, cmplx.Abs(af))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&phi, "phi", 0, "azimuth in degrees, ignored by linear arrays")
	return cmd
}
