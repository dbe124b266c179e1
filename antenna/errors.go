package antenna

import (
	"errors"
	"fmt"
	"math"

	"github.com/wiless/vlib"
)

// ErrInvalidArgument is returned (wrapped) for every construction or
// assignment input the array model refuses.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func isFinite(v ...float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func finiteLocation(l vlib.Location3D) bool {
	return isFinite(l.X, l.Y, l.Z)
}
