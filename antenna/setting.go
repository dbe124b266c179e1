package antenna

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"
)

const cspeed float64 = 3.0e8

// DefaultWavelength is the carrier wavelength used when a Setting specifies
// neither Wavelength nor FreqHz.
const DefaultWavelength = 5.168835482759

type Geometry int

const (
	Linear Geometry = iota
	Planar
)

var Geometries = [...]string{
	"Linear",
	"Planar",
}

func (g Geometry) String() string {
	if int(g) < 0 || int(g) >= len(Geometries) {
		return "Unknown-Geometry"
	}
	return Geometries[g]
}

// Arity is the number of elements a block of this geometry owns.
func (g Geometry) Arity() int {
	if g == Planar {
		return 4
	}
	return 2
}

// ParseGeometry accepts "linear"/"1d" and "planar"/"2d" in any case.
func ParseGeometry(s string) (Geometry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "1d", "":
		return Linear, nil
	case "planar", "2d":
		return Planar, nil
	}
	return Linear, invalidf("unknown geometry %q", s)
}

// Setting carries the construction-time parameters of an ArrayModel.
type Setting struct {
	Geometry   Geometry
	FreqHz     float64
	Wavelength float64
	// Spacing applies to every block; zero axes default to λ/2.
	Spacing Spacing
	// BlockSpacing overrides Spacing for individual block indices.
	BlockSpacing map[int]Spacing
	// Workers bounds the goroutines used by SamplePattern; 0 means GOMAXPROCS.
	Workers int
	Logger  *log.Entry `json:"-"`
}

func (s *Setting) SetDefault() {
	s.Geometry = Linear
	s.FreqHz = 0
	s.Wavelength = DefaultWavelength
	s.Spacing = Spacing{}
	s.BlockSpacing = nil
	s.Workers = 0
	s.Logger = log.WithField("component", "antenna")
}

func NewSetting() *Setting {
	result := new(Setting)
	result.SetDefault()
	return result
}

// Set overlays the JSON document str on the setting.
func (s *Setting) Set(str string) error {
	if err := json.Unmarshal([]byte(str), s); err != nil {
		return fmt.Errorf("antenna setting: %w", err)
	}
	return nil
}

// Lamda resolves the carrier wavelength: Wavelength wins, then c/FreqHz,
// then DefaultWavelength.
func (s *Setting) Lamda() float64 {
	if s.Wavelength > 0 {
		return s.Wavelength
	}
	if s.FreqHz > 0 {
		return GetLamda(s.FreqHz)
	}
	return DefaultWavelength
}

func (s *Setting) spacingFor(block int) Spacing {
	sp := s.Spacing
	if o, ok := s.BlockSpacing[block]; ok {
		sp = o
	}
	half := HalfWave(s.Lamda())
	if sp.X == 0 {
		sp.X = half.X
	}
	if sp.Y == 0 {
		sp.Y = half.Y
	}
	return sp
}

func (s *Setting) logger() *log.Entry {
	if s.Logger == nil {
		return log.WithField("component", "antenna")
	}
	return s.Logger
}

func (s *Setting) validate() error {
	if s.Geometry != Linear && s.Geometry != Planar {
		return invalidf("unknown geometry %d", int(s.Geometry))
	}
	if !isFinite(s.Wavelength, s.FreqHz) || s.Wavelength < 0 || s.FreqHz < 0 {
		return invalidf("wavelength %v / frequency %v", s.Wavelength, s.FreqHz)
	}
	return nil
}

// GetLamda returns the free-space wavelength for a carrier in Hz.
func GetLamda(freqHz float64) float64 {
	return cspeed / freqHz
}

// Wavenumber returns k = 2π/λ.
func Wavenumber(lamda float64) float64 {
	return 2 * math.Pi / lamda
}

func Radian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

func Degree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}
