// Package config reads block-array run configuration from files and the
// environment.
package config

import (
	"fmt"

	ms "github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/wiless/vlib"

	"github.com/wiless/blockarray/antenna"
	"github.com/wiless/blockarray/deployment"
)

// EnvPrefix is prepended to upper-cased keys when reading the environment,
// e.g. BLOCKARRAY_WAVELENGTH.
const EnvPrefix = "BLOCKARRAY"

type TargetConfig struct {
	Theta float64 // degree
	Phi   float64 // degree
}

// GridConfig is a sampling grid in degrees. NTheta == 0 selects the default
// grid of the geometry.
type GridConfig struct {
	NTheta     int
	ThetaStart float64
	ThetaStep  float64
	NPhi       int
	PhiStart   float64
	PhiStep    float64
}

type LayoutConfig struct {
	Type           string
	Centre         []float64
	NCount         int
	NX, NY         int
	Pitch          float64
	PitchY         float64
	Radius         float64
	RotationDegree float64
}

type OutputConfig struct {
	Colour    bool
	MFile     string
	PlotDir   string
	Snapshot  string
	LogFormat string // "text" or "json"
}

// Config is the full description of one run.
type Config struct {
	Geometry string
	// Wavelength wins over FreqHz; with neither set antenna.DefaultWavelength applies
	Wavelength   float64
	FreqHz       float64
	Spacing      antenna.Spacing
	BlockSpacing map[int]antenna.Spacing
	// Centres are [x] or [x, y] block centres; Layout is used when empty
	Centres [][]float64
	Layout  *LayoutConfig
	Target  TargetConfig
	Grid    GridConfig
	Workers int
	Output  OutputConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("geometry", "linear")
	v.SetDefault("wavelength", 0)
	v.SetDefault("freqhz", 0)
	v.SetDefault("target.theta", 90)
	v.SetDefault("target.phi", 0)
	v.SetDefault("workers", 0)
	v.SetDefault("output.colour", true)
	v.SetDefault("output.logformat", "text")
}

// Default returns the configuration used when no file is given: seven
// linear blocks steered to 125°.
func Default() *Config {
	l := antenna.DefaultWavelength
	return &Config{
		Geometry:   "linear",
		Wavelength: l,
		Centres:    [][]float64{{-20}, {-l}, {1.3 * l}, {30}, {35}, {40}, {50}},
		Target:     TargetConfig{Theta: 125},
		Output:     OutputConfig{Colour: true, LogFormat: "text"},
	}
}

// Read loads path (JSON, YAML or TOML by extension) on top of the defaults
// and the BLOCKARRAY_* environment.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		log.WithField("file", v.ConfigFileUsed()).Debug("config loaded")
	}
	return Decode(v.AllSettings())
}

// Decode converts a generic settings map into a Config.
func Decode(settings map[string]interface{}) (*Config, error) {
	cfg := new(Config)
	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(settings); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Setting translates the array part of the configuration.
func (c *Config) Setting(logger *log.Entry) (*antenna.Setting, error) {
	geometry, err := antenna.ParseGeometry(c.Geometry)
	if err != nil {
		return nil, err
	}
	s := antenna.NewSetting()
	s.Geometry = geometry
	s.Wavelength = c.Wavelength
	s.FreqHz = c.FreqHz
	s.Spacing = c.Spacing
	s.BlockSpacing = c.BlockSpacing
	s.Workers = c.Workers
	if logger != nil {
		s.Logger = logger
	}
	return s, nil
}

// CentreLocations returns the explicit centres, or the layout drop when no
// centres are listed.
func (c *Config) CentreLocations() ([]vlib.Location3D, error) {
	if len(c.Centres) == 0 && c.Layout != nil {
		return c.Layout.drop()
	}
	result := make([]vlib.Location3D, len(c.Centres))
	for i, xy := range c.Centres {
		switch len(xy) {
		case 1:
			result[i].X = xy[0]
		case 2:
			result[i].X, result[i].Y = xy[0], xy[1]
		default:
			return nil, fmt.Errorf("centre %d: want [x] or [x, y], got %v", i, xy)
		}
	}
	return result, nil
}

func (l *LayoutConfig) drop() ([]vlib.Location3D, error) {
	lt, err := deployment.ParseLayoutType(l.Type)
	if err != nil {
		return nil, err
	}
	p := deployment.LayoutParameter{
		Type:           lt,
		NCount:         l.NCount,
		NX:             l.NX,
		NY:             l.NY,
		Pitch:          l.Pitch,
		PitchY:         l.PitchY,
		Radius:         l.Radius,
		RotationDegree: l.RotationDegree,
	}
	if len(l.Centre) > 0 {
		p.Centre.X = l.Centre[0]
	}
	if len(l.Centre) > 1 {
		p.Centre.Y = l.Centre[1]
	}
	return deployment.Drop(p)
}

func (c *Config) TargetDirection() antenna.Direction {
	return antenna.DirectionDeg(c.Target.Theta, c.Target.Phi)
}

// SamplingGrid converts the configured grid to radians; a zero grid stays
// zero so the array picks its default.
func (c *Config) SamplingGrid() antenna.Grid {
	if c.Grid.NTheta == 0 {
		return antenna.Grid{}
	}
	nphi := c.Grid.NPhi
	if nphi == 0 {
		nphi = 1
	}
	return antenna.Grid{
		NTheta:     c.Grid.NTheta,
		ThetaStart: antenna.Radian(c.Grid.ThetaStart),
		ThetaStep:  antenna.Radian(c.Grid.ThetaStep),
		NPhi:       nphi,
		PhiStart:   antenna.Radian(c.Grid.PhiStart),
		PhiStep:    antenna.Radian(c.Grid.PhiStep),
	}
}

// Build constructs the array described by the configuration.
func (c *Config) Build(logger *log.Entry) (*antenna.ArrayModel, error) {
	s, err := c.Setting(logger)
	if err != nil {
		return nil, err
	}
	centres, err := c.CentreLocations()
	if err != nil {
		return nil, err
	}
	if s.Geometry == antenna.Linear {
		for i, ct := range centres {
			if ct.Y != 0 {
				return nil, fmt.Errorf("%w: linear block %d has y=%v", antenna.ErrInvalidArgument, i, ct.Y)
			}
		}
	}
	return antenna.NewArray(s, centres, c.TargetDirection())
}
