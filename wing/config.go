package wing

import (
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("wing: invalid configuration")

// Config controls a generation pass.
type Config struct {
	// Sections is the number of span stations sampled from root to tip.
	Sections int `yaml:"sections"`
	// Scale uniformly dilates the fused geometry about the origin.
	Scale float64 `yaml:"scale"`
	// Output is the export path. Export is skipped when empty.
	Output string `yaml:"output"`
	Domain Domain `yaml:"domain"`
	// Logger receives progress and kernel failures. Nil uses slog.Default.
	Logger *slog.Logger `yaml:"-"`
}

// Domain is the fluid domain box the wing is cut out of.
// Planar extents are multiplied by the configuration scale, Width is not.
type Domain struct {
	Enabled  bool    `yaml:"enabled"`
	Height   float64 `yaml:"height"`
	Width    float64 `yaml:"width"`
	Ground   float64 `yaml:"ground"`
	Forward  float64 `yaml:"forward"`
	Backward float64 `yaml:"backward"`
}

// DefaultConfig returns the configuration used when no run file is given.
func DefaultConfig() Config {
	return Config{
		Sections: 50,
		Scale:    1.5,
		Output:   "MultiElementWing.stl",
		Domain: Domain{
			Height:   5,
			Width:    5,
			Ground:   0.5,
			Forward:  5,
			Backward: 10,
		},
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch {
	case c.Sections < 2:
		return fmt.Errorf("%w: need at least 2 sections, got %d", ErrInvalidConfig, c.Sections)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale must be positive, got %g", ErrInvalidConfig, c.Scale)
	}
	if !c.Domain.Enabled {
		return nil
	}
	d := c.Domain
	if !(d.Height > 0 && d.Width > 0 && d.Forward > 0 && d.Backward > 0) {
		return fmt.Errorf("%w: domain dimensions must be positive", ErrInvalidConfig)
	}
	if !(d.Ground >= 0 && d.Ground < d.Height) {
		return fmt.Errorf("%w: domain ground clearance %g outside [0,%g)", ErrInvalidConfig, d.Ground, d.Height)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Profile returns the domain's base rectangle at z=0 scaled by scale.
func (d Domain) Profile(scale float64) []r3.Vec {
	x0, x1 := -d.Forward*scale, d.Backward*scale
	y0, y1 := -d.Ground*scale, (d.Height-d.Ground)*scale
	return []r3.Vec{
		{X: x0, Y: y0},
		{X: x0, Y: y1},
		{X: x1, Y: y1},
		{X: x1, Y: y0},
	}
}
