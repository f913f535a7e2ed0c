package fizz

import (
	"errors"
	"fmt"
	"os"

	"github.com/akmonengine/fizz/actor"
	"github.com/akmonengine/fizz/constraint"
	"github.com/akmonengine/fizz/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const DEFAULT_WORKERS = 1

// ErrInvalidConfig is wrapped by every validation error
var ErrInvalidConfig = errors.New("fizz: invalid config")

// Config holds the tuning of a World. It can be read from YAML, where missing keys keep
// their default value:
//
//	bounds:
//	  min: [-100, -100]
//	  max: [100, 100]
//	gravity: [0, -9.81]
//	substeps: 4
type Config struct {
	// Bounds of the quadtree root. Bodies outside are still handled, at the root level.
	Bounds    actor.AABB `yaml:"bounds"`
	MaxLevels int        `yaml:"max_levels"`

	// Convergence of GJK distance and EPA
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`

	// Sinking correction
	CorrectionWeight float64 `yaml:"correction_weight"`
	Slop             float64 `yaml:"slop"`

	// Gravity acceleration (m/s², or N/kg)
	Gravity  mgl64.Vec2 `yaml:"gravity"`
	Substeps int        `yaml:"substeps"`
	Workers  int        `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		Bounds:           actor.AABB{Min: mgl64.Vec2{-100, -100}, Max: mgl64.Vec2{100, 100}},
		MaxLevels:        DefaultMaxLevels,
		Tolerance:        gjk.DefaultTolerance,
		MaxIterations:    gjk.DefaultMaxIterations,
		CorrectionWeight: constraint.DefaultCorrectionWeight,
		Slop:             constraint.DefaultSlop,
		Gravity:          mgl64.Vec2{0, -9.81},
		Substeps:         1,
		Workers:          DEFAULT_WORKERS,
	}
}

// ParseConfig reads a YAML document on top of DefaultConfig, then validates it
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and parses a YAML file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return ParseConfig(data)
}

func (c Config) Validate() error {
	if c.Bounds.Min.X() >= c.Bounds.Max.X() || c.Bounds.Min.Y() >= c.Bounds.Max.Y() {
		return fmt.Errorf("%w: bounds %v to %v are empty", ErrInvalidConfig, c.Bounds.Min, c.Bounds.Max)
	}
	if c.MaxLevels < 0 {
		return fmt.Errorf("%w: max_levels cannot be negative", ErrInvalidConfig)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalidConfig)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: max_iterations must be at least 1", ErrInvalidConfig)
	}
	if c.CorrectionWeight < 0 || c.CorrectionWeight > 1 {
		return fmt.Errorf("%w: correction_weight must be between 0 and 1", ErrInvalidConfig)
	}
	if c.Slop < 0 {
		return fmt.Errorf("%w: slop cannot be negative", ErrInvalidConfig)
	}
	if c.Substeps < 1 {
		return fmt.Errorf("%w: substeps must be at least 1", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}

	return nil
}

// Settings derives the narrow-phase settings
func (c Config) Settings() Settings {
	return Settings{
		Tolerance:     c.Tolerance,
		MaxIterations: c.MaxIterations,
	}
}
