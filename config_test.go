package fizz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("the default config should be valid: %v", err)
	}
	if config.Gravity != (mgl64.Vec2{0, -9.81}) {
		t.Errorf("Gravity = %v, want (0, -9.81)", config.Gravity)
	}
	if config.Workers != DEFAULT_WORKERS {
		t.Errorf("Workers = %d, want %d", config.Workers, DEFAULT_WORKERS)
	}
	if config.Settings() != DefaultSettings() {
		t.Errorf("Settings = %+v, want %+v", config.Settings(), DefaultSettings())
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
bounds:
  min: [-10, -20]
  max: [10, 20]
gravity: [0, -1.62]
substeps: 4
workers: 8
`)

	config, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Bounds.Min != (mgl64.Vec2{-10, -20}) || config.Bounds.Max != (mgl64.Vec2{10, 20}) {
		t.Errorf("Bounds = %+v, want (-10, -20) to (10, 20)", config.Bounds)
	}
	if config.Gravity != (mgl64.Vec2{0, -1.62}) {
		t.Errorf("Gravity = %v, want (0, -1.62)", config.Gravity)
	}
	if config.Substeps != 4 || config.Workers != 8 {
		t.Errorf("Substeps, Workers = %d, %d, want 4, 8", config.Substeps, config.Workers)
	}

	// Missing keys keep their default value
	defaults := DefaultConfig()
	if config.Tolerance != defaults.Tolerance || config.MaxIterations != defaults.MaxIterations {
		t.Errorf("Settings = %+v, want the defaults", config.Settings())
	}
	if config.Slop != defaults.Slop || config.CorrectionWeight != defaults.CorrectionWeight {
		t.Errorf("Slop, CorrectionWeight = %v, %v, want the defaults", config.Slop, config.CorrectionWeight)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty bounds", "bounds:\n  min: [0, 0]\n  max: [0, 10]\n"},
		{"negative max levels", "max_levels: -1\n"},
		{"zero tolerance", "tolerance: 0\n"},
		{"no iteration", "max_iterations: 0\n"},
		{"correction weight above 1", "correction_weight: 1.5\n"},
		{"negative slop", "slop: -0.1\n"},
		{"no substep", "substeps: 0\n"},
		{"no worker", "workers: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	_, err := ParseConfig([]byte("substeps: [1, 2"))
	if err == nil {
		t.Fatal("malformed YAML should fail")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("a parse error is not a validation error")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fizz.yaml")
	if err := os.WriteFile(path, []byte("substeps: 2\nslop: 0.05\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Substeps != 2 || config.Slop != 0.05 {
		t.Errorf("Substeps, Slop = %d, %v, want 2, 0.05", config.Substeps, config.Slop)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
