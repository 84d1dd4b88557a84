// File: utils/config.go
package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RectSpec describes an axis-aligned rectangle in config files.
type RectSpec struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Config holds all configurable simulation parameters.
type Config struct {
	// Server
	ListenAddr string `yaml:"listenAddr" json:"listenAddr"` // Address for the HTTP/WebSocket server
	LogLevel   string `yaml:"logLevel" json:"logLevel"`     // zap level: debug, info, warn, error

	// Timing
	BroadcastPeriod time.Duration `yaml:"broadcastPeriod" json:"broadcastPeriod"` // Interval between state snapshots to clients; zero disables them

	// World
	WorldWidth  float64 `yaml:"worldWidth" json:"worldWidth"`   // Width of the drag surface
	WorldHeight float64 `yaml:"worldHeight" json:"worldHeight"` // Height of the drag surface

	// Magnet
	MagnetWidth  float64 `yaml:"magnetWidth" json:"magnetWidth"`   // Bar magnet footprint width
	MagnetHeight float64 `yaml:"magnetHeight" json:"magnetHeight"` // Bar magnet footprint height
	MagnetHomeX  float64 `yaml:"magnetHomeX" json:"magnetHomeX"`   // Home (reset) center X
	MagnetHomeY  float64 `yaml:"magnetHomeY" json:"magnetHomeY"`   // Home (reset) center Y
	NudgeStep    float64 `yaml:"nudgeStep" json:"nudgeStep"`       // Keyboard step distance per arrow press

	// Exclusion zones (regions occupied by the coils)
	PickupCoilZone    RectSpec `yaml:"pickupCoilZone" json:"pickupCoilZone"`
	ElectromagnetZone RectSpec `yaml:"electromagnetZone" json:"electromagnetZone"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	worldWidth := 800.0
	worldHeight := 600.0

	return Config{
		ListenAddr: ":3001",
		LogLevel:   "info",

		BroadcastPeriod: 20 * time.Millisecond,

		WorldWidth:  worldWidth,
		WorldHeight: worldHeight,

		MagnetWidth:  150,
		MagnetHeight: 50,
		MagnetHomeX:  worldWidth / 4,
		MagnetHomeY:  worldHeight / 2,
		NudgeStep:    10,

		// Pickup coil sits on the right half of the surface, the
		// electromagnet in the lower-left corner area.
		PickupCoilZone:    RectSpec{X: 560, Y: 180, Width: 120, Height: 240},
		ElectromagnetZone: RectSpec{X: 80, Y: 420, Width: 160, Height: 120},
	}
}

// LoadConfig reads a YAML file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects geometrically degenerate configurations early, before
// they reach the motion solver.
func (c Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.MagnetWidth <= 0 || c.MagnetHeight <= 0 {
		return fmt.Errorf("magnet dimensions must be positive, got %gx%g", c.MagnetWidth, c.MagnetHeight)
	}
	if c.NudgeStep <= 0 {
		return fmt.Errorf("nudge step must be positive, got %g", c.NudgeStep)
	}
	if c.BroadcastPeriod < 0 {
		return fmt.Errorf("broadcast period must not be negative, got %s", c.BroadcastPeriod)
	}
	for name, zone := range map[string]RectSpec{
		"pickupCoilZone":    c.PickupCoilZone,
		"electromagnetZone": c.ElectromagnetZone,
	} {
		if zone.Width <= 0 || zone.Height <= 0 {
			return fmt.Errorf("%s must have positive dimensions, got %gx%g", name, zone.Width, zone.Height)
		}
	}
	return nil
}
