package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultConfigPath is the path to the canonical simulation defaults file.
const DefaultConfigPath = "config/sim.defaults.json"

// SimConfig represents the root configuration for a simulation run.
// Every field is optional; the Get* accessors supply defaults for omitted
// values, so partial configs are safe.
type SimConfig struct {
	// Sensor params
	RayCount         *int     `json:"ray_count,omitempty"`
	MaxRange         *float64 `json:"max_range,omitempty"`
	SamplesPerRay    *int     `json:"samples_per_ray,omitempty"`
	DistanceVariance *float64 `json:"distance_variance,omitempty"`
	AngleVariance    *float64 `json:"angle_variance,omitempty"`
	Seed             *uint64  `json:"seed,omitempty"`

	// Map params
	MapWidth  *int    `json:"map_width,omitempty"`
	MapHeight *int    `json:"map_height,omitempty"`
	WallColor *string `json:"wall_color,omitempty"` // hex string like "#000000"

	// Agent params
	AgentRadius      *float64 `json:"agent_radius,omitempty"`
	MovementStep     *float64 `json:"movement_step,omitempty"`
	CollisionBandMin *float64 `json:"collision_band_min,omitempty"`
	CollisionBandMax *float64 `json:"collision_band_max,omitempty"`

	// Spawn params
	SpawnClearance   *float64 `json:"spawn_clearance,omitempty"`
	SpawnMaxAttempts *int     `json:"spawn_max_attempts,omitempty"`

	// Runner params
	TickInterval *string `json:"tick_interval,omitempty"` // duration string like "50ms"
}

// EmptySimConfig returns a SimConfig with all fields set to nil.
func EmptySimConfig() *SimConfig {
	return &SimConfig{}
}

// LoadSimConfig loads a SimConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadSimConfig(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySimConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *SimConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadSimConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *SimConfig) Validate() error {
	if c.RayCount != nil && *c.RayCount <= 0 {
		return fmt.Errorf("ray_count must be positive, got %d", *c.RayCount)
	}
	if c.SamplesPerRay != nil && *c.SamplesPerRay <= 0 {
		return fmt.Errorf("samples_per_ray must be positive, got %d", *c.SamplesPerRay)
	}
	if c.MaxRange != nil && *c.MaxRange <= 0 {
		return fmt.Errorf("max_range must be positive, got %f", *c.MaxRange)
	}
	if c.DistanceVariance != nil && *c.DistanceVariance < 0 {
		return fmt.Errorf("distance_variance must be non-negative, got %f", *c.DistanceVariance)
	}
	if c.AngleVariance != nil && *c.AngleVariance < 0 {
		return fmt.Errorf("angle_variance must be non-negative, got %f", *c.AngleVariance)
	}

	if c.MapWidth != nil && *c.MapWidth < 0 {
		return fmt.Errorf("map_width must be non-negative, got %d", *c.MapWidth)
	}
	if c.MapHeight != nil && *c.MapHeight < 0 {
		return fmt.Errorf("map_height must be non-negative, got %d", *c.MapHeight)
	}
	if c.WallColor != nil {
		if _, err := ParseHexColor(*c.WallColor); err != nil {
			return fmt.Errorf("invalid wall_color: %w", err)
		}
	}

	if c.AgentRadius != nil && *c.AgentRadius <= 0 {
		return fmt.Errorf("agent_radius must be positive, got %f", *c.AgentRadius)
	}
	if c.MovementStep != nil && *c.MovementStep <= 0 {
		return fmt.Errorf("movement_step must be positive, got %f", *c.MovementStep)
	}
	if c.GetCollisionBandMin() > c.GetCollisionBandMax() {
		return fmt.Errorf("collision_band_min (%f) must not exceed collision_band_max (%f)",
			c.GetCollisionBandMin(), c.GetCollisionBandMax())
	}

	if c.SpawnClearance != nil && *c.SpawnClearance < 0 {
		return fmt.Errorf("spawn_clearance must be non-negative, got %f", *c.SpawnClearance)
	}
	if c.SpawnMaxAttempts != nil && *c.SpawnMaxAttempts <= 0 {
		return fmt.Errorf("spawn_max_attempts must be positive, got %d", *c.SpawnMaxAttempts)
	}

	if c.TickInterval != nil && *c.TickInterval != "" {
		if _, err := time.ParseDuration(*c.TickInterval); err != nil {
			return fmt.Errorf("invalid tick_interval '%s': %w", *c.TickInterval, err)
		}
	}

	return nil
}

// ParseHexColor parses "#rrggbb" (the leading '#' is optional) into an
// opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("expected 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// GetRayCount returns the ray_count value or the default.
func (c *SimConfig) GetRayCount() int {
	if c.RayCount == nil {
		return 60
	}
	return *c.RayCount
}

// GetMaxRange returns the max_range value or the default.
func (c *SimConfig) GetMaxRange() float64 {
	if c.MaxRange == nil {
		return 200
	}
	return *c.MaxRange
}

// GetSamplesPerRay returns the samples_per_ray value or the default.
func (c *SimConfig) GetSamplesPerRay() int {
	if c.SamplesPerRay == nil {
		return 100
	}
	return *c.SamplesPerRay
}

// GetDistanceVariance returns the distance_variance value or the default.
func (c *SimConfig) GetDistanceVariance() float64 {
	if c.DistanceVariance == nil {
		return 0.5
	}
	return *c.DistanceVariance
}

// GetAngleVariance returns the angle_variance value or the default.
func (c *SimConfig) GetAngleVariance() float64 {
	if c.AngleVariance == nil {
		return 0.01
	}
	return *c.AngleVariance
}

// GetSeed returns the seed value or the default (0, time seeded).
func (c *SimConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// GetMapWidth returns the map_width value or the default.
// Zero keeps the source image width.
func (c *SimConfig) GetMapWidth() int {
	if c.MapWidth == nil {
		return 900
	}
	return *c.MapWidth
}

// GetMapHeight returns the map_height value or the default.
// Zero keeps the source image height.
func (c *SimConfig) GetMapHeight() int {
	if c.MapHeight == nil {
		return 800
	}
	return *c.MapHeight
}

// GetWallColor parses and returns the wall colour, black by default or on
// parse error.
func (c *SimConfig) GetWallColor() color.RGBA {
	black := color.RGBA{A: 255}
	if c.WallColor == nil || *c.WallColor == "" {
		return black
	}
	col, err := ParseHexColor(*c.WallColor)
	if err != nil {
		return black
	}
	return col
}

// GetAgentRadius returns the agent_radius value or the default.
func (c *SimConfig) GetAgentRadius() float64 {
	if c.AgentRadius == nil {
		return 20
	}
	return *c.AgentRadius
}

// GetMovementStep returns the movement_step value or the default.
func (c *SimConfig) GetMovementStep() float64 {
	if c.MovementStep == nil {
		return 5
	}
	return *c.MovementStep
}

// GetCollisionBandMin returns the collision_band_min value or the default.
func (c *SimConfig) GetCollisionBandMin() float64 {
	if c.CollisionBandMin == nil {
		return 10
	}
	return *c.CollisionBandMin
}

// GetCollisionBandMax returns the collision_band_max value or the default.
func (c *SimConfig) GetCollisionBandMax() float64 {
	if c.CollisionBandMax == nil {
		return 23
	}
	return *c.CollisionBandMax
}

// GetSpawnClearance returns the spawn_clearance value or the default.
func (c *SimConfig) GetSpawnClearance() float64 {
	if c.SpawnClearance == nil {
		return 10
	}
	return *c.SpawnClearance
}

// GetSpawnMaxAttempts returns the spawn_max_attempts value or the default.
func (c *SimConfig) GetSpawnMaxAttempts() int {
	if c.SpawnMaxAttempts == nil {
		return 1000
	}
	return *c.SpawnMaxAttempts
}

// GetTickInterval parses and returns the TickInterval as a time.Duration.
func (c *SimConfig) GetTickInterval() time.Duration {
	if c.TickInterval == nil || *c.TickInterval == "" {
		return 50 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.TickInterval)
	if err != nil {
		return 50 * time.Millisecond // default on parse error
	}
	return d
}
