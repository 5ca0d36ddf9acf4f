package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestEmptySimConfig_Defaults(t *testing.T) {
	cfg := EmptySimConfig()

	assert.Equal(t, 60, cfg.GetRayCount())
	assert.Equal(t, 200.0, cfg.GetMaxRange())
	assert.Equal(t, 100, cfg.GetSamplesPerRay())
	assert.Equal(t, 0.5, cfg.GetDistanceVariance())
	assert.Equal(t, 0.01, cfg.GetAngleVariance())
	assert.Equal(t, uint64(0), cfg.GetSeed())
	assert.Equal(t, 900, cfg.GetMapWidth())
	assert.Equal(t, 800, cfg.GetMapHeight())
	assert.Equal(t, color.RGBA{A: 255}, cfg.GetWallColor())
	assert.Equal(t, 20.0, cfg.GetAgentRadius())
	assert.Equal(t, 5.0, cfg.GetMovementStep())
	assert.Equal(t, 10.0, cfg.GetCollisionBandMin())
	assert.Equal(t, 23.0, cfg.GetCollisionBandMax())
	assert.Equal(t, 10.0, cfg.GetSpawnClearance())
	assert.Equal(t, 1000, cfg.GetSpawnMaxAttempts())
	assert.Equal(t, 50*time.Millisecond, cfg.GetTickInterval())
	assert.NoError(t, cfg.Validate())
}

func TestLoadSimConfig_Partial(t *testing.T) {
	path := writeConfig(t, "sim.json", `{
  "ray_count": 120,
  "distance_variance": 0,
  "wall_color": "#464646",
  "collision_band_max": 30,
  "seed": 42,
  "tick_interval": "10ms"
}`)

	cfg, err := LoadSimConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.GetRayCount())
	assert.Equal(t, 0.0, cfg.GetDistanceVariance())
	assert.Equal(t, color.RGBA{R: 70, G: 70, B: 70, A: 255}, cfg.GetWallColor())
	assert.Equal(t, 30.0, cfg.GetCollisionBandMax())
	assert.Equal(t, uint64(42), cfg.GetSeed())
	assert.Equal(t, 10*time.Millisecond, cfg.GetTickInterval())

	// omitted fields keep defaults
	assert.Equal(t, 200.0, cfg.GetMaxRange())
	assert.Equal(t, 10.0, cfg.GetCollisionBandMin())
}

func TestLoadSimConfig_Errors(t *testing.T) {
	cases := map[string]struct {
		name string
		body string
	}{
		"wrong extension":   {"sim.yaml", `{}`},
		"bad json":          {"sim.json", `{"ray_count": }`},
		"zero rays":         {"sim.json", `{"ray_count": 0}`},
		"negative variance": {"sim.json", `{"angle_variance": -0.1}`},
		"bad colour":        {"sim.json", `{"wall_color": "black"}`},
		"inverted band":     {"sim.json", `{"collision_band_min": 30, "collision_band_max": 20}`},
		"bad tick":          {"sim.json", `{"tick_interval": "soon"}`},
		"zero attempts":     {"sim.json", `{"spawn_max_attempts": 0}`},
		"zero step":         {"sim.json", `{"movement_step": 0}`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSimConfig(writeConfig(t, tc.name, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadSimConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadSimConfig_TooLarge(t *testing.T) {
	body := `{"ray_count": 60, "pad": "` + strings.Repeat("x", 1<<20) + `"}`
	_, err := LoadSimConfig(writeConfig(t, "big.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 60, cfg.GetRayCount())
	assert.Equal(t, 10.0, cfg.GetCollisionBandMin())
	assert.Equal(t, 23.0, cfg.GetCollisionBandMax())
	assert.Equal(t, 10.0, cfg.GetSpawnClearance())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 128, B: 0, A: 255}, c)

	c, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 255}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#12345678"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
