package lidar

import (
	"fmt"
)

// DefaultSamplesPerRay is the step resolution used when a ScanConfig leaves
// SamplesPerRay unset.
const DefaultSamplesPerRay = 100

// Noise holds the measurement variances applied to every hit.
type Noise struct {
	DistanceVariance float64 `json:"distance_variance"`
	AngleVariance    float64 `json:"angle_variance"`
}

// IsZero reports whether the sensor is noise free.
func (n Noise) IsZero() bool { return n.DistanceVariance == 0 && n.AngleVariance == 0 }

// ScanConfig fixes the shape of every scan a sensor performs. It is copied
// into the sensor at construction and never changes afterwards.
type ScanConfig struct {
	RayCount      int     `json:"ray_count"`
	MaxRange      float64 `json:"max_range"`
	SamplesPerRay int     `json:"samples_per_ray"`
	Noise         Noise   `json:"noise"`

	// Seed for the noise source. Zero seeds from the wall clock.
	Seed uint64 `json:"seed,omitempty"`
}

// Validate checks that the configuration can drive a scan.
func (c ScanConfig) Validate() error {
	if c.RayCount <= 0 {
		return fmt.Errorf("ray_count must be positive, got %d", c.RayCount)
	}
	if c.SamplesPerRay <= 0 {
		return fmt.Errorf("samples_per_ray must be positive, got %d", c.SamplesPerRay)
	}
	if !(c.MaxRange > 0) {
		return fmt.Errorf("max_range must be positive, got %f", c.MaxRange)
	}
	if c.Noise.DistanceVariance < 0 || c.Noise.AngleVariance < 0 {
		return fmt.Errorf("noise variances must be non-negative, got (%f, %f)",
			c.Noise.DistanceVariance, c.Noise.AngleVariance)
	}
	return nil
}

// withDefaults fills SamplesPerRay when left at zero.
func (c ScanConfig) withDefaults() ScanConfig {
	if c.SamplesPerRay == 0 {
		c.SamplesPerRay = DefaultSamplesPerRay
	}
	return c
}
