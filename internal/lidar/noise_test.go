package lidar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestNoiseModel_ZeroIsIdentity(t *testing.T) {
	nm := newNoiseModel(Noise{}, newSource(1))
	d, a := nm.apply(12.5, 1.25)
	assert.Equal(t, 12.5, d)
	assert.Equal(t, 1.25, a)
}

func TestNoiseModel_JointMoments(t *testing.T) {
	nm := newNoiseModel(Noise{DistanceVariance: 4, AngleVariance: 0.01}, newSource(99))
	if nm.joint == nil {
		t.Fatal("expected positive-definite covariance to use the joint normal")
	}

	const n = 20000
	ds := make([]float64, n)
	as := make([]float64, n)
	for i := 0; i < n; i++ {
		ds[i], as[i] = nm.apply(50, 2)
	}

	assert.InDelta(t, 50, stat.Mean(ds, nil), 0.1)
	assert.InDelta(t, 4, stat.Variance(ds, nil), 0.2)
	assert.InDelta(t, 2, stat.Mean(as, nil), 0.01)
	assert.InDelta(t, 0.01, stat.Variance(as, nil), 0.001)
	assert.InDelta(t, 0, stat.Correlation(ds, as, nil), 0.05)
}

func TestNoiseModel_SingularCovarianceFallsBackPerAxis(t *testing.T) {
	nm := newNoiseModel(Noise{DistanceVariance: 4}, newSource(5))
	assert.Nil(t, nm.joint)

	moved := false
	for i := 0; i < 100; i++ {
		d, a := nm.apply(30, 1.5)
		assert.Equal(t, 1.5, a, "zero angle variance must leave the angle unchanged")
		if d != 30 {
			moved = true
		}
	}
	assert.True(t, moved, "distance should be perturbed")
}

func TestNoiseModel_ClampsToZero(t *testing.T) {
	nm := newNoiseModel(Noise{DistanceVariance: 100, AngleVariance: 100}, newSource(11))
	for i := 0; i < 1000; i++ {
		d, a := nm.apply(0, 0)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.GreaterOrEqual(t, a, 0.0)
	}
}
