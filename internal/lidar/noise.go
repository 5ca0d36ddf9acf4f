package lidar

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// noiseModel perturbs (distance, angle) readings with zero-mean Gaussian
// error drawn from a bivariate normal with diagonal covariance.
type noiseModel struct {
	off bool

	// joint is set when the covariance is positive definite.
	joint *distmv.Normal
	buf   []float64

	// per-axis fallback for a singular (partly zero) covariance
	distance distuv.Normal
	angle    distuv.Normal
}

func newSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

func newNoiseModel(n Noise, src rand.Source) *noiseModel {
	if n.IsZero() {
		return &noiseModel{off: true}
	}

	nm := &noiseModel{}
	if n.DistanceVariance > 0 && n.AngleVariance > 0 {
		cov := mat.NewSymDense(2, []float64{
			n.DistanceVariance, 0,
			0, n.AngleVariance,
		})
		if joint, ok := distmv.NewNormal([]float64{0, 0}, cov, src); ok {
			nm.joint = joint
			nm.buf = make([]float64, 2)
			return nm
		}
	}

	nm.distance = distuv.Normal{Mu: 0, Sigma: math.Sqrt(n.DistanceVariance), Src: src}
	nm.angle = distuv.Normal{Mu: 0, Sigma: math.Sqrt(n.AngleVariance), Src: src}
	return nm
}

// apply returns a noisy reading centred on (distance, angle). Both values are
// clamped to be non-negative.
func (nm *noiseModel) apply(distance, angle float64) (float64, float64) {
	if nm.off {
		return distance, angle
	}

	var dd, da float64
	if nm.joint != nil {
		nm.joint.Rand(nm.buf)
		dd, da = nm.buf[0], nm.buf[1]
	} else {
		dd, da = nm.distance.Rand(), nm.angle.Rand()
	}

	return math.Max(distance+dd, 0), math.Max(angle+da, 0)
}
