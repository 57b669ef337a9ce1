package math

import (
	"math/rand"
	"time"

	"github.com/drakos74/go-ex-machina/xmath"
)

// truncation is the amount of standard deviations after which a sample is re-drawn.
const truncation = 2.0

// NewRand creates a new random source. A zero seed picks the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// TruncatedNormal generates vectors from a normal distribution,
// where values further than two standard deviations from the mean are dropped and re-picked.
func TruncatedNormal(mean, stddev float64, rnd *rand.Rand) xmath.VectorGenerator {
	if rnd == nil {
		rnd = NewRand(0)
	}
	return func(s, index int) xmath.Vector {
		v := xmath.Vec(s)
		for i := range v {
			for {
				x := rnd.NormFloat64()
				if x >= -truncation && x <= truncation {
					v[i] = mean + x*stddev
					break
				}
			}
		}
		return v
	}
}

// Zeros generates vectors with all elements set to zero.
func Zeros() xmath.VectorGenerator {
	return xmath.Const(0)
}
