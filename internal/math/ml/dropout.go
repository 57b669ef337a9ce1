package ml

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
)

// ErrInvalidKeepProb is returned for keep probabilities outside of (0, 1].
var ErrInvalidKeepProb = errors.New("keep probability must be in range (0, 1]")

// Dropout zeroes each unit with probability 1 - keepProb,
// and scales the kept units by 1 / keepProb so that the expected sum stays the same.
// A keep probability of 1 turns dropout into the identity, which is what evaluation should use.
type Dropout struct {
	keepProb float64
	rnd      *rand.Rand
	mask     xmath.Matrix
}

// NewDropout creates a new dropout operator.
func NewDropout(keepProb float64, rnd *rand.Rand) (*Dropout, error) {
	if rnd == nil {
		return nil, fmt.Errorf("dropout needs a random source")
	}
	d := &Dropout{rnd: rnd}
	if err := d.SetKeepProb(keepProb); err != nil {
		return nil, err
	}
	return d, nil
}

// SetKeepProb adjusts the probability to keep units,
// usually 0.5 while training and 1 while testing.
func (d *Dropout) SetKeepProb(keepProb float64) error {
	if keepProb <= 0 || keepProb > 1 {
		return fmt.Errorf("could not set keep probability to %v: %w", keepProb, ErrInvalidKeepProb)
	}
	d.keepProb = keepProb
	return nil
}

// KeepProb returns the current keep probability.
func (d *Dropout) KeepProb() float64 {
	return d.keepProb
}

// Forward applies a new random mask to the input.
func (d *Dropout) Forward(x xmath.Matrix) xmath.Matrix {
	if d.keepProb == 1 {
		d.mask = nil
		return x.Copy()
	}
	scale := 1 / d.keepProb
	d.mask = xmath.Mat(len(x))
	y := xmath.Mat(len(x))
	for i := range x {
		d.mask[i] = xmath.Vec(len(x[i]))
		for j := range x[i] {
			if d.rnd.Float64() < d.keepProb {
				d.mask[i][j] = scale
			}
		}
		y[i] = x[i].X(d.mask[i])
	}
	return y
}

// Backward routes the gradient through the units kept in the last forward pass.
func (d *Dropout) Backward(grad xmath.Matrix) xmath.Matrix {
	if d.mask == nil {
		return grad.Copy()
	}
	xmath.MustHaveDim(grad, len(d.mask))
	g := xmath.Mat(len(grad))
	for i := range grad {
		g[i] = grad[i].X(d.mask[i])
	}
	return g
}
