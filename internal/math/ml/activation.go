package ml

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
)

// ReLU is the rectified linear unit activation.
// The derivative is expressed on the output of the activation, as for the rest of the xml activations.
// xml.ReLU is not used, as its derivative always returns 1.
var ReLU xml.Activation = relu{}

type relu struct {
}

// F applies the activation function.
func (r relu) F(x float64) float64 {
	return math.Max(0, x)
}

// D returns the derivative of the activation function.
func (r relu) D(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

// Activate applies the activation to every element of the matrix.
func Activate(m xmath.Matrix, activation xml.Activation) xmath.Matrix {
	return m.Op(activation.F)
}

// Derive returns the derivative of the activation for every element of the activated output.
func Derive(m xmath.Matrix, activation xml.Activation) xmath.Matrix {
	return m.Op(activation.D)
}
