package ml

import (
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
)

// ClipMatByNorm clips gradients based on their global L2 norm.
// A non-positive max norm leaves the gradients untouched.
func ClipMatByNorm(gradients xmath.Matrix, maxNorm float64) {
	if maxNorm <= 0 {
		return
	}
	totalNorm := 0.0
	for _, grad := range gradients {
		for _, val := range grad {
			totalNorm += val * val
		}
	}
	totalNorm = math.Sqrt(totalNorm)

	if totalNorm > maxNorm {
		scale := maxNorm / totalNorm
		for _, grad := range gradients {
			for i := range grad {
				grad[i] *= scale
			}
		}
	}
}

// ClipVecByNorm clips gradients based on their L2 norm.
func ClipVecByNorm(gradients xmath.Vector, maxNorm float64) {
	if maxNorm <= 0 {
		return
	}
	totalNorm := gradients.Norm()
	if totalNorm > maxNorm {
		scale := maxNorm / totalNorm
		for i := range gradients {
			gradients[i] *= scale
		}
	}
}

// columnSum sums the rows of the matrix into a single vector.
func columnSum(m xmath.Matrix) xmath.Vector {
	v := xmath.Vec(len(m[0]))
	for _, row := range m {
		v = v.Add(row)
	}
	return v
}
