package ml

import (
	"fmt"
	"math"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
)

const epsilon = 1e-12

// SoftmaxCrossEntropy returns the mean cross entropy of the softmax of the logits against the one-hot labels,
// together with the gradient of the mean loss with respect to the logits.
func SoftmaxCrossEntropy(logits, labels xmath.Matrix) (float64, xmath.Matrix, error) {
	if len(logits) != len(labels) {
		return 0, nil, fmt.Errorf("batch size mismatch between logits %d and labels %d", len(logits), len(labels))
	}
	if len(logits) == 0 {
		return 0, nil, fmt.Errorf("empty batch")
	}
	n := float64(len(logits))
	softmax := xml.SoftMax{}
	grad := xmath.Mat(len(logits))
	var loss float64
	for i := range logits {
		if len(logits[i]) != len(labels[i]) {
			return 0, nil, fmt.Errorf("class mismatch at %d between logits %d and labels %d", i, len(logits[i]), len(labels[i]))
		}
		p := softmax.F(logits[i])
		for j := range p {
			if labels[i][j] != 0 {
				loss -= labels[i][j] * math.Log(p[j]+epsilon)
			}
		}
		grad[i] = p.Diff(labels[i]).Mult(1 / n)
	}
	return loss / n, grad, nil
}

// Softmax turns every row of the logits into probabilities.
func Softmax(logits xmath.Matrix) xmath.Matrix {
	softmax := xml.SoftMax{}
	p := xmath.Mat(len(logits))
	for i := range logits {
		p[i] = softmax.F(logits[i])
	}
	return p
}

// ArgMax returns the index of the largest element.
func ArgMax(v xmath.Vector) int {
	idx := 0
	for i := range v {
		if v[i] > v[idx] {
			idx = i
		}
	}
	return idx
}
