package ml

import (
	"math"
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmaxCrossEntropy(t *testing.T) {

	type test struct {
		logits xmath.Matrix
		labels xmath.Matrix
		loss   float64
		err    bool
	}

	tests := map[string]test{
		"uniform": {
			logits: xmath.Mat(1).With(xmath.Vector{0, 0, 0}),
			labels: xmath.Mat(1).With(xmath.Vector{0, 1, 0}),
			loss:   math.Log(3),
		},
		"confident": {
			logits: xmath.Mat(1).With(xmath.Vector{20, 0}),
			labels: xmath.Mat(1).With(xmath.Vector{1, 0}),
			loss:   0,
		},
		"batch": {
			logits: xmath.Mat(2).With(xmath.Vector{0, 0}, xmath.Vector{20, 0}),
			labels: xmath.Mat(2).With(xmath.Vector{1, 0}, xmath.Vector{1, 0}),
			loss:   math.Log(2) / 2,
		},
		"batch-mismatch": {
			logits: xmath.Mat(2).With(xmath.Vector{0, 0}, xmath.Vector{20, 0}),
			labels: xmath.Mat(1).With(xmath.Vector{1, 0}),
			err:    true,
		},
		"class-mismatch": {
			logits: xmath.Mat(1).With(xmath.Vector{0, 0}),
			labels: xmath.Mat(1).With(xmath.Vector{1, 0, 0}),
			err:    true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			loss, grad, err := SoftmaxCrossEntropy(tt.logits, tt.labels)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.loss, loss, 1e-6)
			require.Equal(t, len(tt.logits), len(grad))
			for _, g := range grad {
				// softmax gradients sum up to zero per sample
				assert.InDelta(t, 0, g.Sum(), 1e-9)
			}
		})
	}

}

func TestSoftmax(t *testing.T) {
	p := Softmax(xmath.Mat(2).With(xmath.Vector{1, 1}, xmath.Vector{-1, 3}))
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, p[0], 1e-9)
	assert.InDelta(t, 1, p[1].Sum(), 1e-9)
	assert.Equal(t, 1, ArgMax(p[1]))
	assert.Equal(t, 0, ArgMax(xmath.Vector{2, 1, 2}))
}
