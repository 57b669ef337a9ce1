package model

import (
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariable_Assign(t *testing.T) {

	type test struct {
		values []float64
		err    error
	}

	tests := map[string]test{
		"exact": {
			values: []float64{1, 2, 3, 4, 5, 6},
		},
		"too-few": {
			values: []float64{1, 2, 3},
			err:    ErrShapeMismatch,
		},
		"too-many": {
			values: []float64{1, 2, 3, 4, 5, 6, 7},
			err:    ErrShapeMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v := NewGraph().MustVariable([]int{2, 3}, xmath.Const(0))
			err := v.Assign(tt.values)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.False(t, v.Initialized())
				return
			}
			require.NoError(t, err)
			assert.True(t, v.Initialized())
			values, err := v.Values()
			require.NoError(t, err)
			assert.Equal(t, xmath.Vector(tt.values), values)
		})
	}

}

func TestVariable_Views(t *testing.T) {
	g := NewGraph()
	w := g.MustVariable([]int{2, 3}, xmath.Const(0))
	b := g.MustVariable([]int{3}, xmath.Const(0))

	require.NoError(t, w.Assign([]float64{1, 2, 3, 4, 5, 6}))
	m, err := w.Matrix()
	require.NoError(t, err)
	assert.Equal(t, xmath.Vector{1, 2, 3}, m[0])
	assert.Equal(t, xmath.Vector{4, 5, 6}, m[1])

	_, err = w.Vector()
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = b.Matrix()
	assert.ErrorIs(t, err, ErrShapeMismatch)

	// mutating the view leaves the variable intact
	m[0][0] = 100
	values, err := w.Values()
	require.NoError(t, err)
	assert.Equal(t, 1.0, values[0])

	err = w.AssignMatrix(xmath.Mat(2).With(xmath.Vector{6, 5, 4}, xmath.Vector{3, 2, 1}))
	require.NoError(t, err)
	values, err = w.Values()
	require.NoError(t, err)
	assert.Equal(t, xmath.Vector{6, 5, 4, 3, 2, 1}, values)

	err = w.AssignMatrix(xmath.Mat(2).With(xmath.Vector{6, 5}, xmath.Vector{3, 2}))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = b.Vector()
	assert.ErrorIs(t, err, ErrUninitialized)
}

func TestVariable_Initialize(t *testing.T) {
	v := NewGraph().MustVariable([]int{2, 2}, xmath.Const(3))
	assert.Equal(t, 4, v.Size())
	assert.Equal(t, []int{2, 2}, v.Shape())
	assert.Equal(t, "Variable[2 2]", v.String())

	_, err := v.Values()
	assert.ErrorIs(t, err, ErrUninitialized)

	v.Initialize()
	values, err := v.Values()
	require.NoError(t, err)
	assert.Equal(t, xmath.Vector{3, 3, 3, 3}, values)

	// the shape returned is a copy
	s := v.Shape()
	s[0] = 10
	assert.Equal(t, []int{2, 2}, v.Shape())
}
