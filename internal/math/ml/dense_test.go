package ml

import (
	"testing"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	"github.com/drakos74/ml-notes/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense_Forward(t *testing.T) {
	g := model.NewGraph()
	d, err := NewDense(g, 0, 2, 3, xmath.Const(0), xmath.Const(0))
	require.NoError(t, err)

	assert.Equal(t, "weights_0", d.Weights().Name())
	assert.Equal(t, "bias_0", d.Bias().Name())

	_, err = d.Forward(xmath.Mat(1).With(xmath.Vector{1, 1}))
	assert.ErrorIs(t, err, model.ErrUninitialized)

	require.NoError(t, d.Weights().Assign([]float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, d.Bias().Assign([]float64{0.5, 0, -0.5}))

	y, err := d.Forward(xmath.Mat(2).With(xmath.Vector{1, 0}, xmath.Vector{1, 1}))
	require.NoError(t, err)
	assert.Equal(t, xmath.Vector{1.5, 2, 2.5}, y[0])
	assert.Equal(t, xmath.Vector{5.5, 7, 8.5}, y[1])

	_, err = d.Forward(xmath.Mat(1).With(xmath.Vector{1, 1, 1}))
	assert.Error(t, err)
}

func TestDense_Backward(t *testing.T) {
	g := model.NewGraph()
	d, err := NewDense(g, 0, 2, 1, xmath.Const(0), xmath.Const(0))
	require.NoError(t, err)
	g.InitializeAll()

	_, err = d.Backward(xmath.Mat(1).With(xmath.Vector{1}), xml.Rate(0.1), 0)
	assert.Error(t, err)

	x := xmath.Mat(2).With(xmath.Vector{1, 2}, xmath.Vector{3, 4})
	_, err = d.Forward(x)
	require.NoError(t, err)

	grad := xmath.Mat(2).With(xmath.Vector{1}, xmath.Vector{-1})
	dx, err := d.Backward(grad, xml.Rate(0.5), 0)
	require.NoError(t, err)

	// weights were zero, so nothing propagates back
	assert.Equal(t, xmath.Vector{0, 0}, dx[0])

	// dw = x^T . grad = [1-3, 2-4], db = 1-1
	w, err := d.Weights().Values()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, w, 1e-9)
	b, err := d.Bias().Values()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0}, b, 1e-9)
}

func TestDense_Duplicate(t *testing.T) {
	g := model.NewGraph()
	_, err := NewDense(g, 0, 2, 3, xmath.Const(0), xmath.Const(0))
	require.NoError(t, err)
	d, err := NewDense(g, 0, 2, 3, xmath.Const(0), xmath.Const(0))
	require.NoError(t, err)
	assert.Equal(t, "weights_0_1", d.Weights().Name())
}
