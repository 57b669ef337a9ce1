package ml

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	mlmath "github.com/drakos74/ml-notes/internal/math"
	"github.com/drakos74/ml-notes/internal/model"
)

const (
	weightsName = "weights_%d"
	biasName    = "bias_%d"
)

// Dense is a fully connected layer computing x·W + b.
// The weights and the bias live in the graph as variables, so that they can be checkpointed.
type Dense struct {
	weights *model.Variable
	bias    *model.Variable
	input   xmath.Matrix
}

// NewDense creates the variables for a dense layer with the given index.
func NewDense(g *model.Graph, index, in, out int, initW, initB xmath.VectorGenerator) (*Dense, error) {
	w, err := g.NewVariable([]int{in, out}, initW, model.WithName(fmt.Sprintf(weightsName, index)))
	if err != nil {
		return nil, fmt.Errorf("could not create weights for layer %d: %w", index, err)
	}
	b, err := g.NewVariable([]int{out}, initB, model.WithName(fmt.Sprintf(biasName, index)))
	if err != nil {
		return nil, fmt.Errorf("could not create bias for layer %d: %w", index, err)
	}
	return &Dense{
		weights: w,
		bias:    b,
	}, nil
}

// Weights returns the weights variable.
func (d *Dense) Weights() *model.Variable {
	return d.weights
}

// Bias returns the bias variable.
func (d *Dense) Bias() *model.Variable {
	return d.bias
}

// Forward computes the layer output for a batch of inputs.
func (d *Dense) Forward(x xmath.Matrix) (xmath.Matrix, error) {
	w, err := d.weights.Matrix()
	if err != nil {
		return nil, err
	}
	b, err := d.bias.Vector()
	if err != nil {
		return nil, err
	}
	y, err := mlmath.MatMul(x, w)
	if err != nil {
		return nil, fmt.Errorf("could not apply '%s': %w", d.weights.Name(), err)
	}
	d.input = x
	return mlmath.AddRow(y, b), nil
}

// Backward applies gradient descent on the layer variables
// and returns the gradient with respect to the layer input.
func (d *Dense) Backward(grad xmath.Matrix, rate *xml.Learning, clip float64) (xmath.Matrix, error) {
	if d.input == nil {
		return nil, fmt.Errorf("backward pass for '%s' without a forward pass", d.weights.Name())
	}
	w, err := d.weights.Matrix()
	if err != nil {
		return nil, err
	}
	b, err := d.bias.Vector()
	if err != nil {
		return nil, err
	}

	dw, err := mlmath.MatMul(d.input.T(), grad)
	if err != nil {
		return nil, fmt.Errorf("could not compute gradient for '%s': %w", d.weights.Name(), err)
	}
	db := columnSum(grad)
	dx, err := mlmath.MatMul(grad, w.T())
	if err != nil {
		return nil, fmt.Errorf("could not propagate gradient through '%s': %w", d.weights.Name(), err)
	}

	ClipMatByNorm(dw, clip)
	ClipVecByNorm(db, clip)

	err = d.weights.AssignMatrix(w.Add(dw.Mult(-1 * rate.WRate())))
	if err != nil {
		return nil, err
	}
	err = d.bias.Assign(b.Add(db.Mult(-1 * rate.BRate())))
	if err != nil {
		return nil, err
	}
	return dx, nil
}
