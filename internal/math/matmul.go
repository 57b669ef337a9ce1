package math

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	"gonum.org/v1/gonum/mat"
)

// MatMul multiplies the given matrices a(n x k) and b(k x m) into a new (n x m) matrix.
func MatMul(a, b xmath.Matrix) (xmath.Matrix, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("cannot multiply empty matrices: %d x %d", len(a), len(b))
	}
	if len(a[0]) != len(b) {
		return nil, fmt.Errorf("inner dimensions do not match: [%d %d] x [%d %d]", len(a), len(a[0]), len(b), len(b[0]))
	}

	x := dense(a)
	y := dense(b)

	var c mat.Dense
	c.Mul(x, y)

	return matrix(&c), nil
}

// AddRow adds the given vector to every row of the matrix.
func AddRow(m xmath.Matrix, v xmath.Vector) xmath.Matrix {
	n := xmath.Mat(len(m))
	for i := range m {
		n[i] = m[i].Add(v)
	}
	return n
}

func dense(m xmath.Matrix) *mat.Dense {
	rows := len(m)
	cols := len(m[0])
	d := mat.NewDense(rows, cols, nil)
	for i := range m {
		xmath.MustHaveSize(m[i], cols)
		d.SetRow(i, m[i])
	}
	return d
}

func matrix(d *mat.Dense) xmath.Matrix {
	rows, cols := d.Dims()
	m := xmath.Mat(rows).Of(cols)
	for i := 0; i < rows; i++ {
		mat.Row(m[i], i, d)
	}
	return m
}
