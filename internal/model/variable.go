package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/drakos74/go-ex-machina/xmath"
	mlmath "github.com/drakos74/ml-notes/internal/math"
)

var (
	// ErrUninitialized is returned when reading a variable that was never initialized or restored.
	ErrUninitialized = errors.New("uninitialized variable")
	// ErrShapeMismatch is returned when the values given do not fit the variable shape.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrUnknownVariable is returned when a variable does not belong to the graph.
	ErrUnknownVariable = errors.New("unknown variable")
)

// Variable is a named tensor of float values that keeps its state across session runs.
type Variable struct {
	mutex       *sync.RWMutex
	name        string
	shape       []int
	init        xmath.VectorGenerator
	values      xmath.Vector
	initialized bool
}

func newVariable(name string, shape []int, init xmath.VectorGenerator) *Variable {
	s := make([]int, len(shape))
	copy(s, shape)
	return &Variable{
		mutex: new(sync.RWMutex),
		name:  name,
		shape: s,
		init:  init,
	}
}

// Name returns the unique name of the variable within its graph.
func (v *Variable) Name() string {
	return v.name
}

// Shape returns a copy of the variable dimensions.
func (v *Variable) Shape() []int {
	s := make([]int, len(v.shape))
	copy(s, v.shape)
	return s
}

// Size returns the number of elements of the variable.
func (v *Variable) Size() int {
	return mlmath.Size(v.shape)
}

func (v *Variable) String() string {
	return fmt.Sprintf("%s%s", v.name, mlmath.FormatShape(v.shape))
}

// Initialized reports if the variable carries a value.
func (v *Variable) Initialized() bool {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return v.initialized
}

// Initialize draws new values from the initializer of the variable.
func (v *Variable) Initialize() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	values := v.init(v.Size(), 0)
	xmath.MustHaveSize(values, v.Size())
	v.values = values
	v.initialized = true
}

// Values returns a copy of the flattened values in row-major order.
func (v *Variable) Values() (xmath.Vector, error) {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	if !v.initialized {
		return nil, fmt.Errorf("attempting to use '%s': %w", v.name, ErrUninitialized)
	}
	return v.values.Copy(), nil
}

// Assign replaces the values of the variable and marks it as initialized.
func (v *Variable) Assign(values []float64) error {
	if len(values) != v.Size() {
		return fmt.Errorf("cannot assign %d values to '%s' of shape %s: %w",
			len(values), v.name, mlmath.FormatShape(v.shape), ErrShapeMismatch)
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.values = xmath.Vec(len(values)).With(values...)
	v.initialized = true
	return nil
}

// Matrix returns a copy of a 2-dimensional variable as rows.
func (v *Variable) Matrix() (xmath.Matrix, error) {
	if len(v.shape) != 2 {
		return nil, fmt.Errorf("'%s' of shape %s is not a matrix: %w", v.name, mlmath.FormatShape(v.shape), ErrShapeMismatch)
	}
	values, err := v.Values()
	if err != nil {
		return nil, err
	}
	rows, cols := v.shape[0], v.shape[1]
	m := xmath.Mat(rows)
	for i := 0; i < rows; i++ {
		m[i] = values[i*cols : (i+1)*cols]
	}
	return m, nil
}

// AssignMatrix replaces the values of a 2-dimensional variable with the given rows.
func (v *Variable) AssignMatrix(m xmath.Matrix) error {
	if len(v.shape) != 2 || len(m) != v.shape[0] {
		return fmt.Errorf("cannot assign %d rows to '%s' of shape %s: %w",
			len(m), v.name, mlmath.FormatShape(v.shape), ErrShapeMismatch)
	}
	values := make([]float64, 0, v.Size())
	for _, row := range m {
		if len(row) != v.shape[1] {
			return fmt.Errorf("cannot assign row of %d to '%s' of shape %s: %w",
				len(row), v.name, mlmath.FormatShape(v.shape), ErrShapeMismatch)
		}
		values = append(values, row...)
	}
	return v.Assign(values)
}

// Vector returns a copy of a 1-dimensional variable.
func (v *Variable) Vector() (xmath.Vector, error) {
	if len(v.shape) != 1 {
		return nil, fmt.Errorf("'%s' of shape %s is not a vector: %w", v.name, mlmath.FormatShape(v.shape), ErrShapeMismatch)
	}
	return v.Values()
}
