package model

import (
	"fmt"
	"sync"

	"github.com/drakos74/go-ex-machina/xmath"
	mlmath "github.com/drakos74/ml-notes/internal/math"
	"github.com/rs/zerolog/log"
)

// DefaultName is the base name given to variables created without an explicit name.
const DefaultName = "Variable"

type variableConfig struct {
	name string
}

// VariableOption configures a new variable.
type VariableOption func(cfg *variableConfig)

// WithName sets the name of the variable.
// If the name is already taken in the graph, a numbered suffix is added to it.
func WithName(name string) VariableOption {
	return func(cfg *variableConfig) {
		cfg.name = name
	}
}

// Graph holds the variables of a model in creation order.
type Graph struct {
	mutex     *sync.RWMutex
	variables []*Variable
	index     map[string]*Variable
	counts    map[string]int
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		mutex:     new(sync.RWMutex),
		variables: make([]*Variable, 0),
		index:     make(map[string]*Variable),
		counts:    make(map[string]int),
	}
}

var defaultGraph = NewGraph()

// Default returns the process wide default graph.
func Default() *Graph {
	return defaultGraph
}

// NewVariable adds a new variable of the given shape to the graph.
// The initializer is only invoked when the variable gets initialized.
func (g *Graph) NewVariable(shape []int, init xmath.VectorGenerator, opts ...VariableOption) (*Variable, error) {
	if err := mlmath.ValidShape(shape); err != nil {
		return nil, fmt.Errorf("could not create variable: %w", err)
	}
	if init == nil {
		return nil, fmt.Errorf("could not create variable of shape %s: no initializer", mlmath.FormatShape(shape))
	}

	cfg := &variableConfig{name: DefaultName}
	for _, opt := range opts {
		opt(cfg)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	name := g.uniqueName(cfg.name)
	v := newVariable(name, shape, init)
	g.variables = append(g.variables, v)
	g.index[name] = v

	log.Debug().
		Str("name", name).
		Str("shape", mlmath.FormatShape(shape)).
		Msg("created variable")

	return v, nil
}

// MustVariable creates a new variable and panics if the shape or initializer are invalid.
func (g *Graph) MustVariable(shape []int, init xmath.VectorGenerator, opts ...VariableOption) *Variable {
	v, err := g.NewVariable(shape, init, opts...)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// uniqueName follows the Variable, Variable_1, Variable_2 ... naming sequence.
func (g *Graph) uniqueName(base string) string {
	i := g.counts[base]
	name := base
	if i > 0 {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	for {
		if _, ok := g.index[name]; !ok {
			break
		}
		i++
		name = fmt.Sprintf("%s_%d", base, i)
	}
	g.counts[base] = i + 1
	return name
}

// Variables returns all the variables of the graph in creation order.
func (g *Graph) Variables() []*Variable {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	vv := make([]*Variable, len(g.variables))
	copy(vv, g.variables)
	return vv
}

// Variable looks up a variable by name.
func (g *Graph) Variable(name string) (*Variable, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if v, ok := g.index[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no variable named '%s' in graph: %w", name, ErrUnknownVariable)
}

// Contains checks if the given variable is part of the graph.
func (g *Graph) Contains(v *Variable) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if v == nil {
		return false
	}
	w, ok := g.index[v.name]
	return ok && w == v
}

// InitializeAll assigns initial values to all variables of the graph,
// including the ones that already carry a value.
func (g *Graph) InitializeAll() {
	for _, v := range g.Variables() {
		v.Initialize()
	}
}

// Reset removes all variables from the graph and restarts the naming sequence.
func (g *Graph) Reset() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.variables = make([]*Variable, 0)
	g.index = make(map[string]*Variable)
	g.counts = make(map[string]int)
}
