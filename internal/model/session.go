package model

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
)

// Session evaluates variables of a graph.
type Session struct {
	graph *Graph
}

// NewSession creates a new session for the given graph.
func NewSession(g *Graph) *Session {
	return &Session{graph: g}
}

// Graph returns the graph the session runs on.
func (s *Session) Graph() *Graph {
	return s.graph
}

// Init initializes all variables of the graph.
func (s *Session) Init() {
	s.graph.InitializeAll()
}

// Run returns the current values of the given variables.
func (s *Session) Run(vars ...*Variable) ([]xmath.Vector, error) {
	values := make([]xmath.Vector, len(vars))
	for i, v := range vars {
		if !s.graph.Contains(v) {
			return nil, fmt.Errorf("'%v' is not an element of this graph: %w", v, ErrUnknownVariable)
		}
		vv, err := v.Values()
		if err != nil {
			return nil, err
		}
		values[i] = vv
	}
	return values, nil
}
