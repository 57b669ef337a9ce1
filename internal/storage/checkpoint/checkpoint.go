package checkpoint

import (
	"fmt"
	"sort"
	"time"

	"github.com/drakos74/ml-notes/internal/storage"
)

const version = 1

// Tensor is the stored value of a single variable.
type Tensor struct {
	Name   string    `json:"name"`
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

// Checkpoint is the stored state of a set of variables.
type Checkpoint struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Created   time.Time `json:"created"`
	Step      *int64    `json:"step,omitempty"`
	Variables []Tensor  `json:"variables"`
}

// Names returns the sorted variable names stored in the checkpoint.
func (c Checkpoint) Names() []string {
	names := make([]string, len(c.Variables))
	for i, v := range c.Variables {
		names[i] = v.Name
	}
	sort.Strings(names)
	return names
}

func (c Checkpoint) index() map[string]Tensor {
	idx := make(map[string]Tensor, len(c.Variables))
	for _, v := range c.Variables {
		idx[v.Name] = v
	}
	return idx
}

// Read loads the checkpoint stored under the given path prefix.
func Read(p storage.Persistence, path string) (Checkpoint, error) {
	var c Checkpoint
	err := p.Load(storage.NewKey(path), &c)
	if err != nil {
		return c, fmt.Errorf("could not read checkpoint '%s': %w", path, err)
	}
	if c.Version != version {
		return c, fmt.Errorf("unsupported checkpoint version %d for '%s': %w", c.Version, path, storage.CouldNotLoadErr)
	}
	return c, nil
}
