package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	mlmath "github.com/drakos74/ml-notes/internal/math"
	"github.com/drakos74/ml-notes/internal/metrics"
	"github.com/drakos74/ml-notes/internal/model"
	"github.com/drakos74/ml-notes/internal/storage"
	"github.com/drakos74/ml-notes/internal/storage/file/json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultMaxToKeep is the number of recent checkpoints kept by default.
const DefaultMaxToKeep = 5

var (
	// ErrNoVariables is returned when creating a saver with nothing to save.
	ErrNoVariables = errors.New("no variables to save")
	// ErrNotFoundInCheckpoint is returned when a variable name is missing from the checkpoint.
	ErrNotFoundInCheckpoint = fmt.Errorf("key not found in checkpoint: %w", storage.NotFoundErr)
	// ErrShapeMismatch is returned when the stored shape differs from the variable shape.
	ErrShapeMismatch = model.ErrShapeMismatch
)

// Option configures a saver.
type Option func(s *Saver)

// WithVariables limits the saver to the given variables.
func WithVariables(vars ...*model.Variable) Option {
	return func(s *Saver) {
		s.vars = vars
	}
}

// WithMaxToKeep sets how many recent checkpoints are retained. Zero keeps all of them.
func WithMaxToKeep(n int) Option {
	return func(s *Saver) {
		s.maxToKeep = n
	}
}

// WithPersistence sets the storage of the checkpoints.
func WithPersistence(p storage.Persistence) Option {
	return func(s *Saver) {
		s.store = p
	}
}

// Saver saves and restores variables by name.
// The variables are captured when the saver is created,
// so variables added to the graph afterwards are not part of it.
type Saver struct {
	mutex     *sync.Mutex
	graph     *model.Graph
	vars      []*model.Variable
	maxToKeep int
	store     storage.Persistence
}

// NewSaver creates a saver for the variables of the graph.
func NewSaver(g *model.Graph, opts ...Option) (*Saver, error) {
	s := &Saver{
		mutex:     new(sync.Mutex),
		graph:     g,
		maxToKeep: DefaultMaxToKeep,
		store:     json.NewJsonBlob("", false),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.vars == nil {
		s.vars = g.Variables()
	}
	if len(s.vars) == 0 {
		return nil, ErrNoVariables
	}
	if s.maxToKeep < 0 {
		return nil, fmt.Errorf("invalid max to keep %d", s.maxToKeep)
	}

	names := make(map[string]struct{}, len(s.vars))
	for _, v := range s.vars {
		if !g.Contains(v) {
			return nil, fmt.Errorf("'%v' is not an element of the graph: %w", v, model.ErrUnknownVariable)
		}
		if _, ok := names[v.Name()]; ok {
			return nil, fmt.Errorf("duplicate variable name '%s'", v.Name())
		}
		names[v.Name()] = struct{}{}
	}
	return s, nil
}

// Variables returns the variables handled by the saver.
func (s *Saver) Variables() []*model.Variable {
	vv := make([]*model.Variable, len(s.vars))
	copy(vv, s.vars)
	return vv
}

// Save stores the current values of the variables under the given path prefix.
func (s *Saver) Save(ctx context.Context, sess *model.Session, path string) (string, error) {
	return s.save(ctx, sess, path, nil)
}

// SaveStep stores the current values of the variables under the path prefix suffixed with the step.
func (s *Saver) SaveStep(ctx context.Context, sess *model.Session, path string, step int64) (string, error) {
	return s.save(ctx, sess, fmt.Sprintf("%s-%d", path, step), &step)
}

func (s *Saver) save(ctx context.Context, sess *model.Session, path string, step *int64) (string, error) {
	err := s.doSave(ctx, sess, path, step)
	metrics.Observer.Checkpoint(metrics.Save, err)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not save checkpoint")
		return "", err
	}
	return path, nil
}

func (s *Saver) doSave(ctx context.Context, sess *model.Session, path string, step *int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	values, err := sess.Run(s.vars...)
	if err != nil {
		return fmt.Errorf("could not read variables for '%s': %w", path, err)
	}

	c := Checkpoint{
		ID:        uuid.New().String(),
		Version:   version,
		Created:   time.Now(),
		Step:      step,
		Variables: make([]Tensor, len(s.vars)),
	}
	for i, v := range s.vars {
		c.Variables[i] = Tensor{
			Name:   v.Name(),
			Shape:  v.Shape(),
			Values: values[i],
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	k := storage.NewKey(path)
	err = s.store.Store(k, c)
	if err != nil {
		return fmt.Errorf("could not store checkpoint '%s': %w", path, err)
	}

	state, err := loadState(s.store, k.Dir)
	if err != nil {
		return err
	}
	for _, expired := range state.add(k.File, s.maxToKeep) {
		err = s.store.Remove(k.Sibling(expired))
		if err != nil {
			return fmt.Errorf("could not remove expired checkpoint '%s': %w", expired, err)
		}
		log.Debug().Str("path", k.Sibling(expired).Path()).Msg("removed checkpoint")
	}
	err = storeState(s.store, k.Dir, state)
	if err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Str("id", c.ID).
		Int("variables", len(c.Variables)).
		Msg("saved checkpoint")
	return nil
}

// Restore assigns the values stored under the given path prefix to the variables, matching them by name.
// No variable is modified unless all of them can be restored.
func (s *Saver) Restore(ctx context.Context, sess *model.Session, path string) error {
	err := s.restore(ctx, sess, path)
	metrics.Observer.Checkpoint(metrics.Restore, err)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not restore checkpoint")
	}
	return err
}

func (s *Saver) restore(ctx context.Context, sess *model.Session, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, v := range s.vars {
		if !sess.Graph().Contains(v) {
			return fmt.Errorf("'%v' is not an element of the session graph: %w", v, model.ErrUnknownVariable)
		}
	}

	s.mutex.Lock()
	c, err := Read(s.store, path)
	s.mutex.Unlock()
	if err != nil {
		return err
	}

	idx := c.index()
	values := make([][]float64, len(s.vars))
	for i, v := range s.vars {
		t, ok := idx[v.Name()]
		if !ok {
			return fmt.Errorf("'%s' in '%s' (available %v): %w", v.Name(), path, c.Names(), ErrNotFoundInCheckpoint)
		}
		if !mlmath.SameShape(t.Shape, v.Shape()) {
			return fmt.Errorf("could not assign '%s': variable shape %s, checkpoint shape %s: %w",
				v.Name(), mlmath.FormatShape(v.Shape()), mlmath.FormatShape(t.Shape), ErrShapeMismatch)
		}
		if len(t.Values) != v.Size() {
			return fmt.Errorf("corrupt tensor '%s' in '%s': %d values for shape %s: %w",
				t.Name, path, len(t.Values), mlmath.FormatShape(t.Shape), storage.CouldNotLoadErr)
		}
		values[i] = t.Values
	}

	for i, v := range s.vars {
		if err := v.Assign(values[i]); err != nil {
			return err
		}
	}

	log.Info().
		Str("path", path).
		Str("id", c.ID).
		Int("variables", len(s.vars)).
		Msg("restored checkpoint")
	return nil
}

// Latest returns the most recent checkpoint saved in the directory.
func (s *Saver) Latest(dir string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return LatestCheckpoint(s.store, dir)
}
