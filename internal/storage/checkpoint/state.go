package checkpoint

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/drakos74/ml-notes/internal/storage"
)

// StateFile is the name of the file that tracks the checkpoints of a directory.
const StateFile = "checkpoint"

// State tracks the retained checkpoints of a directory, oldest first.
type State struct {
	Latest string   `json:"latest"`
	All    []string `json:"all"`
}

// stateKey points to the state file of the directory.
// The directory is cleaned the same way storage.NewKey cleans checkpoint paths.
func stateKey(dir string) storage.Key {
	return storage.Key{Dir: filepath.Clean(dir), File: StateFile}
}

func loadState(p storage.Persistence, dir string) (State, error) {
	var s State
	err := p.Load(stateKey(dir), &s)
	if errors.Is(err, storage.NotFoundErr) {
		return State{All: make([]string, 0)}, nil
	}
	if err != nil {
		return s, fmt.Errorf("could not load checkpoint state for '%s': %w", dir, err)
	}
	return s, nil
}

func storeState(p storage.Persistence, dir string, s State) error {
	err := p.Store(stateKey(dir), s)
	if err != nil {
		return fmt.Errorf("could not store checkpoint state for '%s': %w", dir, err)
	}
	return nil
}

// add appends the checkpoint as the latest one
// and returns the checkpoints that exceed the max to keep.
func (s *State) add(file string, maxToKeep int) []string {
	all := make([]string, 0, len(s.All)+1)
	for _, f := range s.All {
		if f != file {
			all = append(all, f)
		}
	}
	all = append(all, file)

	var expired []string
	if maxToKeep > 0 && len(all) > maxToKeep {
		expired = all[:len(all)-maxToKeep]
		all = all[len(all)-maxToKeep:]
	}
	s.All = all
	s.Latest = file
	return expired
}

// LatestCheckpoint returns the path prefix of the most recent checkpoint in the directory.
func LatestCheckpoint(p storage.Persistence, dir string) (string, error) {
	s, err := loadState(p, dir)
	if err != nil {
		return "", err
	}
	if s.Latest == "" {
		return "", fmt.Errorf("no checkpoint in '%s': %w", dir, storage.NotFoundErr)
	}
	return filepath.Join(dir, s.Latest), nil
}

// Checkpoints returns the path prefixes of the retained checkpoints in the directory, oldest first.
func Checkpoints(p storage.Persistence, dir string) ([]string, error) {
	s, err := loadState(p, dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(s.All))
	for i, f := range s.All {
		paths[i] = filepath.Join(dir, f)
	}
	return paths, nil
}
