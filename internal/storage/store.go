package storage

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key of a stored item, a file within a directory.
type Key struct {
	Dir  string `json:"dir"`
	File string `json:"file"`
}

// NewKey splits the given path into a storage key.
func NewKey(path string) Key {
	dir, file := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return Key{
		Dir:  filepath.Clean(dir),
		File: file,
	}
}

// Path returns the path of the key.
func (k Key) Path() string {
	return filepath.Join(k.Dir, k.File)
}

// Sibling returns a key for another file in the same directory.
func (k Key) Sibling(file string) Key {
	return Key{
		Dir:  k.Dir,
		File: file,
	}
}

func (k Key) String() string {
	return k.Path()
}

// Persistence stores and loads items by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
	Remove(k Key) error
}

// VoidStorage is a noop storage
type VoidStorage struct {
}

func (d VoidStorage) Store(k Key, value interface{}) error {
	return nil
}

func (d VoidStorage) Load(k Key, value interface{}) error {
	return fmt.Errorf("not found '%v': %w", k, NotFoundErr)
}

func (d VoidStorage) Remove(k Key) error {
	return nil
}

// NewVoidStorage creates a new noop storage
func NewVoidStorage() *VoidStorage {
	return &VoidStorage{}
}
