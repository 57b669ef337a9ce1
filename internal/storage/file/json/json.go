package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/ml-notes/internal/storage"
	"github.com/rs/zerolog/log"
)

const extension = ".json"

// BlobStorage stores every key as a json file under the root directory.
type BlobStorage struct {
	root  string
	debug bool
}

// NewJsonBlob creates a new json file storage.
// Keys with relative directories are resolved against the root.
func NewJsonBlob(root string, debug bool) *BlobStorage {
	return &BlobStorage{
		root:  root,
		debug: debug,
	}
}

func (s BlobStorage) dir(k storage.Key) string {
	if s.root == "" || filepath.IsAbs(k.Dir) {
		return k.Dir
	}
	return filepath.Join(s.root, k.Dir)
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	p := s.dir(k)
	err := Save(p, k.File+extension, value)
	if err == nil && s.debug {
		log.Info().Str("path", p).Str("file", k.File).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(s.dir(k), k.File+extension, value)
}

func (s BlobStorage) Remove(k storage.Key) error {
	p := filepath.Join(s.dir(k), k.File+extension)
	err := os.Remove(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("could not remove file '%s': %w", p, err)
	}
	return nil
}

// Save saves the given json struct into the given path with the provided filename.
// The content is written to a temporary file first and moved in place,
// so that readers never see a partially written file.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value for '%s': %w", fileName, err)
	}

	p := filepath.Join(filePath, fileName)
	tmp := p + ".tmp"
	err = os.WriteFile(tmp, b, 0644)
	if err != nil {
		return fmt.Errorf("could not write file '%s': %w", tmp, err)
	}

	err = os.Rename(tmp, p)
	if err != nil {
		return fmt.Errorf("could not move file '%s' to '%s': %w", tmp, p, err)
	}

	return nil
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {

	p := filepath.Join(filePath, fileName)

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s' %s: %w", p, err.Error(), storage.NotFoundErr)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", p, err, storage.CouldNotLoadErr)
	}

	return nil
}
