package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/ml-notes/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestPersistence(t *testing.T) {

	tests := map[string]func(t *testing.T) storage.Persistence{
		"blob": func(t *testing.T) storage.Persistence {
			return NewJsonBlob(t.TempDir(), true)
		},
		"local": func(t *testing.T) storage.Persistence {
			return NewLocalStorage()
		},
	}

	for name, newStorage := range tests {
		t.Run(name, func(t *testing.T) {
			s := newStorage(t)
			k := storage.NewKey("models/model.ckpt")

			var loaded item
			err := s.Load(k, &loaded)
			assert.ErrorIs(t, err, storage.NotFoundErr)

			stored := item{Name: "weights", Values: []float64{1, 2.5, -3}}
			require.NoError(t, s.Store(k, stored))
			require.NoError(t, s.Load(k, &loaded))
			assert.Equal(t, stored, loaded)

			// overwrite
			stored.Values = []float64{0}
			require.NoError(t, s.Store(k, stored))
			require.NoError(t, s.Load(k, &loaded))
			assert.Equal(t, stored, loaded)

			require.NoError(t, s.Remove(k))
			assert.ErrorIs(t, s.Load(k, &loaded), storage.NotFoundErr)
			// removing twice is fine
			require.NoError(t, s.Remove(k))
		})
	}

}

func TestBlobStorage_Files(t *testing.T) {
	root := t.TempDir()
	s := NewJsonBlob(root, false)

	require.NoError(t, s.Store(storage.NewKey("nested/model.ckpt"), item{Name: "bias"}))
	_, err := os.Stat(filepath.Join(root, "nested", "model.ckpt.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "nested", "model.ckpt.json.tmp"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	abs := t.TempDir()
	require.NoError(t, s.Store(storage.NewKey(filepath.Join(abs, "model.ckpt")), item{Name: "bias"}))
	_, err = os.Stat(filepath.Join(abs, "model.ckpt.json"))
	assert.NoError(t, err)
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))

	var v item
	err := Load(dir, "broken.json", &v)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
}

func TestSave_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0644))

	err := Save(f, "model.ckpt.json", item{})
	assert.Error(t, err)
}
