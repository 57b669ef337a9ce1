package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/ml-notes/internal/math/ml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	var cfg ml.Config
	require.NoError(t, Load(".", "dropout", &cfg))
	assert.Equal(t, 0.5, cfg.KeepProb)
	assert.Equal(t, 3, cfg.Classes)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644))

	var cfg ml.Config
	assert.Error(t, Load(dir, "missing", &cfg))
	assert.Error(t, Load(dir, "broken", &cfg))
}
