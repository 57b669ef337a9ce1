package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/drakos74/ml-notes/internal/storage/checkpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		SaveFile:  filepath.Join(t.TempDir(), "model.ckpt"),
		MaxToKeep: 5,
		StdDev:    1,
	}
}

func TestWalkthrough(t *testing.T) {

	type test struct {
		named    bool
		reversed bool
		err      error
	}

	tests := map[string]test{
		"default-names": {},
		"default-names-reversed": {
			reversed: true,
			err:      checkpoint.ErrShapeMismatch,
		},
		"explicit-names": {
			named: true,
		},
		"explicit-names-reversed": {
			named:    true,
			reversed: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			ctx := context.Background()

			saved, err := save(ctx, cfg, tt.named)
			require.NoError(t, err)

			restored, err := restore(ctx, cfg, tt.named, tt.reversed)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, equal(saved, restored))
			assert.Equal(t, saved, restored)
		})
	}

}
