package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigforge/aigforge/pkg/config"
)

func TestDefaults(t *testing.T) {
	d := config.Defaults()
	assert.Equal(t, 6, d.CutSizeMax)
	assert.Equal(t, 8, d.Rewrite.CutsMax)
	assert.Equal(t, 12, d.Refactor.LeafMax)
	assert.Equal(t, 150, d.Resub.StepsMax)
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aigforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cut_size_max: 10\nrewrite:\n  cuts_max: 20\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.CutSizeMax)
	assert.Equal(t, 20, cfg.Rewrite.CutsMax)
	// unset fields keep their built-in default
	assert.Equal(t, config.Defaults().Refactor.LeafMax, cfg.Refactor.LeafMax)
	assert.Equal(t, config.Defaults().Resub.StepsMax, cfg.Resub.StepsMax)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}
