package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/pyns/core/errors"
	"github.com/tristendillon/pyns/core/metadata"
)

const sampleConfig = `
output_dir: gen
ns_prefix: py
remaps:
  - Exception=PyException
  - "pi = PI"
exclude: [len, max]
targets: [numpy, os.path]
source:
  kind: exec
  command: python3 -m pyns_dump
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, "py", cfg.NsPrefix)
	assert.Equal(t, []string{"numpy", "os.path"}, cfg.Targets)
	assert.Equal(t, []string{"len", "max"}, cfg.Exclude)
	assert.Equal(t, SourceExec, cfg.Source.Kind)
	assert.Equal(t, "metadata", cfg.Source.Metadata)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Exception": "PyException", "pi": "PI"}, opts.SymbolNameRemaps)
	assert.Equal(t, "gen", opts.OutputDir)

	src, err := cfg.NewSource()
	require.NoError(t, err)
	assert.IsType(t, &metadata.ExecSource{}, src)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts, err := cfg.ToOptions()
	require.NoError(t, err)
	assert.Nil(t, opts.Exclude)
	assert.Nil(t, opts.SymbolNameRemaps)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PYNS_OUTPUT_DIR", "from-env")
	t.Setenv("PYNS_SOURCE_METADATA", "dumps")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("ns_prefix: py\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
	assert.Equal(t, "dumps", cfg.Source.Metadata)
	assert.Equal(t, "py", cfg.NsPrefix)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestParseRemaps(t *testing.T) {
	remaps, err := ParseRemaps([]string{"a=b", "x==y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b", "x": "=y"}, remaps)

	for _, bad := range []string{"a", "=b", "a="} {
		_, err := ParseRemaps([]string{bad})
		assert.True(t, errors.Is(err, errors.ErrConfiguration), bad)
	}
}

func TestNewSource(t *testing.T) {
	cfg := Default()
	src, err := cfg.NewSource()
	require.NoError(t, err)
	assert.Equal(t, "metadata", src.(*metadata.FileSource).Dir)

	cfg.Source.Kind = SourceExec
	_, err = cfg.NewSource()
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	cfg.Source.Kind = "socket"
	_, err = cfg.NewSource()
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}
