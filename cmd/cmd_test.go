package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/pyns/core/logger"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestInitGenerateCheck(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) })

	project := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, run(t, "init", project))
	assert.FileExists(t, filepath.Join(project, "pyns.yaml"))
	assert.FileExists(t, filepath.Join(project, "metadata", "math.yaml"))

	require.NoError(t, os.Chdir(project))

	require.Error(t, run(t, "check"), "nothing generated yet")

	require.NoError(t, run(t, "generate"))
	out := filepath.Join("src", "python", "math.go")
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "const Pi = 3.141592653589793\n")
	assert.Contains(t, string(content), "var Sqrt = bridge.NewCallable(root, \"sqrt\")\n")

	require.NoError(t, run(t, "check"))
	require.NoError(t, run(t, "inspect", "math"))

	require.NoError(t, os.WriteFile(out, append(content, []byte("// edited\n")...), 0644))
	assert.Error(t, run(t, "check", "math"))

	assert.Error(t, run(t, "generate", "missing"))
}

func TestQuietStillWritesLogfile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Chdir(wd)
		quiet, logfile = false, ""
		logger.SetWriterForAll(os.Stdout)
	})

	project := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, run(t, "init", project))
	require.NoError(t, os.Chdir(project))

	logPath := filepath.Join(project, "pyns.log")
	require.NoError(t, run(t, "--quiet", "--logfile", logPath, "generate"))

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Generated "+filepath.Join("src", "python", "math.go"))
}
