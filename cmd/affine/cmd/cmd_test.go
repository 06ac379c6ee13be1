package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/born-ml/probability/internal/bijector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"forward", []string{"forward", "--shift", "1,2,3", "--scale", "2", "1,1,1"}, "[3 4 5] shape=[3]\n"},
		{"forward separate args", []string{"forward", "--shift", "1,2,3", "0", "0", "0"}, "[1 2 3] shape=[3]\n"},
		{"identity", []string{"forward", "7"}, "[7] shape=[]\n"},
		{"inverse", []string{"inverse", "--shift", "1,2,3", "--scale", "2", "3,4,5"}, "[1 1 1] shape=[3]\n"},
		{"fldj", []string{"fldj", "--scale", "2", "0"}, "[0.6931472] shape=[]\n"},
		{"fldj without scale", []string{"fldj", "1,2"}, "[0] shape=[]\n"},
		{"ildj", []string{"ildj", "--scale", "[2, 2]", "5"}, "[-0.6931472 -0.6931472] shape=[2]\n"},
		{"float64", []string{"forward", "--dtype", "float64", "--scale", "0.5", "3"}, "[1.5] shape=[]\n"},
		{"zero scale without validation", []string{"inverse", "--scale", "0", "1"}, "[+Inf] shape=[]\n"},
		{
			"roundtrip",
			[]string{"roundtrip", "--shift", "1", "--scale", "4", "1,2"},
			"forward: [5 9]\ninverse: [1 2]\nmax abs error: 0\n",
		},
		{"version", []string{"version"}, "affine " + version + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestCommands_ZeroScaleValidated(t *testing.T) {
	for _, op := range []string{"forward", "inverse", "fldj"} {
		_, _, err := execute(t, op, "--scale", "0", "--validate", "1")
		require.Error(t, err, op)
		assert.True(t, errors.Is(err, bijector.ErrInvalidParameter), op)
		assert.Contains(t, err.Error(), "Argument `scale` must be non-zero.")
	}
}

func TestCommands_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shift: [1, 2, 3]\nscale: 2\n"), 0o600))

	out, _, err := execute(t, "forward", "--config", path, "1,1,1")
	require.NoError(t, err)
	assert.Equal(t, "[3 4 5] shape=[3]\n", out)

	// Flags override the file.
	out, _, err = execute(t, "forward", "--config", path, "--scale", "1", "1,1,1")
	require.NoError(t, err)
	assert.Equal(t, "[2 3 4] shape=[3]\n", out)
}

func TestCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"forward"}},
		{"bad input", []string{"forward", "abc"}},
		{"bad shift", []string{"forward", "--shift", "1,,2", "1"}},
		{"bad dtype", []string{"forward", "--dtype", "int8", "1"}},
		{"bad backend", []string{"forward", "--backend", "tpu", "1"}},
		{"missing config", []string{"forward", "--config", "does-not-exist.yaml", "1"}},
		{"incompatible shapes", []string{"forward", "--shift", "1,2,3", "1,2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCommands_WebGPUUnavailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("webgpu availability depends on the host GPU")
	}
	_, _, err := execute(t, "forward", "--backend", "webgpu", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webgpu")
}

func TestCommands_VerboseLogs(t *testing.T) {
	_, stderr, err := execute(t, "forward", "-v", "--scale", "3", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "op=forward")
}
