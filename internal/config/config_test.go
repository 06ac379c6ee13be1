package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
	"github.com/born-ml/probability/internal/bijector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
name: standardize
dtype: float64
validate_args: true
shift: [1, 2, 3]
scale: 2
`))
	require.NoError(t, err)

	assert.Equal(t, "standardize", cfg.Name)
	assert.Equal(t, BackendCPU, cfg.Backend)
	assert.True(t, cfg.ValidateArgs)

	dt, err := cfg.DataType()
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, dt)

	require.NotNil(t, cfg.Shift)
	assert.Equal(t, []float64{1, 2, 3}, cfg.Shift.Data)
	assert.Equal(t, tensor.Shape{3}, cfg.Shift.Shape())

	require.NotNil(t, cfg.Scale)
	assert.True(t, cfg.Scale.Scalar)
	assert.Equal(t, tensor.Shape{}, cfg.Scale.Shape())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, "float32", cfg.DType)
	assert.Equal(t, BackendCPU, cfg.Backend)
	assert.False(t, cfg.ValidateArgs)
	assert.Nil(t, cfg.Shift)
	assert.Nil(t, cfg.Scale)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown dtype", "dtype: int32"},
		{"unknown backend", "backend: cuda"},
		{"empty list", "scale: []"},
		{"not a number", "shift: abc"},
		{"mapping value", "scale: {a: 1}"},
		{"malformed yaml", "shift: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scale: [0.5, 4]\nbackend: webgpu\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendWebGPU, cfg.Backend)
	assert.Equal(t, []float64{0.5, 4}, cfg.Scale.Data)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		in     string
		data   []float64
		scalar bool
	}{
		{"2", []float64{2}, true},
		{" -0.5 ", []float64{-0.5}, true},
		{"1,2,3", []float64{1, 2, 3}, false},
		{"[1, 2, 3]", []float64{1, 2, 3}, false},
		{"[7]", []float64{7}, false},
		{"1e-3, 4", []float64{1e-3, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseValues(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.data, v.Data)
			assert.Equal(t, tt.scalar, v.Scalar)
		})
	}

	for _, bad := range []string{"", "[]", "1,,2", "x"} {
		_, err := ParseValues(bad)
		assert.ErrorIs(t, err, ErrInvalidValues, "input %q", bad)
	}
}

func TestNewAffineScalar(t *testing.T) {
	backend := cpu.New()
	cfg, err := Parse([]byte("shift: [1, 2, 3]\nscale: 2\nvalidate_args: true\n"))
	require.NoError(t, err)

	b, err := NewAffineScalar[float32](cfg, backend)
	require.NoError(t, err)
	assert.Equal(t, "affine_scalar", b.Name())
	assert.True(t, b.ValidateArgs())

	x, err := Tensor[float32](&Values{Data: []float64{1, 1, 1}}, backend)
	require.NoError(t, err)

	y, err := b.Forward(x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{3, 4, 5}, y.Data(), 1e-6)

	fldj, err := b.ForwardLogDetJacobian(x)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), float64(fldj.Item()), 1e-6)
}

func TestNewAffineScalar_ZeroScaleRejected(t *testing.T) {
	cfg, err := Parse([]byte("scale: 0\nvalidate_args: true\n"))
	require.NoError(t, err)

	_, err = NewAffineScalar[float64](cfg, cpu.New())
	assert.ErrorIs(t, err, bijector.ErrInvalidParameter)
}
