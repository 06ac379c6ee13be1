package bijector

import (
	"testing"

	"github.com/born-ml/born/backend/cpu"
	"github.com/born-ml/born/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonDType(t *testing.T) {
	backend := cpu.New()

	f32 := Scalar[float32](1, backend)
	f64 := Scalar[float64](1, backend)
	var absent32 Param[float32, Backend]
	var absent64 Param[float64, Backend]

	tests := []struct {
		name     string
		hint     tensor.DataType
		values   []Typed
		expected tensor.DataType
	}{
		{"no values", tensor.Float32, nil, tensor.Float32},
		{"all absent", tensor.Float64, []Typed{absent32, absent64}, tensor.Float64},
		{"nil entries", tensor.Float32, []Typed{nil, nil}, tensor.Float32},
		{"first present wins over hint", tensor.Float32, []Typed{absent32, f64}, tensor.Float64},
		{"consistent values", tensor.Float64, []Typed{f32, absent64, f32}, tensor.Float32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CommonDType(tt.hint, tt.values...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCommonDType_Mismatch(t *testing.T) {
	backend := cpu.New()

	_, err := CommonDType(tensor.Float32, Scalar[float32](1, backend), Scalar[float64](2, backend))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDTypeMismatch)
	assert.Contains(t, err.Error(), "value 1 is float64, expected float32")
}

func TestDataTypeOf(t *testing.T) {
	assert.Equal(t, tensor.Float32, DataTypeOf[float32]())
	assert.Equal(t, tensor.Float64, DataTypeOf[float64]())
}
