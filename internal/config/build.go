package config

import (
	"github.com/born-ml/born/tensor"
	"github.com/born-ml/probability/internal/bijector"
)

// NewAffineScalar builds the bijector described by c on backend b.
// T must match c.DataType(); callers dispatch on it.
func NewAffineScalar[T bijector.Float, B tensor.Backend](c *Config, b B) (*bijector.AffineScalar[T, B], error) {
	shift, err := toParam[T](c.Shift, b)
	if err != nil {
		return nil, err
	}
	scale, err := toParam[T](c.Scale, b)
	if err != nil {
		return nil, err
	}
	return bijector.NewAffineScalar(bijector.AffineScalarConfig[T, B]{
		Shift:        shift,
		Scale:        scale,
		ValidateArgs: c.ValidateArgs,
		Name:         c.Name,
	})
}

// Tensor converts values to a tensor of type T on backend b.
func Tensor[T bijector.Float, B tensor.Backend](v *Values, b B) (*tensor.Tensor[T, B], error) {
	data := make([]T, len(v.Data))
	for i, f := range v.Data {
		data[i] = T(f)
	}
	return tensor.FromSlice(data, v.Shape(), b)
}

func toParam[T bijector.Float, B tensor.Backend](v *Values, b B) (bijector.Param[T, B], error) {
	if v == nil {
		return bijector.Param[T, B]{}, nil
	}
	t, err := Tensor[T](v, b)
	if err != nil {
		return bijector.Param[T, B]{}, err
	}
	return bijector.Fixed(t), nil
}
