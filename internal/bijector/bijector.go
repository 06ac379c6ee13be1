// Package bijector implements invertible transformations over Born tensors.
//
// A bijector maps a random variable X to Y = g(X) and exposes what a
// change-of-variables needs: the forward map, its inverse, and the log
// absolute determinant of the Jacobian.
package bijector

import (
	"github.com/born-ml/born/tensor"
)

// Float is a constraint for the data types bijectors operate on.
type Float interface {
	float32 | float64
}

// Bijector is the capability set shared by all transforms.
//
// Operations return an error when argument validation is enabled and a
// parameter is invalid at evaluation time.
type Bijector[T Float, B tensor.Backend] interface {
	// Forward computes y = g(x).
	Forward(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)

	// Inverse computes x = g^-1(y).
	Inverse(y *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)

	// ForwardLogDetJacobian computes log|det J_g(x)| per element.
	//
	// For constant-Jacobian bijectors the result does not depend on x and
	// callers broadcast it over the event dimensions they need.
	ForwardLogDetJacobian(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)

	// InverseLogDetJacobian computes log|det J_g^-1(y)| per element.
	InverseLogDetJacobian(y *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)

	Name() string
	DType() tensor.DataType

	// ForwardMinEventNDims is the smallest rank Forward treats as one event.
	// Zero means the transform is elementwise.
	ForwardMinEventNDims() int
	InverseMinEventNDims() int

	IsConstantJacobian() bool
	ValidateArgs() bool
}

// DataTypeOf returns the runtime data type matching T.
func DataTypeOf[T Float]() tensor.DataType {
	var dummy T
	switch any(dummy).(type) {
	case float64:
		return tensor.Float64
	default:
		return tensor.Float32
	}
}
