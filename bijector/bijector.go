// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package bijector

import (
	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
	"github.com/born-ml/probability/internal/bijector"
)

// Float is a constraint for the data types bijectors operate on.
type Float = bijector.Float

// Bijector is the capability set shared by all transforms.
type Bijector[T Float, B tensor.Backend] = bijector.Bijector[T, B]

// AffineScalar computes Y = scale * X + shift.
type AffineScalar[T Float, B tensor.Backend] = bijector.AffineScalar[T, B]

// AffineScalarConfig holds the parameters of an AffineScalar bijector.
type AffineScalarConfig[T Float, B tensor.Backend] = bijector.AffineScalarConfig[T, B]

// Param is an optional fixed or live bijector parameter.
type Param[T Float, B tensor.Backend] = bijector.Param[T, B]

// Ref is a live handle to a tensor whose value may change between calls.
type Ref[T Float, B tensor.Backend] = bijector.Ref[T, B]

// Variable is a mutable tensor slot that is safe for concurrent use.
type Variable[T Float, B tensor.Backend] = bijector.Variable[T, B]

// Typed is an optional value with a runtime data type.
type Typed = bijector.Typed

// ParameterError reports a parameter that failed argument validation.
type ParameterError = bijector.ParameterError

// Errors.
var (
	ErrInvalidParameter = bijector.ErrInvalidParameter
	ErrDTypeMismatch    = bijector.ErrDTypeMismatch
)

// NewAffineScalar creates an AffineScalar bijector.
//
// Example:
//
//	backend := cpu.New()
//	b, err := bijector.NewAffineScalar(bijector.AffineScalarConfig[float32, *cpu.Backend]{
//	    Scale: bijector.Scalar[float32](2, backend),
//	})
func NewAffineScalar[T Float, B tensor.Backend](cfg AffineScalarConfig[T, B]) (*AffineScalar[T, B], error) {
	return bijector.NewAffineScalar(cfg)
}

// Fixed wraps an immutable tensor as a param.
func Fixed[T Float, B tensor.Backend](t *tensor.Tensor[T, B]) Param[T, B] {
	return bijector.Fixed(t)
}

// Live wraps a reference that is read at every evaluation.
func Live[T Float, B tensor.Backend](ref Ref[T, B]) Param[T, B] {
	return bijector.Live(ref)
}

// Scalar creates a fixed 0-D param holding v.
func Scalar[T Float, B tensor.Backend](v T, b B) Param[T, B] {
	return bijector.Scalar(v, b)
}

// FromSlice creates a fixed param from a Go slice.
func FromSlice[T Float, B tensor.Backend](data []T, shape tensor.Shape, b B) (Param[T, B], error) {
	return bijector.FromSlice(data, shape, b)
}

// NewVariable creates a variable holding t.
func NewVariable[T Float, B tensor.Backend](t *tensor.Tensor[T, B]) *Variable[T, B] {
	return bijector.NewVariable(t)
}

// FromParameter creates a live param backed by a trainable nn.Parameter.
//
// Example:
//
//	scale := nn.NewParameter("scale", tensor.Ones[float32](tensor.Shape{1}, backend))
//	b, _ := bijector.NewAffineScalar(bijector.AffineScalarConfig[float32, *cpu.Backend]{
//	    Scale: bijector.FromParameter(scale),
//	})
//	// optimizer.Step(grads) updates scale; b reads the new value.
func FromParameter[B tensor.Backend](p *nn.Parameter[B]) Param[float32, B] {
	return bijector.FromParameter(p)
}

// CommonDType resolves the dtype shared by optional values, falling back to hint.
func CommonDType(hint tensor.DataType, values ...Typed) (tensor.DataType, error) {
	return bijector.CommonDType(hint, values...)
}

// DataTypeOf returns the runtime data type matching T.
func DataTypeOf[T Float]() tensor.DataType {
	return bijector.DataTypeOf[T]()
}
