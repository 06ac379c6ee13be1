package bijector

import (
	"fmt"
	"math"

	"github.com/born-ml/born/tensor"
)

const affineScalarName = "affine_scalar"

// AffineScalar computes Y = g(X; shift, scale) = scale * X + shift.
//
// An absent scale behaves as scale = 1 and an absent shift as shift = 0, so
// the zero config is the identity. Both params broadcast against the input.
//
// Example:
//
//	backend := cpu.New()
//
//	// Y = X + [1, 2, 3]
//	shift, _ := bijector.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
//	b, err := bijector.NewAffineScalar(bijector.AffineScalarConfig[float32, *cpu.Backend]{
//	    Shift: shift,
//	})
//
//	// Y = 2 * X + [1, 2, 3]
//	b, err = bijector.NewAffineScalar(bijector.AffineScalarConfig[float32, *cpu.Backend]{
//	    Shift: shift,
//	    Scale: bijector.Scalar[float32](2, backend),
//	})
type AffineScalar[T Float, B tensor.Backend] struct {
	shift        Param[T, B]
	scale        Param[T, B]
	dtype        tensor.DataType
	validateArgs bool
	name         string
}

// AffineScalarConfig holds the parameters of an AffineScalar bijector.
type AffineScalarConfig[T Float, B tensor.Backend] struct {
	Shift        Param[T, B] // Optional additive term
	Scale        Param[T, B] // Optional multiplicative term, must be non-zero
	ValidateArgs bool        // Check that scale is non-zero
	Name         string      // Default: "affine_scalar"
}

// Compile-time check that AffineScalar implements Bijector.
var _ Bijector[float32, tensor.Backend] = (*AffineScalar[float32, tensor.Backend])(nil)

// NewAffineScalar creates an AffineScalar bijector.
//
// With ValidateArgs set, a fixed scale is checked once here and a live scale
// is checked on every evaluation.
func NewAffineScalar[T Float, B tensor.Backend](cfg AffineScalarConfig[T, B]) (*AffineScalar[T, B], error) {
	if cfg.Name == "" {
		cfg.Name = affineScalarName
	}

	dtype, err := CommonDType(DataTypeOf[T](), cfg.Shift, cfg.Scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	a := &AffineScalar[T, B]{
		shift:        cfg.Shift,
		scale:        cfg.Scale,
		dtype:        dtype,
		validateArgs: cfg.ValidateArgs,
		name:         cfg.Name,
	}
	if err := a.Validate(true); err != nil {
		return nil, err
	}
	return a, nil
}

// Shift returns the shift param in Y = scale * X + shift.
func (a *AffineScalar[T, B]) Shift() Param[T, B] {
	return a.shift
}

// Scale returns the scale param in Y = scale * X + shift.
func (a *AffineScalar[T, B]) Scale() Param[T, B] {
	return a.scale
}

// Name returns the bijector name.
func (a *AffineScalar[T, B]) Name() string {
	return a.name
}

// DType returns the resolved parameter data type.
func (a *AffineScalar[T, B]) DType() tensor.DataType {
	return a.dtype
}

// ForwardMinEventNDims returns 0: the transform is elementwise.
func (a *AffineScalar[T, B]) ForwardMinEventNDims() int {
	return 0
}

// InverseMinEventNDims returns 0: the transform is elementwise.
func (a *AffineScalar[T, B]) InverseMinEventNDims() int {
	return 0
}

// IsConstantJacobian returns true: the Jacobian depends only on scale.
func (a *AffineScalar[T, B]) IsConstantJacobian() bool {
	return true
}

// ValidateArgs reports whether parameter checks are enabled.
func (a *AffineScalar[T, B]) ValidateArgs() bool {
	return a.validateArgs
}

// Forward computes scale * x + shift.
//
// x is never modified; the result is a new tensor.
func (a *AffineScalar[T, B]) Forward(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	scale, shift, err := a.params()
	if err != nil {
		return nil, err
	}
	if scale == nil && shift == nil {
		return x.Clone(), nil
	}

	// CPU kernels reuse a uniquely referenced left operand for the result.
	defer x.Raw().ForceNonUnique()()

	y := x
	if scale != nil {
		y = y.Mul(scale)
	}
	if shift != nil {
		y = y.Add(shift)
	}
	return y, nil
}

// Inverse computes (y - shift) / scale.
//
// Without validation a zero scale produces ±Inf or NaN.
func (a *AffineScalar[T, B]) Inverse(y *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	scale, shift, err := a.params()
	if err != nil {
		return nil, err
	}
	if scale == nil && shift == nil {
		return y.Clone(), nil
	}

	defer y.Raw().ForceNonUnique()()

	x := y
	if shift != nil {
		x = x.Sub(shift)
	}
	if scale != nil {
		x = x.Div(scale)
	}
	return x, nil
}

// ForwardLogDetJacobian returns log|scale|, or a 0-D zero when scale is absent.
//
// The result has scale's shape, not x's: the Jacobian is constant and the
// caller broadcasts it to the event shape it needs.
func (a *AffineScalar[T, B]) ForwardLogDetJacobian(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	scale, _, err := a.params()
	if err != nil {
		return nil, err
	}
	if scale == nil {
		return tensor.Zeros[T](tensor.Shape{}, x.Backend()), nil
	}
	return logAbs(scale), nil
}

// InverseLogDetJacobian returns -log|scale|, or a 0-D zero when scale is absent.
func (a *AffineScalar[T, B]) InverseLogDetJacobian(y *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	fldj, err := a.ForwardLogDetJacobian(y)
	if err != nil {
		return nil, err
	}
	return fldj.MulScalar(-1), nil
}

// Validate runs the parameter checks for the given phase.
//
// The scale check runs when isInit differs from the scale's mutability:
// at construction for a fixed scale, on every call for a live one. It is a
// no-op when validation is disabled or scale is absent.
func (a *AffineScalar[T, B]) Validate(isInit bool) error {
	return a.validate(isInit, a.scale.Value())
}

// params reads the current parameter values once and validates them for an
// evaluation call. Live params are not re-read after the check.
func (a *AffineScalar[T, B]) params() (scale, shift *tensor.Tensor[T, B], err error) {
	scale, shift = a.scale.Value(), a.shift.Value()
	if err = a.validate(false, scale); err != nil {
		return nil, nil, err
	}
	return scale, shift, nil
}

func (a *AffineScalar[T, B]) validate(isInit bool, scale *tensor.Tensor[T, B]) error {
	if !a.validateArgs || scale == nil {
		return nil
	}
	if isInit == a.scale.IsMutable() {
		return nil
	}
	return a.assertNonZero(scale)
}

func (a *AffineScalar[T, B]) assertNonZero(scale *tensor.Tensor[T, B]) error {
	// Born's comparison kernels need operands of equal shape.
	zero := tensor.Zeros[T](scale.Shape(), scale.Backend())
	for i, ok := range scale.NotEqual(zero).Data() {
		if !ok {
			return &ParameterError{
				Bijector: a.name,
				Param:    "scale",
				Index:    i,
				Message:  "Argument `scale` must be non-zero.",
			}
		}
	}
	return nil
}

// String returns a human-readable description of the bijector.
func (a *AffineScalar[T, B]) String() string {
	return fmt.Sprintf("AffineScalar(name=%s, shift=%s, scale=%s, dtype=%s)",
		a.name, describeParam(a.shift), describeParam(a.scale), a.dtype)
}

func describeParam[T Float, B tensor.Backend](p Param[T, B]) string {
	v := p.Value()
	switch {
	case v == nil:
		return "none"
	case p.IsMutable():
		return fmt.Sprintf("live%v", v.Shape())
	default:
		return fmt.Sprintf("%v", v.Shape())
	}
}

// logAbs computes log|s| elementwise, mapping zeros to -Inf.
// Born's Log kernel rejects non-positive input, so zeros are masked first.
func logAbs[T Float, B tensor.Backend](s *tensor.Tensor[T, B]) *tensor.Tensor[T, B] {
	b, shape := s.Backend(), s.Shape()
	zero := tensor.Zeros[T](shape, b)
	abs := tensor.Where(s.Lower(zero), s.MulScalar(-1), s)

	isZero := s.Equal(zero)
	if !anyTrue(isZero.Data()) {
		return abs.Log()
	}

	one := tensor.Ones[T](shape, b)
	negInf := tensor.Full[T](shape, T(math.Inf(-1)), b)
	return tensor.Where(isZero, negInf, tensor.Where(isZero, one, abs).Log())
}

func anyTrue(mask []bool) bool {
	for _, v := range mask {
		if v {
			return true
		}
	}
	return false
}
