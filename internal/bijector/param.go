package bijector

import (
	"sync"

	"github.com/born-ml/born/nn"
	"github.com/born-ml/born/tensor"
)

// Ref is a live handle to a tensor whose value may change between calls,
// such as a trainable variable updated by an optimizer.
type Ref[T Float, B tensor.Backend] interface {
	Value() *tensor.Tensor[T, B]
}

// Param is an optional bijector parameter.
//
// The zero value is absent. Fixed params hold a tensor captured at
// construction; live params read their Ref on every use.
type Param[T Float, B tensor.Backend] struct {
	fixed *tensor.Tensor[T, B]
	ref   Ref[T, B]
}

// Fixed wraps an immutable tensor. A nil tensor gives an absent param.
func Fixed[T Float, B tensor.Backend](t *tensor.Tensor[T, B]) Param[T, B] {
	return Param[T, B]{fixed: t}
}

// Live wraps a reference read at every evaluation. A nil ref gives an
// absent param.
func Live[T Float, B tensor.Backend](ref Ref[T, B]) Param[T, B] {
	return Param[T, B]{ref: ref}
}

// Scalar creates a fixed 0-D param holding v.
func Scalar[T Float, B tensor.Backend](v T, b B) Param[T, B] {
	return Fixed(tensor.Full[T](tensor.Shape{}, v, b))
}

// FromSlice creates a fixed param from a Go slice.
func FromSlice[T Float, B tensor.Backend](data []T, shape tensor.Shape, b B) (Param[T, B], error) {
	t, err := tensor.FromSlice(data, shape, b)
	if err != nil {
		return Param[T, B]{}, err
	}
	return Fixed(t), nil
}

// IsSet reports whether the param is present.
func (p Param[T, B]) IsSet() bool {
	return p.fixed != nil || p.ref != nil
}

// IsMutable reports whether the param's value can change after construction.
func (p Param[T, B]) IsMutable() bool {
	return p.ref != nil
}

// Value returns the current tensor, or nil when absent.
func (p Param[T, B]) Value() *tensor.Tensor[T, B] {
	if p.ref != nil {
		return p.ref.Value()
	}
	return p.fixed
}

// DType implements Typed.
func (p Param[T, B]) DType() (tensor.DataType, bool) {
	if !p.IsSet() {
		return 0, false
	}
	return DataTypeOf[T](), true
}

// Variable is a mutable tensor slot that is safe for concurrent use.
type Variable[T Float, B tensor.Backend] struct {
	mu    sync.RWMutex
	value *tensor.Tensor[T, B]
}

// NewVariable creates a variable holding t.
func NewVariable[T Float, B tensor.Backend](t *tensor.Tensor[T, B]) *Variable[T, B] {
	return &Variable[T, B]{value: t}
}

// Value returns the current tensor.
func (v *Variable[T, B]) Value() *tensor.Tensor[T, B] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Assign replaces the held tensor.
func (v *Variable[T, B]) Assign(t *tensor.Tensor[T, B]) {
	v.mu.Lock()
	v.value = t
	v.mu.Unlock()
}

// parameterRef reads an nn.Parameter's tensor, which optimizers update in place.
type parameterRef[B tensor.Backend] struct {
	p *nn.Parameter[B]
}

func (r parameterRef[B]) Value() *tensor.Tensor[float32, B] {
	return r.p.Tensor()
}

// FromParameter creates a live param backed by a trainable parameter.
func FromParameter[B tensor.Backend](p *nn.Parameter[B]) Param[float32, B] {
	if p == nil {
		return Param[float32, B]{}
	}
	return Live[float32, B](parameterRef[B]{p: p})
}
