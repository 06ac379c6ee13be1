package bijector

import (
	"fmt"

	"github.com/born-ml/born/tensor"
)

// Typed is an optional value with a runtime data type.
// DType reports false when the value is absent.
type Typed interface {
	DType() (tensor.DataType, bool)
}

// CommonDType resolves the data type shared by a set of optional values.
//
// It returns the dtype of the first present value, or hint when every value
// is absent. Nil entries count as absent. A present value whose dtype differs
// from the first one is an error.
func CommonDType(hint tensor.DataType, values ...Typed) (tensor.DataType, error) {
	var (
		dtype tensor.DataType
		found bool
	)
	for i, v := range values {
		if v == nil {
			continue
		}
		dt, ok := v.DType()
		if !ok {
			continue
		}
		if !found {
			dtype, found = dt, true
			continue
		}
		if dt != dtype {
			return 0, fmt.Errorf("%w: value %d is %s, expected %s", ErrDTypeMismatch, i, dt, dtype)
		}
	}
	if !found {
		return hint, nil
	}
	return dtype, nil
}
