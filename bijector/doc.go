// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bijector provides invertible transformations for reparameterizing
// random variables on Born tensors.
//
// # Overview
//
// A bijector g maps X to Y = g(X) and exposes what a change of variables needs:
//   - Forward: y = g(x)
//   - Inverse: x = g^-1(y)
//   - ForwardLogDetJacobian: log|det dg/dx|
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/born/backend/cpu"
//	    "github.com/born-ml/born/tensor"
//	    "github.com/born-ml/probability/bijector"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Y = 2 * X + [1, 2, 3]
//	    shift, _ := bijector.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
//	    b, err := bijector.NewAffineScalar(bijector.AffineScalarConfig[float32, *cpu.Backend]{
//	        Shift:        shift,
//	        Scale:        bijector.Scalar[float32](2, backend),
//	        ValidateArgs: true,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x := tensor.Ones[float32](tensor.Shape{3}, backend)
//	    y, _ := b.Forward(x)                  // [3, 4, 5]
//	    ldj, _ := b.ForwardLogDetJacobian(x)  // log(2), 0-D
//	}
//
// # Parameters
//
// Shift and scale are optional. Fixed params are captured at construction;
// live params (Variable, FromParameter) are read on every call, so a scale
// trained by an optimizer is seen without rebuilding the bijector.
//
// # Validation
//
// With ValidateArgs, a zero scale is reported as an error wrapping
// ErrInvalidParameter: at construction for a fixed scale, on every call for a
// live one. Without validation a zero scale yields ±Inf/NaN from Inverse.
package bijector
