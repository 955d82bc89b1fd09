// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for device-safe tensor operations.
//
// Every tensor is bound to exactly one device at allocation, and every
// operation allocates its result on the device of its inputs. The package
// enforces three rules:
//
//   - Consistency: an operation's result lives on the same device as its
//     inputs. Creation helpers like ZerosLike propagate the input's device
//     instead of defaulting to the CPU.
//   - Purity: operations never mix operands from different devices. Mixing
//     panics immediately rather than producing a silently misplaced result.
//     The one exception is the index argument of Gather, which is metadata
//     read host-side and may live on any device.
//   - Agnosticism: the same program produces the same numeric results on
//     every backend, within floating-point tolerance.
//
// Data moves between devices only through an explicit To call.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.OnesLike(x)  // same shape, same device as x
//	z := x.Add(y)            // result on x's device
package tensor
