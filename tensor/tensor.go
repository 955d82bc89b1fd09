// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/weft-ml/weft/internal/tensor"
)

// Type aliases for the public API.

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a generic type-safe tensor bound to a device.
//
// T is the element type (float32, float64, int32, int64, uint8, bool).
// B is the backend implementation (CPU, WebGPU, etc.). The tensor's device
// always matches its backend's device, and every operation result stays on
// that device.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros on b's device.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones on b's device.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value on b's device.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// ZerosLike creates a zero tensor with the same shape as t, allocated on
// t's device. Use the *Like helpers inside device-generic code so results
// never silently land on a default device.
//
// Example:
//
//	grad := tensor.ZerosLike(weights)  // same shape, same device
func ZerosLike[T DType, B Backend](t *Tensor[T, B]) *Tensor[T, B] {
	return tensor.ZerosLike(t)
}

// OnesLike creates a ones tensor with the same shape and device as t.
func OnesLike[T DType, B Backend](t *Tensor[T, B]) *Tensor[T, B] {
	return tensor.OnesLike(t)
}

// FullLike creates a tensor with the same shape and device as t, filled
// with value.
func FullLike[T DType, B Backend](t *Tensor[T, B], value T) *Tensor[T, B] {
	return tensor.FullLike(t, value)
}

// Randn creates a tensor of values drawn from N(0, 1) on b's device.
// Float types only.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b)
}

// Rand creates a tensor of uniform values in [0, 1) on b's device.
// Float types only.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, b)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
//
// Example:
//
//	x := tensor.Arange[float32](0, 10, backend)  // [0, 1, 2, ..., 9]
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// Eye creates an n-by-n identity matrix on b's device.
func Eye[T DType, B Backend](n int, b B) *Tensor[T, B] {
	return tensor.Eye[T, B](n, b)
}

// FromSlice creates a tensor from a Go slice on b's device.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions
// like Zeros, Ones, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use high-level creation
// functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Device transfer

// To copies t onto the device served by dst and returns a tensor bound to
// dst. This is the only way data moves between devices; the source tensor
// keeps its original device binding.
//
// Example:
//
//	gpu, _ := webgpu.New()
//	y := tensor.To(x, gpu)  // y is on the GPU, x stays where it was
func To[T DType, B1 Backend, B2 Backend](t *Tensor[T, B1], dst B2) *Tensor[T, B2] {
	return tensor.To[T, B1, B2](t, dst)
}

// Free-function operations

// Gather selects elements along dim using an index tensor.
//
// The index tensor is exempt from the same-device rule: index arrays are
// metadata read host-side by every backend, so a CPU index may address a
// GPU tensor. The result lives on t's device.
func Gather[T DType, IT DType, B Backend](t *Tensor[T, B], dim int, index *Tensor[IT, B]) *Tensor[T, B] {
	return tensor.Gather(t, dim, index)
}

// Where selects elements from x where condition is true, else from y.
// All three tensors must live on the same device.
//
// Example:
//
//	mask := tensor.Full[bool](tensor.Shape{3}, true, backend)
//	result := tensor.Where(mask, x, y)
func Where[T DType, B Backend](condition *Tensor[bool, B], x, y *Tensor[T, B]) *Tensor[T, B] {
	return tensor.Where(condition, x, y)
}

// Cast converts the tensor to a different element type on the same device.
func Cast[To DType, From DType, B Backend](t *Tensor[From, B]) *Tensor[To, B] {
	return tensor.Cast[To, From, B](t)
}

// Utility functions

// BroadcastShapes computes the broadcast shape for two shapes following
// NumPy broadcasting rules. The boolean reports whether either operand
// needs stretching.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
