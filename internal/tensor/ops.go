package tensor

import "fmt"

// mustSameDevice enforces the device-purity rule: an operation may only
// combine tensors bound to the same device. Violations are a hard runtime
// failure, matching the behavior callers would otherwise hit later inside a
// backend with a far less useful message.
func mustSameDevice(op string, a, b *RawTensor) {
	if a.Device() != b.Device() {
		panic(fmt.Sprintf("%s: operands on different devices: %s vs %s", op, a.Device(), b.Device()))
	}
}

// Add performs element-wise addition with broadcasting.
// Both operands must live on the same device.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	mustSameDevice("add", t.raw, other.raw)
	return New[T, B](t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	mustSameDevice("sub", t.raw, other.raw)
	return New[T, B](t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	mustSameDevice("mul", t.raw, other.raw)
	return New[T, B](t.backend.Mul(t.raw, other.raw), t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	mustSameDevice("div", t.raw, other.raw)
	return New[T, B](t.backend.Div(t.raw, other.raw), t.backend)
}

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	mustSameDevice("matmul", t.raw, other.raw)
	return New[T, B](t.backend.MatMul(t.raw, other.raw), t.backend)
}

// AddScalar adds a scalar to each element.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.AddScalar(t.raw, scalar), t.backend)
}

// MulScalar multiplies each element by a scalar.
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	return New[T, B](t.backend.MulScalar(t.raw, scalar), t.backend)
}

// Exp computes the element-wise exponential.
func (t *Tensor[T, B]) Exp() *Tensor[T, B] {
	return New[T, B](t.backend.Exp(t.raw), t.backend)
}

// Log computes the element-wise natural logarithm.
func (t *Tensor[T, B]) Log() *Tensor[T, B] {
	return New[T, B](t.backend.Log(t.raw), t.backend)
}

// Sqrt computes the element-wise square root.
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	return New[T, B](t.backend.Sqrt(t.raw), t.backend)
}

// Sum reduces the tensor to its total sum (single-element result).
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	return New[T, B](t.backend.Sum(t.raw), t.backend)
}

// SumDim sums along a dimension.
func (t *Tensor[T, B]) SumDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.SumDim(t.raw, dim, keepDim), t.backend)
}

// MeanDim averages along a dimension. Float tensors only.
func (t *Tensor[T, B]) MeanDim(dim int, keepDim bool) *Tensor[T, B] {
	return New[T, B](t.backend.MeanDim(t.raw, dim, keepDim), t.backend)
}

// Gather selects elements along dim using an index tensor.
//
// The index tensor is exempt from the same-device rule: index arrays are
// metadata read host-side by every backend, so a CPU index may address a GPU
// tensor.
func Gather[T DType, IT DType, B Backend](t *Tensor[T, B], dim int, index *Tensor[IT, B]) *Tensor[T, B] {
	return New[T, B](t.Backend().Gather(t.Raw(), dim, index.Raw()), t.Backend())
}

// Where selects elements from x where condition is true, else from y.
// All three tensors must live on the same device.
func Where[T DType, B Backend](condition *Tensor[bool, B], x, y *Tensor[T, B]) *Tensor[T, B] {
	mustSameDevice("where", condition.Raw(), x.Raw())
	mustSameDevice("where", x.Raw(), y.Raw())
	return New[T, B](x.Backend().Where(condition.Raw(), x.Raw(), y.Raw()), x.Backend())
}

// Reshape returns a tensor with the same data but a new shape.
// The new shape must have the same number of elements.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Transpose permutes the tensor's dimensions. With no axes, all dimensions
// are reversed.
func (t *Tensor[T, B]) Transpose(axes ...int) *Tensor[T, B] {
	return New[T, B](t.backend.Transpose(t.raw, axes...), t.backend)
}

// T is a shortcut for 2D transpose.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}

// Cast converts the tensor to a different element type.
func Cast[To DType, From DType, B Backend](t *Tensor[From, B]) *Tensor[To, B] {
	var dummy To
	return New[To, B](t.Backend().Cast(t.Raw(), inferDataType(dummy)), t.Backend())
}
