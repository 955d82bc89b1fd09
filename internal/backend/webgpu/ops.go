package webgpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/tensor"
)

// Kernel coverage: same-shape float32 element-wise ops, float32 scalar ops,
// and 2D float32 matmul run on the GPU. Everything else (broadcasting, other
// dtypes, reductions, indexing) runs on the host path and the result is
// copied back onto this device.

// canRunKernel reports whether the element-wise GPU path applies.
func canRunKernel(tensors ...*tensor.RawTensor) bool {
	for _, t := range tensors {
		if t.DType() != tensor.Float32 {
			return false
		}
	}
	for i := 1; i < len(tensors); i++ {
		if !tensors[0].Shape().Equal(tensors[i].Shape()) {
			return false
		}
	}
	return true
}

// binaryOp runs the named kernel, or falls back to the host path for shapes
// and dtypes the kernel does not cover.
func (b *Backend) binaryOp(name string, a, other *tensor.RawTensor, hostOp func(a, b *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if canRunKernel(a, other) {
		result, err := b.runBinaryOp(a, other, name)
		if err == nil {
			return result
		}
	}
	return b.retag(name, hostOp(a, other))
}

// Add performs element-wise addition with broadcasting.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("add", a, other, b.host.Add)
}

// Sub performs element-wise subtraction with broadcasting.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("sub", a, other, b.host.Sub)
}

// Mul performs element-wise multiplication with broadcasting.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("mul", a, other, b.host.Mul)
}

// Div performs element-wise division with broadcasting.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.binaryOp("div", a, other, b.host.Div)
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
func (b *Backend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if len(a.Shape()) != 2 || len(other.Shape()) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v and %v", a.Shape(), other.Shape()))
	}
	if a.Shape()[1] != other.Shape()[0] {
		panic(fmt.Sprintf("matmul: incompatible shapes %v and %v", a.Shape(), other.Shape()))
	}

	if a.DType() == tensor.Float32 && other.DType() == tensor.Float32 {
		result, err := b.runMatMul(a, other)
		if err == nil {
			return result
		}
	}
	return b.retag("matmul", b.host.MatMul(a, other))
}

// scalarOp runs the named scalar kernel for float32 inputs, or falls back to
// the host path.
func (b *Backend) scalarOp(name string, x *tensor.RawTensor, scalar any, hostOp func(x *tensor.RawTensor, scalar any) *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() == tensor.Float32 {
		if s, ok := toFloat32(scalar); ok {
			result, err := b.runScalarOp(x, s, name)
			if err == nil {
				return result
			}
		}
	}
	return b.retag(name, hostOp(x, scalar))
}

// toFloat32 converts a numeric scalar to float32 for the uniform buffer.
func toFloat32(scalar any) (float32, bool) {
	switch s := scalar.(type) {
	case float32:
		return s, true
	case float64:
		return float32(s), true
	case int:
		return float32(s), true
	case int32:
		return float32(s), true
	case int64:
		return float32(s), true
	default:
		return 0, false
	}
}

// AddScalar adds a scalar to every element.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.scalarOp("addScalar", x, scalar, b.host.AddScalar)
}

// MulScalar multiplies every element by a scalar.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return b.scalarOp("mulScalar", x, scalar, b.host.MulScalar)
}

// unaryOp runs the named kernel for float32 inputs, or falls back to the
// host path.
func (b *Backend) unaryOp(name string, x *tensor.RawTensor, hostOp func(x *tensor.RawTensor) *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() == tensor.Float32 {
		result, err := b.runUnaryOp(x, name)
		if err == nil {
			return result
		}
	}
	return b.retag(name, hostOp(x))
}

// Exp computes e^x element-wise.
func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryOp("exp", x, b.host.Exp)
}

// Log computes the natural logarithm element-wise.
func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryOp("log", x, b.host.Log)
}

// Sqrt computes the square root element-wise.
func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return b.unaryOp("sqrt", x, b.host.Sqrt)
}

// Sum reduces the tensor to a single-element tensor.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return b.retag("sum", b.host.Sum(x))
}

// SumDim sums along the given dimension.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.retag("sumDim", b.host.SumDim(x, dim, keepDim))
}

// MeanDim averages along the given dimension.
func (b *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.retag("meanDim", b.host.MeanDim(x, dim, keepDim))
}

// Gather selects elements along dim using an index tensor. The index tensor
// is read host-side and may live on any device.
func (b *Backend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	return b.retag("gather", b.host.Gather(x, dim, index))
}

// Where selects from x or y element-wise based on condition.
func (b *Backend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.retag("where", b.host.Where(condition, x, y))
}

// Reshape returns a tensor with the same data and a new shape.
func (b *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	return b.retag("reshape", b.host.Reshape(t, newShape))
}

// Transpose permutes the tensor's dimensions.
func (b *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	return b.retag("transpose", b.host.Transpose(t, axes...))
}

// Cast converts the tensor to a new dtype.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.retag("cast", b.host.Cast(x, dtype))
}
