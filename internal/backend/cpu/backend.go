// Package cpu implements the pure-Go CPU backend.
package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/parallel"
	"github.com/weft-ml/weft/internal/tensor"
)

// Backend implements tensor operations on the CPU. Every result it produces
// is allocated on tensor.CPU, so results always share their operands' device.
type Backend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend with parallelism defaults based on the
// machine's CPU count.
func New() *Backend {
	return &Backend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "cpu"
}

// Device returns the compute device.
func (c *Backend) Device() tensor.Device {
	return c.device
}

// alloc allocates a result tensor on this backend's device. Result placement
// is never left to a default: it always follows the backend.
func (c *Backend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, dtype, c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return out
}

// Add performs element-wise addition with broadcasting.
func (c *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("add", a, b, addKernel)
}

// Sub performs element-wise subtraction with broadcasting.
func (c *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("sub", a, b, subKernel)
}

// Mul performs element-wise multiplication with broadcasting.
func (c *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("mul", a, b, mulKernel)
}

// Div performs element-wise division with broadcasting.
func (c *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binaryOp("div", a, b, divKernel)
}

// Reshape returns a tensor with the same data and a new shape.
func (c *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}

	result := c.alloc("reshape", newShape, t.DType())
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes the tensor's dimensions. With no axes, all dimensions
// are reversed.
func (c *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result := c.alloc("transpose", newShape, t.DType())
	transposeBytes(result, t, axes)
	return result
}

// transposeBytes permutes element bytes according to axes. It works on raw
// bytes so one implementation serves every dtype.
func transposeBytes(dst, src *tensor.RawTensor, axes []int) {
	srcShape := src.Shape()
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dst.Shape().ComputeStrides()
	elemSize := src.DType().Size()

	srcData := src.Data()
	dstData := dst.Data()

	n := src.NumElements()
	ndim := len(srcShape)
	for i := 0; i < n; i++ {
		remaining := i
		dstIdx := 0
		for d := 0; d < ndim; d++ {
			coord := remaining / srcStrides[d]
			remaining %= srcStrides[d]
			// Position of source dimension d in the output.
			for j, ax := range axes {
				if ax == d {
					dstIdx += coord * dstStrides[j]
					break
				}
			}
		}
		copy(dstData[dstIdx*elemSize:(dstIdx+1)*elemSize], srcData[i*elemSize:(i+1)*elemSize])
	}
}
