package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/parallel"
	"github.com/weft-ml/weft/internal/tensor"
)

// kernel identifies one of the element-wise binary operations.
type kernel int

const (
	addKernel kernel = iota
	subKernel
	mulKernel
	divKernel
)

// number covers the dtypes element-wise arithmetic is defined on.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// binaryOp dispatches an element-wise binary operation over dtypes, with
// NumPy-style broadcasting.
func (c *Backend) binaryOp(op string, a, b *tensor.RawTensor, k kernel) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	result := c.alloc(op, outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryLoop(c.par, result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, k)
	case tensor.Float64:
		binaryLoop(c.par, result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, k)
	case tensor.Int32:
		binaryLoop(c.par, result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, k)
	case tensor.Int64:
		binaryLoop(c.par, result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, k)
	case tensor.Uint8:
		binaryLoop(c.par, result.AsUint8(), a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, k)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

// binaryLoop applies the kernel over dst. The same-shape fast path indexes
// all three slices directly; the broadcast path maps output coordinates back
// through zero-stride dimensions.
func binaryLoop[E number](cfg parallel.Config, dst, a, b []E, aShape, bShape, outShape tensor.Shape, k kernel) {
	apply := kernelFunc[E](k)

	if aShape.Equal(bShape) {
		parallel.For(len(dst), func(i int) {
			dst[i] = apply(a[i], b[i])
		}, cfg)
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)

	parallel.For(len(dst), func(i int) {
		dst[i] = apply(a[flatIndex(i, outStrides, aStrides)], b[flatIndex(i, outStrides, bStrides)])
	}, cfg)
}

func kernelFunc[E number](k kernel) func(E, E) E {
	switch k {
	case addKernel:
		return func(x, y E) E { return x + y }
	case subKernel:
		return func(x, y E) E { return x - y }
	case mulKernel:
		return func(x, y E) E { return x * y }
	case divKernel:
		return func(x, y E) E { return x / y }
	default:
		panic("unknown kernel")
	}
}

// broadcastStrides computes strides for reading inShape as if it had
// outShape: stretched dimensions (size 1 or missing) get stride 0.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	offset := outDim - len(inShape)
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}
	return strides
}

// flatIndex maps a flat output index to the flat input index under the
// broadcast-adjusted strides.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flat += coord * inStrides[i]
	}
	return flat
}
