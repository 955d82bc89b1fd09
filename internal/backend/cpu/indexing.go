package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/tensor"
)

// Gather selects elements along dim using an index tensor, in the manner of
// torch.gather: output[i...] = input[..., index[i...], ...] with the index
// substituted at the gather dimension.
//
// The index tensor must have dtype int32 or int64 and the same rank as the
// input; its shape must match the input everywhere except the gather
// dimension. The index tensor is read host-side and may live on any device.
func (c *Backend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	ndim := len(x.Shape())
	dim = normalizeDim("gather", dim, ndim)

	indexShape := index.Shape()
	if len(indexShape) != ndim {
		panic(fmt.Sprintf("gather: index rank %d != input rank %d", len(indexShape), ndim))
	}
	for i := 0; i < ndim; i++ {
		if i != dim && indexShape[i] != x.Shape()[i] {
			panic(fmt.Sprintf("gather: index shape mismatch at dim %d: %d != %d",
				i, indexShape[i], x.Shape()[i]))
		}
	}

	indices := indexValues(index)
	result := c.alloc("gather", indexShape, x.DType())
	gatherBytes(result, x, indices, dim)
	return result
}

// indexValues reads an index tensor into []int, accepting int32 and int64.
func indexValues(index *tensor.RawTensor) []int {
	switch index.DType() {
	case tensor.Int32:
		src := index.AsInt32()
		out := make([]int, len(src))
		for i, v := range src {
			out[i] = int(v)
		}
		return out
	case tensor.Int64:
		src := index.AsInt64()
		out := make([]int, len(src))
		for i, v := range src {
			out[i] = int(v)
		}
		return out
	default:
		panic(fmt.Sprintf("gather: index tensor must have dtype int32 or int64, got %s", index.DType()))
	}
}

// gatherBytes copies gathered elements byte-wise so one implementation
// serves every dtype.
func gatherBytes(dst, src *tensor.RawTensor, indices []int, dim int) {
	srcShape := src.Shape()
	dstShape := dst.Shape()
	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()
	elemSize := src.DType().Size()

	srcData := src.Data()
	dstData := dst.Data()
	ndim := len(srcShape)

	for i := range indices {
		idx := indices[i]
		if idx < 0 || idx >= srcShape[dim] {
			panic(fmt.Sprintf("gather: index %d out of range for dimension %d (size %d)", idx, dim, srcShape[dim]))
		}

		remaining := i
		srcIdx := 0
		for d := 0; d < ndim; d++ {
			coord := remaining / dstStrides[d]
			remaining %= dstStrides[d]
			if d == dim {
				coord = idx
			}
			srcIdx += coord * srcStrides[d]
		}
		copy(dstData[i*elemSize:(i+1)*elemSize], srcData[srcIdx*elemSize:(srcIdx+1)*elemSize])
	}
}

// Where selects elements from x where condition is true, else from y.
// All three tensors must have the same shape; condition must be bool.
func (c *Backend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", condition.DType()))
	}
	if !condition.Shape().Equal(x.Shape()) || !x.Shape().Equal(y.Shape()) {
		panic(fmt.Sprintf("where: shape mismatch: cond %v, x %v, y %v",
			condition.Shape(), x.Shape(), y.Shape()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}

	result := c.alloc("where", x.Shape(), x.DType())
	cond := condition.AsBool()
	elemSize := x.DType().Size()
	xData, yData, dstData := x.Data(), y.Data(), result.Data()

	for i, take := range cond {
		src := yData
		if take {
			src = xData
		}
		copy(dstData[i*elemSize:(i+1)*elemSize], src[i*elemSize:(i+1)*elemSize])
	}
	return result
}
