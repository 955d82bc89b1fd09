package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/tensor"
)

// Sum reduces the tensor to its total sum. The result is a single-element
// tensor of the same dtype.
func (c *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := c.alloc("sum", tensor.Shape{1}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumSlice(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumSlice(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = sumSlice(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sumSlice(x.AsInt64())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

// SumDim sums along a dimension. With keepDim, the reduced dimension is kept
// with size 1; otherwise it is dropped.
func (c *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("sumDim", dim, len(shape))

	outShape := reducedShape(shape, dim, keepDim)
	result := c.alloc("sumDim", outShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		reduceDim(result.AsFloat32(), x.AsFloat32(), shape, dim)
	case tensor.Float64:
		reduceDim(result.AsFloat64(), x.AsFloat64(), shape, dim)
	case tensor.Int32:
		reduceDim(result.AsInt32(), x.AsInt32(), shape, dim)
	case tensor.Int64:
		reduceDim(result.AsInt64(), x.AsInt64(), shape, dim)
	default:
		panic(fmt.Sprintf("sumDim: unsupported dtype %s", x.DType()))
	}
	return result
}

// MeanDim averages along a dimension. Float tensors only.
func (c *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = normalizeDim("meanDim", dim, len(shape))
	n := shape[dim]

	sum := c.SumDim(x, dim, keepDim)
	switch x.DType() {
	case tensor.Float32:
		return c.MulScalar(sum, 1.0/float32(n))
	case tensor.Float64:
		return c.MulScalar(sum, 1.0/float64(n))
	default:
		panic(fmt.Sprintf("meanDim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
}

func sumSlice[E number](s []E) E {
	var sum E
	for _, v := range s {
		sum += v
	}
	return sum
}

// reduceDim accumulates src into dst along dim. Iteration is expressed as
// outer * reduced * inner, where inner is the product of dimensions after dim.
func reduceDim[E number](dst, src []E, shape tensor.Shape, dim int) {
	inner := 1
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	reduceN := shape[dim]
	outer := len(src) / (inner * reduceN)

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			var sum E
			base := o * reduceN * inner
			for r := 0; r < reduceN; r++ {
				sum += src[base+r*inner+in]
			}
			dst[o*inner+in] = sum
		}
	}
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	out := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		switch {
		case i != dim:
			out = append(out, d)
		case keepDim:
			out = append(out, 1)
		}
	}
	if len(out) == 0 {
		out = tensor.Shape{1}
	}
	return out
}

func normalizeDim(op string, dim, ndim int) int {
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("%s: invalid dim %d for %dD tensor", op, dim, ndim))
	}
	return dim
}
