package cpu

import (
	"fmt"

	"github.com/weft-ml/weft/internal/tensor"
)

// AddScalar adds a scalar to each element.
func (c *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := c.alloc("addScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		scalarLoop(result.AsFloat32(), x.AsFloat32(), scalar.(float32), func(v, s float32) float32 { return v + s })
	case tensor.Float64:
		scalarLoop(result.AsFloat64(), x.AsFloat64(), scalar.(float64), func(v, s float64) float64 { return v + s })
	case tensor.Int32:
		scalarLoop(result.AsInt32(), x.AsInt32(), scalar.(int32), func(v, s int32) int32 { return v + s })
	case tensor.Int64:
		scalarLoop(result.AsInt64(), x.AsInt64(), scalar.(int64), func(v, s int64) int64 { return v + s })
	case tensor.Uint8:
		scalarLoop(result.AsUint8(), x.AsUint8(), scalar.(uint8), func(v, s uint8) uint8 { return v + s })
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %s", x.DType()))
	}
	return result
}

// MulScalar multiplies each element by a scalar.
func (c *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := c.alloc("mulScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		scalarLoop(result.AsFloat32(), x.AsFloat32(), scalar.(float32), func(v, s float32) float32 { return v * s })
	case tensor.Float64:
		scalarLoop(result.AsFloat64(), x.AsFloat64(), scalar.(float64), func(v, s float64) float64 { return v * s })
	case tensor.Int32:
		scalarLoop(result.AsInt32(), x.AsInt32(), scalar.(int32), func(v, s int32) int32 { return v * s })
	case tensor.Int64:
		scalarLoop(result.AsInt64(), x.AsInt64(), scalar.(int64), func(v, s int64) int64 { return v * s })
	case tensor.Uint8:
		scalarLoop(result.AsUint8(), x.AsUint8(), scalar.(uint8), func(v, s uint8) uint8 { return v * s })
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}
	return result
}

func scalarLoop[E number](dst, src []E, s E, op func(E, E) E) {
	for i, v := range src {
		dst[i] = op(v, s)
	}
}
