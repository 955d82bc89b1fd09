package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros on b's device.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err)
	}
	// Memory from NewRaw is already zeroed.
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones on b's device.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full(shape, one[T](), b)
}

// Full creates a tensor filled with value on b's device.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// ZerosLike creates a zero tensor with the same shape as t, allocated on
// t's backend and therefore on t's device. Never allocates on a default
// device: the input's placement is always propagated.
func ZerosLike[T DType, B Backend](t *Tensor[T, B]) *Tensor[T, B] {
	return Zeros[T, B](t.Shape(), t.Backend())
}

// OnesLike creates a ones tensor with the same shape and device as t.
func OnesLike[T DType, B Backend](t *Tensor[T, B]) *Tensor[T, B] {
	return Ones[T, B](t.Shape(), t.Backend())
}

// FullLike creates a tensor with the same shape and device as t, filled
// with value.
func FullLike[T DType, B Backend](t *Tensor[T, B], value T) *Tensor[T, B] {
	return Full(t.Shape(), value, t.Backend())
}

// Randn creates a tensor of normally distributed values (mean 0, std 1)
// using the Box-Muller transform. Float types only.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	switch d := any(data).(type) {
	case []float32:
		for i := 0; i < len(d); i += 2 {
			z0, z1 := boxMuller()
			d[i] = float32(z0)
			if i+1 < len(d) {
				d[i+1] = float32(z1)
			}
		}
	case []float64:
		for i := 0; i < len(d); i += 2 {
			z0, z1 := boxMuller()
			d[i] = z0
			if i+1 < len(d) {
				d[i+1] = z1
			}
		}
	default:
		panic("Randn only supports float32 and float64")
	}
	return t
}

func boxMuller() (float64, float64) {
	u1 := rand.Float64() //nolint:gosec // math/rand is intentional for reproducible numerics
	u2 := rand.Float64() //nolint:gosec // math/rand is intentional for reproducible numerics
	r := math.Sqrt(-2.0 * math.Log(u1))
	return r * math.Cos(2.0*math.Pi*u2), r * math.Sin(2.0*math.Pi*u2)
}

// Rand creates a tensor of uniform values in [0, 1). Float types only.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	switch d := any(data).(type) {
	case []float32:
		for i := range d {
			d[i] = float32(rand.Float64()) //nolint:gosec // math/rand is intentional
		}
	case []float64:
		for i := range d {
			d[i] = rand.Float64() //nolint:gosec // math/rand is intentional
		}
	default:
		panic("Rand only supports float32 and float64")
	}
	return t
}

// Arange creates a 1D tensor with values [start, end) stepping by one.
// Numeric types only.
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	n := arangeLen(start, end)
	if n <= 0 {
		panic("end must be greater than start")
	}

	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()

	switch d := any(data).(type) {
	case []float32:
		s := any(start).(float32)
		for i := range d {
			d[i] = s + float32(i)
		}
	case []float64:
		s := any(start).(float64)
		for i := range d {
			d[i] = s + float64(i)
		}
	case []int32:
		s := any(start).(int32)
		for i := range d {
			d[i] = s + int32(i) //nolint:gosec // i is bounded by n
		}
	case []int64:
		s := any(start).(int64)
		for i := range d {
			d[i] = s + int64(i)
		}
	case []uint8:
		s := any(start).(uint8)
		for i := range d {
			d[i] = s + uint8(i) //nolint:gosec // i is bounded by n
		}
	default:
		panic("Arange not supported for this type")
	}
	return t
}

func arangeLen[T DType](start, end T) int {
	switch s := any(start).(type) {
	case float32:
		return int(any(end).(float32) - s)
	case float64:
		return int(any(end).(float64) - s)
	case int32:
		return int(any(end).(int32) - s)
	case int64:
		return int(any(end).(int64) - s)
	case uint8:
		return int(any(end).(uint8) - s)
	default:
		panic("Arange not supported for this type")
	}
}

// Eye creates an n-by-n identity matrix on b's device.
func Eye[T DType, B Backend](n int, b B) *Tensor[T, B] {
	t := Zeros[T, B](Shape{n, n}, b)
	v := one[T]()
	for i := 0; i < n; i++ {
		t.Set(v, i, i)
	}
	return t
}
