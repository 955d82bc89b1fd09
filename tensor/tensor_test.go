// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-ml/weft/backend/cpu"
	"github.com/weft-ml/weft/tensor"
)

// TestBackendInterface verifies that cpu.Backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.True(t, raw.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
	assert.Len(t, raw.AsFloat32(), 6)

	clone := raw.Clone()
	require.NotNil(t, clone)
	assert.False(t, raw.IsUnique())
	clone.Release()
	assert.True(t, raw.IsUnique())
}

func TestCreationOpsBindToBackendDevice(t *testing.T) {
	b := cpu.New()

	assert.Equal(t, tensor.CPU, tensor.Zeros[float32](tensor.Shape{2, 2}, b).Device())
	assert.Equal(t, tensor.CPU, tensor.Ones[float64](tensor.Shape{3}, b).Device())
	assert.Equal(t, tensor.CPU, tensor.Full[int32](tensor.Shape{2}, 7, b).Device())
	assert.Equal(t, tensor.CPU, tensor.Randn[float32](tensor.Shape{4}, b).Device())
	assert.Equal(t, tensor.CPU, tensor.Arange[int64](0, 5, b).Device())
	assert.Equal(t, tensor.CPU, tensor.Eye[float32](3, b).Device())
}

func TestLikeHelpersPropagateDevice(t *testing.T) {
	b := cpu.New()
	x := tensor.Randn[float32](tensor.Shape{2, 3}, b)

	z := tensor.ZerosLike(x)
	assert.Equal(t, x.Device(), z.Device())
	assert.True(t, z.Shape().Equal(x.Shape()))
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, z.Data())

	o := tensor.OnesLike(x)
	assert.Equal(t, x.Device(), o.Device())
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, o.Data())

	f := tensor.FullLike(x, 2.5)
	assert.Equal(t, x.Device(), f.Device())
	assert.Equal(t, []float32{2.5, 2.5, 2.5, 2.5, 2.5, 2.5}, f.Data())
}

func TestOperationsStayOnDevice(t *testing.T) {
	b := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)

	results := []*tensor.RawTensor{
		x.Add(x).Raw(),
		x.Sub(x).Raw(),
		x.Mul(x).Raw(),
		x.MatMul(x).Raw(),
		x.AddScalar(1).Raw(),
		x.Exp().Raw(),
		x.Sum().Raw(),
		x.SumDim(0, false).Raw(),
		x.Reshape(4).Raw(),
		x.Transpose().Raw(),
	}
	for i, raw := range results {
		assert.Equal(t, tensor.CPU, raw.Device(), "result %d", i)
	}
}

func TestArithmetic(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2}, b)
	require.NoError(t, err)

	assert.Equal(t, []float32{6, 8, 10, 12}, x.Add(y).Data())
	assert.Equal(t, []float32{5, 12, 21, 32}, x.Mul(y).Data())
	assert.Equal(t, []float32{19, 22, 43, 50}, x.MatMul(y).Data())
	assert.InDelta(t, 10.0, float64(x.Sum().Item()), 1e-6)
}

func TestBroadcastingAdd(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, b)
	require.NoError(t, err)
	row, err := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3}, b)
	require.NoError(t, err)

	sum := x.Add(row)
	assert.True(t, sum.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, sum.Data())
}

func TestWhere(t *testing.T) {
	b := cpu.New()

	cond, err := tensor.FromSlice([]bool{true, false, true}, tensor.Shape{3}, b)
	require.NoError(t, err)
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, b)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{10, 20, 30}, tensor.Shape{3}, b)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 20, 3}, tensor.Where(cond, x, y).Data())
}

func TestGather(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{10, 20, 30, 40}, tensor.Shape{4}, b)
	require.NoError(t, err)
	idx, err := tensor.FromSlice([]int64{3, 0, 1}, tensor.Shape{3}, b)
	require.NoError(t, err)

	got := tensor.Gather(x, 0, idx)
	assert.Equal(t, []float32{40, 10, 20}, got.Data())
	assert.Equal(t, x.Device(), got.Device())
}

func TestCast(t *testing.T) {
	b := cpu.New()

	x, err := tensor.FromSlice([]float32{1.7, 2.2, 3.9}, tensor.Shape{3}, b)
	require.NoError(t, err)

	i := tensor.Cast[int32](x)
	assert.Equal(t, tensor.Int32, i.DType())
	assert.Equal(t, []int32{1, 2, 3}, i.Data())
	assert.Equal(t, x.Device(), i.Device())
}

func TestToCopiesOntoDestinationDevice(t *testing.T) {
	src := cpu.New()
	dst := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, src)
	require.NoError(t, err)

	y := tensor.To(x, dst)
	assert.Equal(t, dst.Device(), y.Device())
	assert.Equal(t, x.Data(), y.Data())

	// The copy is independent of the source.
	y.Data()[0] = 99
	assert.Equal(t, float32(1), x.Data()[0])
}

func TestMixedDevicePanics(t *testing.T) {
	b := cpu.New()

	x := tensor.Ones[float32](tensor.Shape{2}, b)
	raw, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.CUDA)
	require.NoError(t, err)
	y := tensor.New[float32](raw, b)

	assert.PanicsWithValue(t,
		"add: operands on different devices: cpu vs cuda:0",
		func() { x.Add(y) })
}

func TestParseDevice(t *testing.T) {
	d, err := tensor.ParseDevice("cuda:1")
	require.NoError(t, err)
	assert.Equal(t, tensor.KindCUDA, d.Kind)
	assert.Equal(t, 1, d.Index)
	assert.Equal(t, "cuda:1", d.String())

	_, err = tensor.ParseDevice("tpu")
	assert.Error(t, err)
}
