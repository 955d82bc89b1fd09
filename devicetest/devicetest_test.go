// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package devicetest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weft-ml/weft/backend"
	"github.com/weft-ml/weft/devicetest"
	"github.com/weft-ml/weft/tensor"
)

func TestDeviceNameDefaultsToCPU(t *testing.T) {
	t.Setenv(backend.DeviceEnv, "")
	assert.Equal(t, "cpu", devicetest.DeviceName())
}

func TestDeviceNameHonorsEnv(t *testing.T) {
	t.Setenv(backend.DeviceEnv, "webgpu")
	assert.Equal(t, "webgpu", devicetest.DeviceName())
}

func TestBareCUDAResolvesToFirstIndex(t *testing.T) {
	t.Setenv(backend.DeviceEnv, "cuda")
	d := devicetest.Device(t)
	assert.Equal(t, tensor.KindCUDA, d.Kind)
	assert.Equal(t, 0, d.Index)
}

func TestOpenReturnsTargetBackend(t *testing.T) {
	t.Setenv(backend.DeviceEnv, "")
	b := devicetest.Open(t)
	assert.Equal(t, tensor.CPU, b.Device())
}

func TestRequireOn(t *testing.T) {
	t.Setenv(backend.DeviceEnv, "")
	b := devicetest.Open(t)

	x := tensor.Ones[float32](tensor.Shape{2, 2}, b)
	y := x.Add(x)
	devicetest.RequireOn(t, b.Device(), x.Raw(), y.Raw())
}

func TestRequireAllClose(t *testing.T) {
	b, err := backend.NewByName("cpu")
	require.NoError(t, err)

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, b)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float32{1.0000001, 2, 2.9999999}, tensor.Shape{3}, b)
	require.NoError(t, err)

	devicetest.RequireAllClose(t, x.Raw(), y.Raw(), 1e-5)
}

// TestAgnosticismAcrossDevices computes the same expression on every
// available device and compares against the CPU reference.
func TestAgnosticismAcrossDevices(t *testing.T) {
	ref, err := backend.NewByName("cpu")
	require.NoError(t, err)

	input := []float32{0.5, 1.5, 2.5, 3.5}
	x, err := tensor.FromSlice(input, tensor.Shape{2, 2}, ref)
	require.NoError(t, err)
	want := x.Exp().MulScalar(0.5).Sum()

	devicetest.OnEach(t, func(t *testing.T, b tensor.Backend) {
		y, err := tensor.FromSlice(input, tensor.Shape{2, 2}, b)
		require.NoError(t, err)

		got := y.Exp().MulScalar(0.5).Sum()
		devicetest.RequireOn(t, b.Device(), got.Raw())
		devicetest.RequireAllClose(t, got.Raw(), want.Raw(), 1e-4)
	})
}
