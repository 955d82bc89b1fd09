// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package devicetest provides helpers for writing device-agnostic tests.
//
// Tests that use Open run on the device named by the -device test flag
// (default "cpu"):
//
//	go test ./... -device=webgpu
//
// A bare GPU kind name resolves to the first device of that kind, so
// -device=cuda runs on "cuda:0". When the requested device cannot be
// initialized on the host, tests that use Open skip instead of failing, so
// one test suite runs unchanged on CPU-only and GPU machines.
//
// A typical device-agnostic test:
//
//	func TestSoftmaxDeviceAgnostic(t *testing.T) {
//	    b := devicetest.Open(t)
//	    x := tensor.Randn[float32](tensor.Shape{4, 8}, b)
//	    y := x.Exp()
//	    devicetest.RequireOn(t, b.Device(), y.Raw())
//	}
package devicetest

import (
	"flag"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weft-ml/weft/backend"
	_ "github.com/weft-ml/weft/backend/all"
	"github.com/weft-ml/weft/tensor"
)

var deviceFlag = flag.String("device", "", "device to run device-agnostic tests on (default cpu)")

// DeviceName returns the device the test run targets: the -device flag when
// set, then the WEFT_DEVICE environment variable, then "cpu".
func DeviceName() string {
	if *deviceFlag != "" {
		return *deviceFlag
	}
	if env := os.Getenv(backend.DeviceEnv); env != "" {
		return env
	}
	return "cpu"
}

// Device returns the parsed target device. It fails the test on an
// unparseable -device value rather than silently running on the CPU.
func Device(t *testing.T) tensor.Device {
	t.Helper()
	d, err := tensor.ParseDevice(DeviceName())
	require.NoError(t, err, "invalid -device value %q", DeviceName())
	return d
}

// Open returns a backend for the target device, skipping the test when the
// device is not usable on this host. Resources are released when the test
// finishes.
func Open(t *testing.T) tensor.Backend {
	t.Helper()
	name := DeviceName()
	if _, err := tensor.ParseDevice(name); err != nil {
		t.Fatalf("invalid -device value %q: %v", name, err)
	}

	b, err := backend.NewByName(name)
	if err != nil {
		t.Skipf("device %q not available: %v", name, err)
	}
	t.Cleanup(func() { release(b) })
	return b
}

// OnEach runs fn as a subtest on every backend available on this host. Use
// it for agnosticism checks that compare behavior across devices in a
// single run.
func OnEach(t *testing.T, fn func(t *testing.T, b tensor.Backend)) {
	t.Helper()
	for _, name := range backend.List() {
		b, err := backend.NewByName(name)
		if err != nil {
			t.Logf("skipping device %q: %v", name, err)
			continue
		}
		t.Run(name, func(t *testing.T) {
			t.Cleanup(func() { release(b) })
			fn(t, b)
		})
	}
}

// RequireOn asserts that every tensor lives on the given device. Use it to
// check device consistency: results must come back on the device their
// inputs live on.
func RequireOn(t *testing.T, device tensor.Device, tensors ...*tensor.RawTensor) {
	t.Helper()
	for i, raw := range tensors {
		require.Equal(t, device, raw.Device(),
			"tensor %d is on %s, want %s", i, raw.Device(), device)
	}
}

// RequireAllClose asserts that two float tensors agree element-wise within
// an absolute tolerance. Use it to check device agnosticism: the same
// computation on different devices must produce the same numbers up to
// floating-point error.
func RequireAllClose(t *testing.T, got, want *tensor.RawTensor, atol float64) {
	t.Helper()
	require.True(t, got.Shape().Equal(want.Shape()),
		"shape mismatch: got %v, want %v", got.Shape(), want.Shape())
	require.Equal(t, want.DType(), got.DType(),
		"dtype mismatch: got %v, want %v", got.DType(), want.DType())

	gv := floatValues(t, got)
	wv := floatValues(t, want)
	for i := range gv {
		diff := math.Abs(gv[i] - wv[i])
		require.LessOrEqual(t, diff, atol,
			"element %d: got %v, want %v (atol %v)", i, gv[i], wv[i], atol)
	}
}

func floatValues(t *testing.T, raw *tensor.RawTensor) []float64 {
	t.Helper()
	switch raw.DType() {
	case tensor.Float32:
		src := raw.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	case tensor.Float64:
		return raw.AsFloat64()
	default:
		t.Fatalf("RequireAllClose supports float tensors only, got %v", raw.DType())
		return nil
	}
}

func release(b tensor.Backend) {
	if r, ok := b.(interface{ Release() }); ok {
		r.Release()
	}
}
