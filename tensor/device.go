// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/weft-ml/weft/internal/tensor"

// DeviceKind enumerates the families of compute devices a tensor can live on.
type DeviceKind = tensor.DeviceKind

// Supported device kinds.
const (
	KindCPU    DeviceKind = tensor.KindCPU
	KindCUDA   DeviceKind = tensor.KindCUDA
	KindWebGPU DeviceKind = tensor.KindWebGPU
	KindMetal  DeviceKind = tensor.KindMetal
	KindVulkan DeviceKind = tensor.KindVulkan
)

// Device identifies a distinct compute/memory domain: a kind plus a device
// index within that kind. Every tensor is bound to exactly one Device at
// allocation; the binding never changes except through an explicit To copy.
type Device = tensor.Device

// Canonical devices. GPU kinds refer to the first device of their kind;
// additional devices are addressed by index ("cuda:1").
var (
	CPU    = tensor.CPU
	CUDA   = tensor.CUDA
	WebGPU = tensor.WebGPU
	Metal  = tensor.Metal
	Vulkan = tensor.Vulkan
)

// ParseDevice parses a device name into a Device.
//
// Accepted forms are a bare kind name ("cpu", "cuda", "webgpu", "metal",
// "vulkan"), which resolves to the first device of that kind, or
// "kind:index" for a specific device ("cuda:1"). Parsing is
// case-insensitive. "gpu" is accepted as an alias for "webgpu".
func ParseDevice(name string) (Device, error) {
	return tensor.ParseDevice(name)
}

// MustParseDevice is ParseDevice that panics on error.
func MustParseDevice(name string) Device {
	return tensor.MustParseDevice(name)
}
