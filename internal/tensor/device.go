package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DeviceKind enumerates the families of compute devices a tensor can live on.
type DeviceKind int

// Supported device kinds.
const (
	KindCPU DeviceKind = iota
	KindCUDA
	KindWebGPU
	KindMetal
	KindVulkan
)

// String returns the lowercase name of the device kind.
func (k DeviceKind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindCUDA:
		return "cuda"
	case KindWebGPU:
		return "webgpu"
	case KindMetal:
		return "metal"
	case KindVulkan:
		return "vulkan"
	default:
		return "unknown"
	}
}

// Device identifies a distinct compute/memory domain: a kind plus a device
// index within that kind. Every tensor is bound to exactly one Device at
// allocation time; the binding never changes except through an explicit copy.
type Device struct {
	Kind  DeviceKind
	Index int
}

// Canonical devices. GPU kinds refer to the first device of their kind;
// additional devices are addressed by index ("cuda:1").
var (
	CPU    = Device{Kind: KindCPU}
	CUDA   = Device{Kind: KindCUDA}
	WebGPU = Device{Kind: KindWebGPU}
	Metal  = Device{Kind: KindMetal}
	Vulkan = Device{Kind: KindVulkan}
)

// String returns the canonical device name: "cpu" for the CPU, and
// "kind:index" for accelerators ("cuda:0", "webgpu:1").
func (d Device) String() string {
	if d.Kind == KindCPU {
		return "cpu"
	}
	return fmt.Sprintf("%s:%d", d.Kind, d.Index)
}

// ParseDevice parses a device name into a Device.
//
// Accepted forms are a bare kind name ("cpu", "cuda", "webgpu", "metal",
// "vulkan"), which resolves to the first device of that kind, or
// "kind:index" for a specific device ("cuda:1"). Parsing is
// case-insensitive. "gpu" is accepted as an alias for "webgpu".
func ParseDevice(name string) (Device, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return Device{}, errors.New("empty device name")
	}

	kindName, indexPart, hasIndex := strings.Cut(s, ":")

	var kind DeviceKind
	switch kindName {
	case "cpu":
		kind = KindCPU
	case "cuda":
		kind = KindCUDA
	case "webgpu", "gpu":
		kind = KindWebGPU
	case "metal":
		kind = KindMetal
	case "vulkan":
		kind = KindVulkan
	default:
		return Device{}, errors.Errorf("unknown device %q", name)
	}

	if !hasIndex {
		return Device{Kind: kind}, nil
	}
	if kind == KindCPU {
		return Device{}, errors.Errorf("device %q: cpu does not take an index", name)
	}
	idx, err := strconv.Atoi(indexPart)
	if err != nil || idx < 0 {
		return Device{}, errors.Errorf("device %q: invalid index %q", name, indexPart)
	}
	return Device{Kind: kind, Index: idx}, nil
}

// MustParseDevice is ParseDevice that panics on error. Intended for
// package-level defaults and tests.
func MustParseDevice(name string) Device {
	d, err := ParseDevice(name)
	if err != nil {
		panic(err)
	}
	return d
}

// IsCPU reports whether the device is the CPU.
func (d Device) IsCPU() bool {
	return d.Kind == KindCPU
}
