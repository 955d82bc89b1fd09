// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend provides a registry of compute backends selectable by
// device name.
//
// Backend packages register themselves at import time. Importing
// backend/all links in every backend shipped with the library:
//
//	import (
//	    "github.com/weft-ml/weft/backend"
//	    _ "github.com/weft-ml/weft/backend/all"
//	)
//
//	func main() {
//	    b, err := backend.New()
//	    ...
//	}
//
// The default device is selected with the WEFT_DEVICE environment variable
// and falls back to "cpu" when unset or when the requested device cannot be
// initialized.
package backend

import (
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/weft-ml/weft/tensor"
)

// DeviceEnv is the environment variable naming the default device.
const DeviceEnv = "WEFT_DEVICE"

// Constructor creates a backend instance, or returns an error when the
// device is not usable on this system.
type Constructor func() (tensor.Backend, error)

var (
	mu       sync.Mutex
	registry = make(map[string]Constructor)
)

// Register makes a backend constructor available under a device kind name
// (e.g. "cpu", "webgpu"). It is called from backend package init functions
// and panics on duplicate registration.
func Register(name string, c Constructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		panic("backend: duplicate registration of " + name)
	}
	registry[name] = c
}

// List returns the names of all registered backends in sorted order.
func List() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewByName creates the backend for a device name. The name is parsed with
// the same rules as tensor.ParseDevice, so aliases ("gpu") and indexed forms
// ("cuda:1") resolve to their device kind before the registry lookup.
func NewByName(name string) (tensor.Backend, error) {
	dev, err := tensor.ParseDevice(name)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	c, exists := registry[dev.Kind.String()]
	mu.Unlock()
	if !exists {
		return nil, errors.Errorf("backend: no backend registered for device %q (registered: %v)",
			name, List())
	}

	b, err := c()
	if err != nil {
		return nil, errors.Wrapf(err, "backend: failed to initialize %q", dev.Kind)
	}
	return b, nil
}

// Available reports whether the named backend is registered and can be
// initialized on this system.
func Available(name string) bool {
	b, err := NewByName(name)
	if err != nil {
		return false
	}
	if r, ok := b.(interface{ Release() }); ok {
		r.Release()
	}
	return true
}

// New creates the default backend. The device is taken from WEFT_DEVICE when
// set, otherwise "cpu". If the requested device cannot be initialized, New
// logs a warning and falls back to the CPU backend.
func New() (tensor.Backend, error) {
	name := os.Getenv(DeviceEnv)
	if name == "" {
		return NewByName("cpu")
	}

	b, err := NewByName(name)
	if err != nil {
		klog.Warningf("backend: %s=%q unavailable, falling back to cpu: %v", DeviceEnv, name, err)
		return NewByName("cpu")
	}
	return b, nil
}

// MustNew is like New but panics on error. Intended for examples and tests.
func MustNew() tensor.Backend {
	b, err := New()
	if err != nil {
		panic(err)
	}
	return b
}
