// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/weft-ml/weft/internal/tensor"

// Backend defines the interface that all compute backends implement.
// Backends handle the actual computation for tensor operations.
//
// Every operation allocates its result on the backend's own device, so a
// result's Device always matches its operands'. Backends may assume operands
// have passed the device guard in the op layer; the one exception is Gather,
// whose index argument is exempt and may arrive on any device.
//
// Implementations:
//   - backend/cpu: pure Go with chunked parallel loops
//   - backend/webgpu: cross-platform GPU compute via WebGPU
//   - backend/cuda: NVIDIA GPU (requires a CUDA-enabled build)
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend = tensor.Backend
