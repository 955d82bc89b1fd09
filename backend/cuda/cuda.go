// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

//go:build !cuda

// Package cuda provides the NVIDIA CUDA backend for tensor operations.
//
// This build does not include CUDA support. The package still registers
// the "cuda" device so device selection degrades gracefully: requesting
// "cuda" yields an initialization error rather than an unknown-device
// error, and test helpers skip instead of failing.
//
// Build with -tags cuda on Linux with the CUDA toolkit installed to enable
// the real backend.
package cuda

import (
	"github.com/pkg/errors"

	"github.com/weft-ml/weft/backend"
	"github.com/weft-ml/weft/tensor"
)

func init() {
	backend.Register("cuda", func() (tensor.Backend, error) {
		return nil, errors.New("cuda: not supported in this build (build with -tags cuda on Linux)")
	})
}

// IsAvailable reports whether the CUDA backend can be used. Always false
// in builds without the cuda tag.
func IsAvailable() bool {
	return false
}
