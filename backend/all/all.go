// Copyright 2026 Weft ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package all links every backend shipped with the library into the
// registry. Import it for side effects:
//
//	import _ "github.com/weft-ml/weft/backend/all"
package all

import (
	_ "github.com/weft-ml/weft/backend/cpu"
	_ "github.com/weft-ml/weft/backend/cuda"
	_ "github.com/weft-ml/weft/backend/webgpu"
)
