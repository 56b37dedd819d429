// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fractal

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports bad or missing numeric parameters. It is
	// raised before any frame runs and is fatal to startup.
	ErrConfiguration = errors.New("configuration error")

	// ErrDegenerateScale reports a zero scale, which would divide by zero in
	// the coordinate mapping. It wraps ErrConfiguration.
	ErrDegenerateScale = fmt.Errorf("%w: scale must be non-zero", ErrConfiguration)

	// ErrPresentation reports a failure of the presentation layer: locking
	// the frame buffer, rendering overlay text, writing a snapshot. Frames
	// completed before the failure stay valid.
	ErrPresentation = errors.New("presentation error")
)
