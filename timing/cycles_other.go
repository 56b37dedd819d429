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

//go:build !amd64

package timing

import "time"

// CounterName identifies the source of Cycles.
const CounterName = "monotonic-ns"

var epoch = time.Now()

// Cycles returns nanoseconds on the monotonic clock since package
// initialization. Platforms without a portable cycle counter use it in place
// of one.
func Cycles() uint64 {
	return uint64(time.Since(epoch))
}
