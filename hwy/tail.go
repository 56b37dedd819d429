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

package hwy

// AlignedSize rounds size up to the next multiple of lanes. Kernels that
// only consume whole vectors size their input buffers with it.
//
// Example:
//
//	padded := hwy.AlignedSize(width, kernel.Lanes())
//	x0 := make([]float32, padded)
func AlignedSize(size, lanes int) int {
	if lanes <= 1 {
		return size
	}
	return (size + lanes - 1) / lanes * lanes
}

// IsAligned reports whether size is a multiple of lanes.
func IsAligned(size, lanes int) bool {
	return lanes <= 1 || size%lanes == 0
}

// PadTail fills s[n:] with copies of s[n-1], so the padding lanes of the
// final vector hold a real element instead of garbage. A lane loop whose
// trip count depends on its inputs then runs no longer on the padding than
// on the element it copies. n must be in [1, len(s)].
func PadTail[T any](s []T, n int) {
	last := s[n-1]
	for i := n; i < len(s); i++ {
		s[i] = last
	}
}

// TailMask returns a mask over lanes lanes with the first count set, the
// lanes of a padded vector that hold real elements.
func TailMask[T Floats](count, lanes int) Mask[T] {
	count = min(max(count, 0), lanes)
	bits := make([]bool, lanes)
	for i := range count {
		bits[i] = true
	}
	return Mask[T]{bits: bits}
}
