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

import (
	"slices"
	"testing"
)

func TestAlignedSize(t *testing.T) {
	tests := []struct {
		size, lanes, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{799, 32, 800},
		{800, 32, 800},
		{7, 1, 7},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := AlignedSize(tt.size, tt.lanes); got != tt.want {
			t.Errorf("AlignedSize(%d, %d) = %d, want %d", tt.size, tt.lanes, got, tt.want)
		}
		if !IsAligned(AlignedSize(tt.size, tt.lanes), tt.lanes) {
			t.Errorf("IsAligned(AlignedSize(%d, %d)) = false", tt.size, tt.lanes)
		}
	}
	if IsAligned(9, 8) {
		t.Error("IsAligned(9, 8) = true")
	}
}

func TestPadTail(t *testing.T) {
	s := []float32{1, 2, 3, 0, 0, 0, 0, 0}
	PadTail(s, 3)
	want := []float32{1, 2, 3, 3, 3, 3, 3, 3}
	if !slices.Equal(s, want) {
		t.Errorf("PadTail = %v, want %v", s, want)
	}

	full := []int{4, 5}
	PadTail(full, 2)
	if !slices.Equal(full, []int{4, 5}) {
		t.Errorf("PadTail on a full slice changed it: %v", full)
	}
}

func TestTailMask(t *testing.T) {
	for _, tt := range []struct{ count, lanes, want int }{
		{3, 8, 3}, {0, 4, 0}, {-1, 4, 0}, {9, 8, 8},
	} {
		m := TailMask[float64](tt.count, tt.lanes)
		if m.NumLanes() != tt.lanes || m.CountTrue() != tt.want {
			t.Errorf("TailMask(%d, %d): %d lanes, %d set; want %d, %d",
				tt.count, tt.lanes, m.NumLanes(), m.CountTrue(), tt.lanes, tt.want)
		}
		for i := range tt.want {
			if !m.GetBit(i) {
				t.Errorf("TailMask(%d, %d): lane %d not set", tt.count, tt.lanes, i)
			}
		}
	}
}
