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

//go:build amd64 && !goexperiment.simd

package hwy

import "golang.org/x/sys/cpu"

// Fallback for when GOEXPERIMENT=simd is not enabled. The packed kernels are
// not compiled in, so the dispatch level stays scalar whatever the CPU
// reports. CPUFeatures still describes the hardware so a benchmark run can
// say what it is leaving on the table.

func init() {
	setScalarMode()
}

// CPUFeatures lists the packed float extensions the CPU reports.
func CPUFeatures() []string {
	var feats []string
	if cpu.X86.HasSSE2 {
		feats = append(feats, "sse2")
	}
	if cpu.X86.HasSSE41 {
		feats = append(feats, "sse4.1")
	}
	if cpu.X86.HasAVX {
		feats = append(feats, "avx")
	}
	if cpu.X86.HasAVX2 {
		feats = append(feats, "avx2")
	}
	if cpu.X86.HasFMA {
		feats = append(feats, "fma")
	}
	if cpu.X86.HasAVX512F {
		feats = append(feats, "avx512f")
	}
	return feats
}
