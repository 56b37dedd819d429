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

// Package timing measures the frame loop: a wall-clock frame rate and the
// raw CPU-cycle cost of each displayed frame.
//
// FPSTracker and CycleTracker are independent values owned by the caller.
// Create them once, call Update after every displayed frame, and drop them at
// shutdown:
//
//	fps := timing.NewFPSTracker(500*time.Millisecond, text)
//	cyc := timing.NewCycleTracker(500*time.Millisecond, text,
//	    timing.WithPosition(0, 16), timing.WithRecorder(rec))
//	for running {
//	    renderer.RunFrame()
//	    if err := fps.Update(); err != nil { ... }
//	    if err := cyc.Update(); err != nil { ... }
//	}
//
// Both trackers redraw their current rate as "%.2f" through a TextRenderer
// on every Update. The cycle tracker also keeps the ticks elapsed since its
// previous Update and can append them to a Recorder as "frame ticks" lines.
//
// Ticks come from the time-stamp counter on amd64 and from the monotonic
// clock, in nanoseconds, elsewhere. See CounterName.
package timing
