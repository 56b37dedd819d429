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

package timing

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Recorder writes one "frame ticks" line per frame, the format read by the
// plotting scripts that compare strategies.
type Recorder struct {
	w *bufio.Writer
	c io.Closer
}

// NewRecorder writes to w. Close flushes but does not close w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

// CreateRecorder creates (or truncates) the file at path.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cycle record: %w", err)
	}
	return &Recorder{w: bufio.NewWriter(f), c: f}, nil
}

// Record appends one line.
func (r *Recorder) Record(frame int, ticks uint64) error {
	_, err := fmt.Fprintf(r.w, "%d %d\n", frame, ticks)
	return err
}

// Close flushes buffered lines and closes the file opened by
// CreateRecorder.
func (r *Recorder) Close() error {
	err := r.w.Flush()
	if r.c != nil {
		if cerr := r.c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
