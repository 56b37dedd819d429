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
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/ajroetker/hwybrot/hwy"
	"github.com/samber/lo"
)

// Kernel evaluates escape counts for a batch of sample points.
//
// EscapeBatch writes counts[i] = Escape(p, x0[i], y0[i]) for every i in
// x0. len(x0) must be a multiple of Lanes(), and y0 and counts must be at
// least as long as x0. Kernels hold no per-call state and may be shared
// across goroutines.
type Kernel[T Float] interface {
	Name() string
	Lanes() int
	EscapeBatch(p *Params[T], x0, y0 []T, counts []uint32)
}

// Strategy is a registered evaluation strategy with kernels for both
// precisions.
type Strategy struct {
	Name string
	// Level is the instruction set the strategy targets.
	Level hwy.DispatchLevel
	// Priority orders strategies for Best; higher wins.
	Priority int
	// Unrolled is set for strategies that keep several independent vector
	// groups in flight per iteration.
	Unrolled bool

	available func() bool
	f32       Kernel[float32]
	f64       Kernel[float64]
}

// Available reports whether the running CPU supports the strategy.
func (s Strategy) Available() bool {
	return s.available == nil || s.available()
}

// KernelFor returns the strategy's kernel at precision T.
func KernelFor[T Float](s Strategy) Kernel[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(s.f32).(Kernel[T])
	default:
		return any(s.f64).(Kernel[T])
	}
}

var (
	registryMu sync.RWMutex
	registry   []Strategy
)

func register(s Strategy) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, s)
	slices.SortStableFunc(registry, func(a, b Strategy) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

func init() {
	register(Strategy{
		Name:     "scalar",
		Level:    hwy.DispatchScalar,
		Priority: 0,
		f32:      scalarKernel[float32]{},
		f64:      scalarKernel[float64]{},
	})
	register(Strategy{
		Name:     "portable",
		Level:    hwy.DispatchScalar,
		Priority: 5,
		f32:      portableKernel[float32]{},
		f64:      portableKernel[float64]{},
	})
}

// Strategies returns every strategy compiled into this binary, available
// or not, highest priority first.
func Strategies() []Strategy {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Clone(registry)
}

// AvailableStrategies returns the strategies the running CPU supports,
// highest priority first.
func AvailableStrategies() []Strategy {
	return lo.Filter(Strategies(), func(s Strategy, _ int) bool {
		return s.Available()
	})
}

// StrategyNames returns the names of the available strategies.
func StrategyNames() []string {
	return lo.Map(AvailableStrategies(), func(s Strategy, _ int) string {
		return s.Name
	})
}

// Best returns the highest-priority available strategy. The scalar
// strategy is always available, so Best never fails.
func Best() Strategy {
	s := AvailableStrategies()[0]
	Logger().Debug("selected strategy", "name", s.Name, "level", s.Level.String(), "target", hwy.CurrentName())
	return s
}

// Lookup returns the strategy with the given name. It fails with
// ErrConfiguration when the name is unknown or the CPU lacks the required
// instructions.
func Lookup(name string) (Strategy, error) {
	s, ok := lo.Find(Strategies(), func(s Strategy) bool {
		return s.Name == name
	})
	if !ok {
		return Strategy{}, fmt.Errorf("%w: unknown strategy %q (have %v)", ErrConfiguration, name,
			lo.Map(Strategies(), func(s Strategy, _ int) string { return s.Name }))
	}
	if !s.Available() {
		return Strategy{}, fmt.Errorf("%w: strategy %q needs %s, not supported by this CPU", ErrConfiguration, name, s.Level)
	}
	Logger().Debug("selected strategy", "name", s.Name, "level", s.Level.String())
	return s, nil
}

// storeCounts converts per-lane float counts to integers.
func storeCounts[T Float](lanes []T, counts []uint32) {
	for i, c := range lanes {
		counts[i] = uint32(c)
	}
}
