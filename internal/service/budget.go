// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"runtime/metrics"
	"time"

	"github.com/jonboulle/clockwork"
)

// MemorySampler reports the current heap usage in bytes.
type MemorySampler func() uint64

const heapObjectsMetric = "/memory/classes/heap/objects:bytes"

// HeapSampler reads live heap bytes from runtime/metrics, which does not
// stop the world.
func HeapSampler() uint64 {
	sample := []metrics.Sample{{Name: heapObjectsMetric}}
	metrics.Read(sample)
	if sample[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return sample[0].Value.Uint64()
}

// Budget bounds one import or export pass by wall-clock time and heap size.
// A zero duration or limit disables that bound.
type Budget struct {
	clock    clockwork.Clock
	deadline time.Time
	limit    uint64
	sample   MemorySampler
}

func NewBudget(clock clockwork.Clock, d time.Duration, limit uint64, sample MemorySampler) *Budget {
	b := &Budget{clock: clock, limit: limit, sample: sample}
	if d > 0 {
		b.deadline = clock.Now().Add(d)
	}
	if b.sample == nil {
		b.sample = HeapSampler
	}
	return b
}

// Exceeded reports which bound, if any, ran out: "time" or "memory".
func (b *Budget) Exceeded() (string, bool) {
	if !b.deadline.IsZero() && !b.clock.Now().Before(b.deadline) {
		return "time", true
	}
	if b.limit > 0 && b.sample() >= b.limit {
		return "memory", true
	}
	return "", false
}
