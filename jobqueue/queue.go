// Copyright (C) 2022-2023, VigilantDoomer
//
// This file is part of DrawSort program.
//
// DrawSort is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// DrawSort is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DrawSort.  If not, see <https://www.gnu.org/licenses/>.
// Package jobqueue implements a fixed size power of two queue for passing
// work from exactly one producer goroutine to exactly one consumer goroutine
// without locks. With more than one writer or more than one reader it would
// need a mutex and lose its point
package jobqueue

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/vigilantdoomer/drawsort/internal/mylog"
)

const MAX_QUEUE_CAPACITY = uint32(2147483648)

// Policy decides what AddJob does when the queue is full
type Policy int

const (
	// Capacity is a documented hard limit. Exceeding it is a programming error
	PolicyPanic Policy = iota
	// AddJob returns false and the job is counted as dropped
	PolicyDrop
	// AddJob yields until consumer frees a slot
	PolicyBlock
)

type Queue[J any] struct {
	read     atomic.Uint32
	write    atomic.Uint32
	dropped  atomic.Uint32
	capacity uint32 // never changes after initialization
	policy   Policy
	buf      []J
}

// New creates a queue able to hold capacity jobs. Non-power of two capacity
// is rounded up to a power of two
func New[J any](capacity uint32, policy Policy) *Queue[J] {
	iCap := RoundPOW2_Uint32(capacity)
	if iCap < capacity {
		mylog.Log.Panic("Integer overflow when computing queue capacity (before rounding up to power of two: %d). Specified capacity clearly exceeds the possible maximum\n",
			capacity)
	}
	if iCap > MAX_QUEUE_CAPACITY {
		mylog.Log.Panic("Exceeds maximum queue capacity: %d (%d rounded up to power of two)\n",
			iCap, capacity)
	}
	if iCap == 0 {
		iCap = 1
	}
	return &Queue[J]{
		capacity: iCap,
		policy:   policy,
		buf:      make([]J, iCap),
	}
}

func RoundPOW2_Uint32(x uint32) uint32 {
	if x <= 2 {
		return x
	}

	x--

	for tmp := x >> 1; tmp != 0; tmp >>= 1 {
		x |= tmp
	}

	return x + 1
}

func (q *Queue[J]) mask(val uint32) uint32 {
	return val & (q.capacity - 1)
}

// AddJob must only be called from the producer goroutine. Returns false if
// the job was dropped
func (q *Queue[J]) AddJob(job J) bool {
	w := q.write.Load()
	for w-q.read.Load() == q.capacity {
		switch q.policy {
		case PolicyDrop:
			q.dropped.Add(1)
			return false
		case PolicyBlock:
			runtime.Gosched()
		default:
			mylog.Log.Panic("Job queue overflow: capacity of %d jobs exceeded\n", q.capacity)
		}
	}
	q.buf[q.mask(w)] = job
	q.write.Store(w + 1)
	return true
}

// GetJob must only be called from the consumer goroutine. Returns false if
// there is nothing to take at the moment
func (q *Queue[J]) GetJob() (J, bool) {
	r := q.read.Load()
	if r == q.write.Load() {
		var zero J
		return zero, false
	}
	job := q.buf[q.mask(r)]
	q.read.Store(r + 1)
	return job, true
}

// WaitJob is GetJob that yields until a job arrives or ctx is cancelled
func (q *Queue[J]) WaitJob(ctx context.Context) (J, error) {
	for {
		if job, ok := q.GetJob(); ok {
			return job, nil
		}
		if err := ctx.Err(); err != nil {
			var zero J
			return zero, err
		}
		runtime.Gosched()
	}
}

func (q *Queue[J]) Len() uint32 {
	return q.write.Load() - q.read.Load()
}

func (q *Queue[J]) Cap() uint32 {
	return q.capacity
}

// Dropped is how many jobs were refused under PolicyDrop
func (q *Queue[J]) Dropped() uint32 {
	return q.dropped.Load()
}

// ReleaseAll empties the queue. Neither producer nor consumer may be active
// while it runs
func (q *Queue[J]) ReleaseAll() {
	q.read.Store(0)
	q.write.Store(0)
}
