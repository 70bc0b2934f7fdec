package shop

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultMaxArrivalDelay = 5 * time.Second
	DefaultMaxServiceTime  = 5 * time.Second

	// Lower bound of every random duration.
	minimumDelay = time.Millisecond
)

// Timing decides how long a customer takes to show up and how long the
// barber spends on their haircut.
type Timing interface {
	ArrivalDelay(customer int) time.Duration
	ServiceTime(customer int) time.Duration
}

// RandomTiming draws durations uniformly between one millisecond and the
// configured maximums. Safe for concurrent use.
type RandomTiming struct {
	mutex           sync.Mutex
	rand            *rand.Rand
	maxArrivalDelay time.Duration
	maxServiceTime  time.Duration
}

// NewRandomTiming seeds from the clock when seed is 0.
func NewRandomTiming(seed int64, maxArrivalDelay, maxServiceTime time.Duration) *RandomTiming {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &RandomTiming{
		rand:            rand.New(rand.NewSource(seed)),
		maxArrivalDelay: maxArrivalDelay,
		maxServiceTime:  maxServiceTime,
	}
}

func (timing *RandomTiming) ArrivalDelay(int) time.Duration {
	return timing.upTo(timing.maxArrivalDelay)
}

func (timing *RandomTiming) ServiceTime(int) time.Duration {
	return timing.upTo(timing.maxServiceTime)
}

func (timing *RandomTiming) upTo(max time.Duration) time.Duration {
	if max <= minimumDelay {
		return minimumDelay
	}

	timing.mutex.Lock()
	defer timing.mutex.Unlock()

	return minimumDelay + time.Duration(timing.rand.Int63n(int64(max-minimumDelay)))
}

// FixedTiming hands out predetermined durations per customer, customers
// missing from a table get zero.
type FixedTiming struct {
	Arrivals map[int]time.Duration
	Services map[int]time.Duration
}

func (timing *FixedTiming) ArrivalDelay(customer int) time.Duration {
	return timing.Arrivals[customer]
}

func (timing *FixedTiming) ServiceTime(customer int) time.Duration {
	return timing.Services[customer]
}

// Sleeps for d unless interrupted by ctx or the shop closing first. Returns
// false when interrupted.
func sleep(ctx context.Context, closed <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-closed:
		return false
	}
}
