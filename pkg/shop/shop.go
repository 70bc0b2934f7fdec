// Package shop implements the sleeping barber protocol: a waiting room guarded
// by a mutex, a job signal waking the barber and a completion signal per
// seated customer.
package shop

import (
	"sync"

	"github.com/google/uuid"
	"github.com/maansthoernvik/barbershop/pkg/shop/room"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxCustomers bounds both the waiting room capacity and the number of
// customers visiting the shop during a run.
const MaxCustomers = 5

var (
	ErrInvalidCapacity = room.ErrInvalidCapacity
	ErrShopClosed      = errors.New("shop is closed")
)

// Options exposes the possible options to pass to a new Shop.
type Options struct {
	// Number of chairs in the waiting room, 1..MaxCustomers.
	Capacity int
	// Source of arrival delays and haircut durations. Defaults to a time
	// seeded RandomTiming.
	Timing Timing
	// Mutex guarding the waiting room. Defaults to a sync.Mutex, tests may
	// supply an instrumented one.
	Mutex sync.Locker
}

// Shop is the state shared by the barber and the customers. It owns the
// waiting room and the synchronization primitives for the duration of a run,
// Close releases them.
type Shop struct {
	id     string
	logger zerolog.Logger
	timing Timing

	mutex sync.Locker
	room  *room.WaitingRoom

	// Job signal, one token per seated customer. Tokens outstanding never
	// exceed the room length, so sends never block.
	jobs chan struct{}

	closed    chan struct{}
	closeOnce sync.Once

	ledger *ledger
}

func New(options *Options) (*Shop, error) {
	if options.Capacity > MaxCustomers {
		return nil, errors.Wrapf(
			ErrInvalidCapacity,
			"capacity %d is above %d", options.Capacity, MaxCustomers,
		)
	}

	// The room enforces the lower bound.
	waitingRoom, err := room.NewWaitingRoom(options.Capacity)
	if err != nil {
		return nil, err
	}

	shop := &Shop{
		id:     uuid.NewString(),
		timing: options.Timing,
		mutex:  options.Mutex,
		room:   waitingRoom,
		jobs:   make(chan struct{}, options.Capacity),
		closed: make(chan struct{}),
		ledger: &ledger{},
	}
	if shop.timing == nil {
		shop.timing = NewRandomTiming(0, DefaultMaxArrivalDelay, DefaultMaxServiceTime)
	}
	if shop.mutex == nil {
		shop.mutex = &sync.Mutex{}
	}
	shop.logger = log.With().Str("shop", shop.id).Logger()
	waitingGauge.Set(0)

	shop.logger.Debug().Int("capacity", options.Capacity).Msg("opened shop")

	return shop, nil
}

func (shop *Shop) ID() string {
	return shop.id
}

func (shop *Shop) Capacity() int {
	return shop.room.Capacity()
}

// Waiting returns the number of customers currently seated.
func (shop *Shop) Waiting() (n int) {
	shop.synchronized(func(waitingRoom *room.WaitingRoom) {
		n = waitingRoom.Len()
	})
	return
}

// Closed is closed once Close has been called.
func (shop *Shop) Closed() <-chan struct{} {
	return shop.closed
}

// Close releases the shop. Any customer still waiting is released and the
// barber stops at its next suspension point. Safe to call more than once and
// from any goroutine.
func (shop *Shop) Close() {
	shop.closeOnce.Do(func() {
		var left []int
		shop.synchronized(func(waitingRoom *room.WaitingRoom) {
			close(shop.closed)
			left = waitingRoom.Customers()
		})
		waitingGauge.Set(0)
		shop.logger.Debug().Ints("left-waiting", left).Msg("closed shop")
	})
}

// Report returns a snapshot of what has happened in the shop so far.
func (shop *Shop) Report() *Report {
	report := shop.ledger.report()
	report.ShopID = shop.id
	report.Capacity = shop.room.Capacity()

	return report
}

// synchronized runs the action while holding the shop's mutex. This is the
// only way the waiting room is ever touched.
func (shop *Shop) synchronized(action func(waitingRoom *room.WaitingRoom)) {
	shop.mutex.Lock()
	defer shop.mutex.Unlock()
	action(shop.room)
}

// IMPORTANT: only call while holding the mutex.
func (shop *Shop) isClosed() bool {
	select {
	case <-shop.closed:
		return true
	default:
		return false
	}
}

func (shop *Shop) postJob() {
	shop.jobs <- struct{}{}
}
