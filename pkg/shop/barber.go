package shop

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/maansthoernvik/barbershop/pkg/shop/room"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type BarberState int32

const (
	Sleeping BarberState = iota
	Cutting
)

func (state BarberState) String() string {
	switch state {
	case Sleeping:
		return "sleeping"
	case Cutting:
		return "cutting"
	default:
		return "unknown"
	}
}

// Barber serves the shop's customers one at a time, oldest first.
type Barber struct {
	shop   *Shop
	state  atomic.Int32
	logger zerolog.Logger
}

func NewBarber(shop *Shop) *Barber {
	return &Barber{
		shop:   shop,
		logger: shop.logger.With().Str("unit", "barber").Logger(),
	}
}

func (barber *Barber) State() BarberState {
	return BarberState(barber.state.Load())
}

// Blocking call! The barber sleeps until a customer posts a job, cuts their
// hair and goes back to sleep. The loop never ends on its own, only a
// cancelled ctx or a closed shop stops it.
func (barber *Barber) Run(ctx context.Context) {
	for {
		barber.state.Store(int32(Sleeping))
		barber.logger.Info().Msg("the barber is sleeping")

		select {
		case <-ctx.Done():
			barber.logger.Info().Msg("the barber was sent home")
			return
		case <-barber.shop.closed:
			barber.logger.Info().Msg("the shop closed, the barber goes home")
			return
		case <-barber.shop.jobs:
		}

		ticket, ok := barber.nextCustomer()
		if !ok {
			wakeupCounter.With(prometheus.Labels{"outcome": wakeupSpurious}).Inc()
			barber.logger.Debug().Msg("woke up to an empty waiting room")
			continue
		}
		wakeupCounter.With(prometheus.Labels{"outcome": wakeupCut}).Inc()

		barber.state.Store(int32(Cutting))
		if !barber.cut(ctx, ticket) {
			barber.logger.Info().
				Int("customer", ticket.Customer).
				Msg("the barber was stopped mid haircut")
			return
		}

		if !ticket.Claim() {
			barber.logger.Info().
				Int("customer", ticket.Customer).
				Msg("the customer left before the haircut was finished")
			continue
		}
		barber.shop.ledger.complete(ticket.Customer)
		ticket.Complete()
	}
}

// Takes the oldest seated customer, if any.
func (barber *Barber) nextCustomer() (ticket *room.Ticket, ok bool) {
	barber.shop.synchronized(func(waitingRoom *room.WaitingRoom) {
		ticket, ok = waitingRoom.DequeueOldest()
		waitingGauge.Set(float64(waitingRoom.Len()))
	})
	return
}

func (barber *Barber) cut(ctx context.Context, ticket *room.Ticket) bool {
	duration := barber.shop.timing.ServiceTime(ticket.Customer)
	barber.logger.Info().
		Int("customer", ticket.Customer).
		Dur("duration", duration).
		Msg("the barber is cutting hair")

	start := time.Now()
	if !sleep(ctx, barber.shop.closed, duration) {
		return false
	}
	serviceHistogram.Observe(time.Since(start).Seconds())

	barber.logger.Info().
		Int("customer", ticket.Customer).
		Msg("the barber has finished cutting hair")

	return true
}
