package shop

import (
	"context"

	"github.com/maansthoernvik/barbershop/pkg/shop/room"
	"github.com/rs/zerolog"
)

// Outcome is the final state of a customer's visit.
type Outcome int

const (
	Served Outcome = iota
	TurnedAway
	// Only reached when the run is stopped before the customer got an
	// answer.
	Interrupted
)

func (outcome Outcome) String() string {
	switch outcome {
	case Served:
		return "served"
	case TurnedAway:
		return "turned away"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

type Customer struct {
	id     int
	shop   *Shop
	logger zerolog.Logger
}

func NewCustomer(shop *Shop, id int) *Customer {
	return &Customer{
		id:     id,
		shop:   shop,
		logger: shop.logger.With().Int("customer", id).Logger(),
	}
}

func (customer *Customer) ID() int {
	return customer.id
}

// Blocking call! Walks to the shop, tries to grab a chair and, if one was
// free, waits for the haircut. A full waiting room sends the customer away
// immediately.
func (customer *Customer) Run(ctx context.Context) Outcome {
	if !sleep(ctx, customer.shop.closed, customer.shop.timing.ArrivalDelay(customer.id)) {
		return customer.interrupted()
	}

	ticket := room.NewTicket(customer.id)
	seated, closed := false, false
	// Checking for a free chair and taking it must happen in one critical
	// section.
	customer.shop.synchronized(func(waitingRoom *room.WaitingRoom) {
		if closed = customer.shop.isClosed(); closed {
			return
		}
		if seated = waitingRoom.TryEnqueue(ticket); seated {
			customer.shop.ledger.admit(customer.id)
			waitingGauge.Set(float64(waitingRoom.Len()))
		}
	})

	if closed {
		return customer.interrupted()
	}
	if !seated {
		customer.logger.Info().Msg("customer is leaving because the waiting room is full")
		customer.shop.ledger.turnAway(customer.id)
		turnedAwayCounter.Inc()
		return TurnedAway
	}

	customer.logger.Info().Msg("customer is waiting in the waiting room")
	customer.shop.postJob()

	select {
	case <-ticket.Served():
		return customer.served()
	case <-ctx.Done():
	case <-customer.shop.closed:
	}

	if ticket.Abandon() {
		return customer.interrupted()
	}
	// The barber claimed the ticket first, the haircut is done.
	<-ticket.Served()
	return customer.served()
}

func (customer *Customer) served() Outcome {
	customer.logger.Info().Msg("customer has finished getting a haircut")
	customer.shop.ledger.serve(customer.id)
	servedCounter.Inc()
	return Served
}

func (customer *Customer) interrupted() Outcome {
	customer.logger.Info().Msg("customer went home, the shop is shutting down")
	customer.shop.ledger.interrupt(customer.id)
	interruptedCounter.Inc()
	return Interrupted
}
