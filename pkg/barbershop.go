// Package barbershop ties together a run of the sleeping barber shop.
package barbershop

import (
	"context"
	"sync"

	"github.com/maansthoernvik/barbershop/pkg/shop"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Barbershop is the root level object coordinating one run: a barber, a fixed
// number of customers and the shop they share.
type Barbershop struct {
	shop      *shop.Shop
	customers int

	startOnce sync.Once
}

// BarbershopOptions exposes the possible options to pass to a new Barbershop
// instance.
type BarbershopOptions struct {
	// Number of chairs in the waiting room, 1..shop.MaxCustomers.
	Capacity int
	// Number of customers visiting during the run. Zero means
	// shop.MaxCustomers.
	Customers int
	// Arrival and haircut durations, random when nil.
	Timing shop.Timing
	// Overrides the waiting room mutex.
	Mutex sync.Locker
}

// New validates the options and opens the shop. An invalid capacity is
// reported before any unit is started.
func New(options *BarbershopOptions) (*Barbershop, error) {
	if options.Customers < 0 {
		return nil, errors.Errorf("negative number of customers: %d", options.Customers)
	}

	s, err := shop.New(&shop.Options{
		Capacity: options.Capacity,
		Timing:   options.Timing,
		Mutex:    options.Mutex,
	})
	if err != nil {
		return nil, err
	}

	barbershop := &Barbershop{shop: s, customers: options.Customers}
	if barbershop.customers == 0 {
		barbershop.customers = shop.MaxCustomers
	}

	return barbershop, nil
}

func (barbershop *Barbershop) ID() string {
	return barbershop.shop.ID()
}

// Blocking call! Runs every customer to an outcome, then sends the barber
// home and closes the shop. Cancelling ctx interrupts the run and goes
// through the same cleanup, which is not an error. A Barbershop can only be
// started once, later calls return ErrShopClosed.
func (barbershop *Barbershop) Start(ctx context.Context) (*shop.Report, error) {
	started := false
	barbershop.startOnce.Do(func() { started = true })
	if !started {
		return nil, errors.Wrapf(shop.ErrShopClosed, "shop %s already ran", barbershop.shop.ID())
	}
	defer barbershop.shop.Close()

	logger := log.With().Str("shop", barbershop.shop.ID()).Logger()
	logger.Info().
		Int("capacity", barbershop.shop.Capacity()).
		Int("customers", barbershop.customers).
		Msg("opening barbershop")

	// The barber only leaves when told to, never because ctx ended on its own.
	barberCtx, sendBarberHome := context.WithCancel(context.Background())
	defer sendBarberHome()
	barberDone := make(chan struct{})
	go func() {
		defer close(barberDone)
		shop.NewBarber(barbershop.shop).Run(barberCtx)
	}()

	wg := sync.WaitGroup{}
	wg.Add(barbershop.customers)
	for i := 0; i < barbershop.customers; i++ {
		go func(customer *shop.Customer) {
			defer wg.Done()
			outcome := customer.Run(ctx)
			logger.Debug().
				Int("customer", customer.ID()).
				Stringer("outcome", outcome).
				Msg("customer done")
		}(shop.NewCustomer(barbershop.shop, i))
	}
	wg.Wait()

	sendBarberHome()
	<-barberDone
	barbershop.shop.Close()

	report := barbershop.shop.Report()
	report.WasInterrupted = ctx.Err() != nil
	logger.Info().
		Ints("served", report.Served).
		Ints("turned-away", report.TurnedAway).
		Ints("interrupted", report.Interrupted).
		Bool("was-interrupted", report.WasInterrupted).
		Msg("closed barbershop")

	return report, nil
}
