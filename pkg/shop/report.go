package shop

import (
	"fmt"
	"sync"
)

// Report summarizes a run. Admitted is in enqueue order and Completed in the
// order the barber finished, so for a correct run Completed is a prefix of
// Admitted. A customer is never both Completed and Interrupted.
type Report struct {
	ShopID   string
	Capacity int

	Admitted  []int
	Completed []int

	Served      []int
	TurnedAway  []int
	Interrupted []int

	// Set by the run coordinator when the run was stopped externally.
	WasInterrupted bool
}

// Customers returns the number of customers that reached a final outcome.
func (report *Report) Customers() int {
	return len(report.Served) + len(report.TurnedAway) + len(report.Interrupted)
}

func (report *Report) String() string {
	return fmt.Sprintf(
		"&report{served: %v, turned away: %v, interrupted: %v}",
		report.Served, report.TurnedAway, report.Interrupted,
	)
}

// Bookkeeping only, never consulted by the protocol itself.
type ledger struct {
	mutex sync.Mutex

	admitted    []int
	completed   []int
	served      []int
	turnedAway  []int
	interrupted []int
}

func (ledger *ledger) record(list *[]int, customer int) {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()
	*list = append(*list, customer)
}

func (ledger *ledger) admit(customer int) { ledger.record(&ledger.admitted, customer) }
func (ledger *ledger) complete(customer int) { ledger.record(&ledger.completed, customer) }
func (ledger *ledger) serve(customer int) { ledger.record(&ledger.served, customer) }
func (ledger *ledger) turnAway(customer int) { ledger.record(&ledger.turnedAway, customer) }
func (ledger *ledger) interrupt(customer int) { ledger.record(&ledger.interrupted, customer) }

func (ledger *ledger) report() *Report {
	ledger.mutex.Lock()
	defer ledger.mutex.Unlock()

	return &Report{
		Admitted:    append([]int(nil), ledger.admitted...),
		Completed:   append([]int(nil), ledger.completed...),
		Served:      append([]int(nil), ledger.served...),
		TurnedAway:  append([]int(nil), ledger.turnedAway...),
		Interrupted: append([]int(nil), ledger.interrupted...),
	}
}
