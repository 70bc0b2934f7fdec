// Package room implements the waiting room shared by the barber and its customers.
package room

import (
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrInvalidCapacity is the one sentinel for a bad waiting room size, the
// shop wraps it for its upper bound too.
var ErrInvalidCapacity = errors.New("invalid waiting room capacity")

const (
	ticketWaiting int32 = iota
	ticketClaimed
	ticketAbandoned
)

// A Ticket is handed out to a customer that got a seat in the waiting room.
// Either the barber claims it and completes it, which wakes exactly the
// customer holding it, or the customer abandons it during a shutdown. Never
// both.
type Ticket struct {
	Customer int
	state    atomic.Int32
	served   chan struct{}
}

func NewTicket(customer int) *Ticket {
	return &Ticket{Customer: customer, served: make(chan struct{})}
}

// Served is closed once the barber has finished with the ticket holder.
func (ticket *Ticket) Served() <-chan struct{} {
	return ticket.served
}

// Claim is called by the barber when the haircut is done. False means the
// customer already went home.
func (ticket *Ticket) Claim() bool {
	return ticket.state.CompareAndSwap(ticketWaiting, ticketClaimed)
}

// Complete wakes the customer, only after a successful Claim.
func (ticket *Ticket) Complete() {
	close(ticket.served)
}

// Abandon is called by a customer giving up on the wait. False means the
// barber already claimed the ticket and Served is about to close.
func (ticket *Ticket) Abandon() bool {
	return ticket.state.CompareAndSwap(ticketWaiting, ticketAbandoned)
}

func (ticket *Ticket) String() string {
	return fmt.Sprintf("&ticket{c: %d, s: %d}", ticket.Customer, ticket.state.Load())
}

// WaitingRoom is a bounded FIFO queue of tickets. It holds no lock of its own:
// every call must be made while holding the shop's mutex, which makes "check
// capacity and enqueue" a single critical section.
type WaitingRoom struct {
	capacity int
	queue    []*Ticket

	// Called on every access, lets tests verify the mutex is held.
	accessHook AccessHook
}

// AccessHook is called when a room operation starts, with the number of
// seated customers, and the returned function when it ends.
type AccessHook func(queued int) (done func())

func NewWaitingRoom(capacity int) (*WaitingRoom, error) {
	if capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d is below 1", capacity)
	}

	return &WaitingRoom{
		capacity: capacity,
		queue:    make([]*Ticket, 0, capacity),
	}, nil
}

// SetAccessHook registers a hook wrapping every room operation. Set it
// before the room is shared.
func (waitingRoom *WaitingRoom) SetAccessHook(hook AccessHook) {
	waitingRoom.accessHook = hook
}

func (waitingRoom *WaitingRoom) enter() (done func()) {
	if waitingRoom.accessHook == nil {
		return func() {}
	}
	return waitingRoom.accessHook(len(waitingRoom.queue))
}

// TryEnqueue seats the ticket at the back of the queue if there is a free
// chair. It never blocks, a false return means the room is full.
func (waitingRoom *WaitingRoom) TryEnqueue(ticket *Ticket) bool {
	defer waitingRoom.enter()()
	if len(waitingRoom.queue) >= waitingRoom.capacity {
		return false
	}
	waitingRoom.queue = append(waitingRoom.queue, ticket)

	return true
}

// DequeueOldest removes the ticket that has waited the longest.
func (waitingRoom *WaitingRoom) DequeueOldest() (*Ticket, bool) {
	defer waitingRoom.enter()()
	if len(waitingRoom.queue) == 0 {
		return nil, false
	}

	first := waitingRoom.queue[0]
	waitingRoom.queue[0] = nil
	if len(waitingRoom.queue) == 1 {
		waitingRoom.queue = waitingRoom.queue[:0]
	} else {
		waitingRoom.queue = waitingRoom.queue[1:]
	}

	return first, true
}

func (waitingRoom *WaitingRoom) Len() int {
	defer waitingRoom.enter()()
	return len(waitingRoom.queue)
}

func (waitingRoom *WaitingRoom) Capacity() int {
	return waitingRoom.capacity
}

// Customers returns the ids of the seated customers, oldest first.
func (waitingRoom *WaitingRoom) Customers() []int {
	defer waitingRoom.enter()()
	customers := make([]int, 0, len(waitingRoom.queue))
	for _, ticket := range waitingRoom.queue {
		customers = append(customers, ticket.Customer)
	}

	return customers
}
