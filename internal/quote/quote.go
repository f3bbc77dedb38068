package quote

import "main/internal/schema"

// Allocator hands out order ids. Ids must be monotonically increasing and
// are shared with hedge orders, so the strategy owns the counter.
type Allocator func() uint64

// Quote is the state of one side of the two-sided quote. ID is non-zero iff
// a live order is believed outstanding; PendingCancel is true only between a
// cancel request and its terminal status.
type Quote struct {
	ID            uint64
	Price         schema.Price
	PendingCancel bool
}

// Manager owns the at-most-one-bid/one-ask quoting state machine. It issues
// cancel and insert commands through the sink and reconciles against
// terminal order statuses.
type Manager struct {
	sink   schema.CommandSink
	nextID Allocator

	bid  Quote
	ask  Quote
	bids map[uint64]struct{}
	asks map[uint64]struct{}
}

// NewManager creates a manager with empty quotes on both sides.
func NewManager(sink schema.CommandSink, nextID Allocator) *Manager {
	return &Manager{
		sink:   sink,
		nextID: nextID,
		bids:   make(map[uint64]struct{}),
		asks:   make(map[uint64]struct{}),
	}
}

// Requote drives one side toward the target price and quantity. A zero
// target suppresses the side. When the target differs from the quoted
// price: a live order is cancelled and marked pending-cancel, and a fresh
// order is inserted only if no cancel is in flight and the quantity is
// positive. The quoted price is updated to the target either way, so
// repeating an unchanged target issues no commands.
func (m *Manager) Requote(side schema.Side, target schema.Price, qty schema.Quantity) {
	q, live := m.side(side)
	if q == nil || target == 0 || target == q.Price {
		return
	}

	if q.ID != 0 && !q.PendingCancel {
		// Flag before sending: the terminal status may arrive inside
		// SendCancelOrder and clear it again.
		q.PendingCancel = true
		m.sink.SendCancelOrder(schema.CancelOrder{OrderID: q.ID})
	}
	if !q.PendingCancel && qty > 0 {
		id := m.nextID()
		q.ID = id
		// Registered before sending: a synchronous venue can report the
		// fill before SendInsertOrder returns.
		live[id] = struct{}{}
		m.sink.SendInsertOrder(schema.InsertOrder{
			OrderID:  id,
			Side:     side,
			Price:    target,
			Quantity: qty,
			Lifespan: schema.LifespanGoodForDay,
		})
	}
	q.Price = target
}

// OnTerminal reconciles a terminal order status: the matching side's quote
// id and pending-cancel flag are cleared, and the id is dropped from both
// live sets. Safe no-op for untracked ids.
func (m *Manager) OnTerminal(orderID uint64) {
	switch orderID {
	case m.ask.ID:
		m.ask.ID = 0
		m.ask.PendingCancel = false
	case m.bid.ID:
		m.bid.ID = 0
		m.bid.PendingCancel = false
	}
	delete(m.asks, orderID)
	delete(m.bids, orderID)
}

// TracksAsk reports whether the id belongs to a live ask order.
func (m *Manager) TracksAsk(orderID uint64) bool {
	_, ok := m.asks[orderID]
	return ok
}

// TracksBid reports whether the id belongs to a live bid order.
func (m *Manager) TracksBid(orderID uint64) bool {
	_, ok := m.bids[orderID]
	return ok
}

// Tracks reports whether the id belongs to a live order on either side.
func (m *Manager) Tracks(orderID uint64) bool {
	return m.TracksAsk(orderID) || m.TracksBid(orderID)
}

// Bid returns the current bid-side quote state.
func (m *Manager) Bid() Quote {
	return m.bid
}

// Ask returns the current ask-side quote state.
func (m *Manager) Ask() Quote {
	return m.ask
}

func (m *Manager) side(side schema.Side) (*Quote, map[uint64]struct{}) {
	switch side {
	case schema.SideBuy:
		return &m.bid, m.bids
	case schema.SideSell:
		return &m.ask, m.asks
	default:
		return nil, nil
	}
}
