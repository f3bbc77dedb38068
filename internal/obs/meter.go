package obs

import "main/internal/schema"

// Meter returns an event sink that counts each event before forwarding it
// to next.
func Meter(m *Metrics, next schema.EventSink) schema.EventSink {
	return meteredSink{m: m, next: next}
}

type meteredSink struct {
	m    *Metrics
	next schema.EventSink
}

func (s meteredSink) OnOrderBook(book schema.OrderBook) {
	s.m.IncEvent(schema.EventOrderBook)
	s.next.OnOrderBook(book)
}

func (s meteredSink) OnTradeTicks(ticks schema.TradeTicks) {
	s.m.IncEvent(schema.EventTradeTicks)
	s.next.OnTradeTicks(ticks)
}

func (s meteredSink) OnOrderFilled(fill schema.OrderFilled) {
	s.m.IncEvent(schema.EventOrderFilled)
	s.next.OnOrderFilled(fill)
}

func (s meteredSink) OnOrderStatus(status schema.OrderStatus) {
	s.m.IncEvent(schema.EventOrderStatus)
	s.next.OnOrderStatus(status)
}

func (s meteredSink) OnHedgeFilled(fill schema.HedgeFilled) {
	s.m.IncEvent(schema.EventHedgeFilled)
	s.next.OnHedgeFilled(fill)
}

func (s meteredSink) OnError(venueErr schema.VenueError) {
	s.m.IncEvent(schema.EventVenueError)
	s.next.OnError(venueErr)
}

func (s meteredSink) OnDisconnect() {
	s.m.IncEvent(schema.EventDisconnect)
	s.next.OnDisconnect()
}
