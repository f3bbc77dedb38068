package schema

// EventSink is the inbound contract the trading core implements. The
// transport collaborator invokes it with events in arrival order on a single
// goroutine; implementations never block.
type EventSink interface {
	OnOrderBook(book OrderBook)
	OnTradeTicks(ticks TradeTicks)
	OnOrderFilled(fill OrderFilled)
	OnOrderStatus(status OrderStatus)
	OnHedgeFilled(fill HedgeFilled)
	OnError(err VenueError)
	OnDisconnect()
}

// CommandSink is the outbound contract the trading core drives. Commands are
// fire-and-forget; acknowledgements arrive later through the EventSink.
type CommandSink interface {
	SendInsertOrder(order InsertOrder)
	SendCancelOrder(cancel CancelOrder)
	SendHedgeOrder(hedge HedgeOrder)
}
