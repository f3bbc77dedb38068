package store

import (
	"context"

	"github.com/yanun0323/logs"

	"main/internal/schema"
)

// Tap returns an event sink that persists executions before forwarding
// each event to next. Persistence failures are logged and never interrupt
// the event path.
func (s *Store) Tap(ctx context.Context, next schema.EventSink) schema.EventSink {
	return sinkTap{ctx: ctx, store: s, next: next}
}

type sinkTap struct {
	ctx   context.Context
	store *Store
	next  schema.EventSink
}

func (t sinkTap) OnOrderBook(book schema.OrderBook) { t.next.OnOrderBook(book) }

func (t sinkTap) OnTradeTicks(ticks schema.TradeTicks) { t.next.OnTradeTicks(ticks) }

func (t sinkTap) OnOrderFilled(fill schema.OrderFilled) {
	if err := t.store.SaveFill(t.ctx, fill.OrderID, false, fill.Price, fill.Volume); err != nil {
		logs.Errorf("persist fill, order: %d, err: %+v", fill.OrderID, err)
	}
	t.next.OnOrderFilled(fill)
}

func (t sinkTap) OnOrderStatus(status schema.OrderStatus) {
	if status.RemainingVolume == 0 {
		if err := t.store.SaveOutcome(t.ctx, status); err != nil {
			logs.Errorf("persist outcome, order: %d, err: %+v", status.OrderID, err)
		}
	}
	t.next.OnOrderStatus(status)
}

func (t sinkTap) OnHedgeFilled(fill schema.HedgeFilled) {
	if fill.Volume > 0 {
		if err := t.store.SaveFill(t.ctx, fill.OrderID, true, fill.Price, fill.Volume); err != nil {
			logs.Errorf("persist hedge fill, order: %d, err: %+v", fill.OrderID, err)
		}
	}
	t.next.OnHedgeFilled(fill)
}

func (t sinkTap) OnError(venueErr schema.VenueError) { t.next.OnError(venueErr) }

func (t sinkTap) OnDisconnect() { t.next.OnDisconnect() }
