package strategy

import (
	"github.com/yanun0323/logs"

	"main/internal/inventory"
	"main/internal/position"
	"main/internal/pricing"
	"main/internal/quote"
	"main/internal/schema"
	"main/internal/trend"
)

// Default strategy parameters.
const (
	DefaultLotSize       schema.Quantity = 200
	DefaultPositionLimit schema.Quantity = 100
	DefaultUnload        schema.Quantity = 25
)

// Config holds the strategy parameters. Zero fields fall back to the
// defaults; parameters are fixed for the lifetime of a Trader.
type Config struct {
	LotSize       schema.Quantity
	PositionLimit schema.Quantity
	Unload        schema.Quantity
	Trend         trend.Config
}

func (c Config) withDefaults() Config {
	if c.LotSize <= 0 {
		c.LotSize = DefaultLotSize
	}
	if c.PositionLimit <= 0 {
		c.PositionLimit = DefaultPositionLimit
	}
	if c.Unload <= 0 {
		c.Unload = DefaultUnload
	}
	return c
}

// Trader is the decision core of the market-making strategy. It implements
// schema.EventSink and drives a schema.CommandSink; all state is owned by
// the instance and mutated only from the single event-delivery goroutine.
type Trader struct {
	cfg  Config
	sink schema.CommandSink

	nextID uint64

	quotes *quote.Manager
	ledger *inventory.Ledger
	book   *position.Manager
	trend  *trend.Indicator

	hedgeSides map[uint64]schema.Side
}

var _ schema.EventSink = (*Trader)(nil)

// New creates a flat trader wired to the given command sink.
func New(cfg Config, sink schema.CommandSink) *Trader {
	cfg = cfg.withDefaults()
	t := &Trader{
		cfg:        cfg,
		sink:       sink,
		ledger:     inventory.NewLedger(),
		book:       position.NewManager(cfg.PositionLimit),
		trend:      trend.NewIndicator(cfg.Trend),
		hedgeSides: make(map[uint64]schema.Side),
	}
	t.quotes = quote.NewManager(sink, t.allocID)
	return t
}

// Position returns the current net position in lots.
func (t *Trader) Position() schema.Quantity {
	return t.book.Position()
}

// OnOrderBook re-prices both sides of the quote against the latest futures
// book, then lets the trend signal and the profit-taking sweep force
// further one-sided requotes.
func (t *Trader) OnOrderBook(book schema.OrderBook) {
	logs.Infof("order book %s seq=%d ask=%d/%d bid=%d/%d",
		book.Instrument, book.Seq,
		book.AskPrices[0], book.AskVolumes[0],
		book.BidPrices[0], book.BidVolumes[0])

	if book.Instrument != schema.InstrumentFuture {
		return
	}

	spread := pricing.WeightedSpread(book)
	pos := t.book.Position()
	adjustment := -schema.Price(pos/t.cfg.LotSize) * schema.TickSize
	mid := pricing.Mid(book.BidPrices[0], book.AskPrices[0])

	var newAsk, newBid schema.Price
	if book.AskPrices[0] != 0 {
		newAsk = alignDown(schema.Price(float64(book.AskPrices[0]) + float64(adjustment) + spread))
	}
	if book.BidPrices[0] != 0 {
		newBid = alignDown(schema.Price(float64(book.BidPrices[0]) + float64(adjustment) - spread))
	}
	askQty := clampQty(t.cfg.LotSize, t.cfg.PositionLimit+pos)
	bidQty := clampQty(t.cfg.LotSize, t.cfg.PositionLimit-pos)

	t.quotes.Requote(schema.SideSell, newAsk, askQty)
	t.quotes.Requote(schema.SideBuy, newBid, bidQty)

	// The signal stays neutral until the longest window has enough history,
	// so the directional pass is implicitly gated.
	switch t.trend.Update(mid) {
	case trend.Buy:
		t.quotes.Requote(schema.SideBuy, newBid, bidQty)
	case trend.Sell:
		t.quotes.Requote(schema.SideSell, newAsk, askQty)
	}

	if pos >= t.cfg.Unload || pos <= -t.cfg.Unload {
		// Requote is idempotent on an unchanged target, so multiple
		// qualifying entries collapse into at most one cancel/insert pair.
		t.ledger.EachLong(func(_ uint64, cost schema.Price) {
			if cost < mid {
				t.quotes.Requote(schema.SideSell, newAsk, askQty)
			}
		})
		t.ledger.EachShort(func(_ uint64, cost schema.Price) {
			if cost > mid {
				t.quotes.Requote(schema.SideBuy, newBid, bidQty)
			}
		})
	}
}

// OnTradeTicks reports trading activity; the strategy takes no action on it.
func (t *Trader) OnTradeTicks(ticks schema.TradeTicks) {
	logs.Infof("trade ticks %s seq=%d ask=%d/%d bid=%d/%d",
		ticks.Instrument, ticks.Seq,
		ticks.AskPrices[0], ticks.AskVolumes[0],
		ticks.BidPrices[0], ticks.BidVolumes[0])
}

// OnOrderFilled updates the position under the limit guard, records the cost
// basis, and issues an offsetting hedge at the worst acceptable tick. Fills
// for untracked ids only record the lot size.
func (t *Trader) OnOrderFilled(fill schema.OrderFilled) {
	switch {
	case t.quotes.TracksAsk(fill.OrderID):
		t.book.ApplySell(fill.Volume)
		t.sendHedge(schema.SideBuy, schema.MaxAskNearestTick, fill.Volume)
		t.ledger.RecordShort(fill.OrderID, fill.Price)
	case t.quotes.TracksBid(fill.OrderID):
		t.book.ApplyBuy(fill.Volume)
		t.sendHedge(schema.SideSell, schema.MinBidNearestTick, fill.Volume)
		t.ledger.RecordLong(fill.OrderID, fill.Price)
	}
	t.ledger.RecordLots(fill.OrderID, fill.Volume)
}

// OnOrderStatus reconciles quote state on terminal updates and folds fees
// into the inventory ledger on partial ones.
func (t *Trader) OnOrderStatus(status schema.OrderStatus) {
	if status.RemainingVolume == 0 {
		t.quotes.OnTerminal(status.OrderID)
		return
	}
	t.ledger.ApplyFees(status.OrderID, status.Fees)
	t.ledger.SetLots(status.OrderID, status.RemainingVolume)
}

// OnHedgeFilled folds a hedge fill into the net hedge count. A zero-volume
// fill reports an unsuccessful hedge order.
func (t *Trader) OnHedgeFilled(fill schema.HedgeFilled) {
	logs.Infof("hedge order %d filled for %d lots at %d cents average",
		fill.OrderID, fill.Volume, fill.Price)

	side, ok := t.hedgeSides[fill.OrderID]
	if !ok {
		return
	}
	delete(t.hedgeSides, fill.OrderID)
	if fill.Volume == 0 {
		return
	}
	t.book.ApplyHedgeFill(side, fill.Volume)
}

// OnError treats an error for a tracked order as an implicit terminal
// status; order-less venue errors are logged only.
func (t *Trader) OnError(venueErr schema.VenueError) {
	logs.Errorf("error with order %d: %s", venueErr.OrderID, venueErr.Message)
	if venueErr.OrderID != 0 && t.quotes.Tracks(venueErr.OrderID) {
		t.OnOrderStatus(schema.OrderStatus{OrderID: venueErr.OrderID})
	}
}

// OnDisconnect reports the connection loss. Recovery is the transport's
// concern.
func (t *Trader) OnDisconnect() {
	logs.Info("execution connection lost")
}

func (t *Trader) allocID() uint64 {
	t.nextID++
	return t.nextID
}

func (t *Trader) sendHedge(side schema.Side, price schema.Price, volume schema.Quantity) {
	id := t.allocID()
	t.hedgeSides[id] = side
	t.sink.SendHedgeOrder(schema.HedgeOrder{
		OrderID: id,
		Side:    side,
		Price:   price,
		Volume:  volume,
	})
}

func alignDown(p schema.Price) schema.Price {
	if p < 0 {
		return 0
	}
	return p / schema.TickSize * schema.TickSize
}

func clampQty(lotSize, headroom schema.Quantity) schema.Quantity {
	if headroom < 0 {
		return 0
	}
	if headroom < lotSize {
		return headroom
	}
	return lotSize
}
