package venue

import (
	"github.com/yanun0323/logs"

	"main/internal/schema"
)

// Simulator matches order commands against the most recent order book and
// reports the outcome synchronously through the event sink. It stands in
// for a live exchange so the strategy can be exercised against recorded
// market data.
type Simulator struct {
	sink   schema.EventSink
	traded schema.Instrument
	fee    schema.Fee

	books   map[schema.Instrument]schema.OrderBook
	resting map[uint64]*restingOrder
	queue   []uint64
}

type restingOrder struct {
	side      schema.Side
	price     schema.Price
	remaining schema.Quantity
	filled    schema.Quantity
	fees      schema.Fee
}

// Config tunes the simulated venue.
type Config struct {
	// Traded is the instrument resting orders execute against.
	Traded schema.Instrument
	// FeePerLot is charged in cents on every filled lot.
	FeePerLot schema.Fee
}

// NewSimulator creates a venue with no liquidity. Events are delivered to
// sink synchronously from the calling goroutine.
func NewSimulator(sink schema.EventSink, cfg Config) *Simulator {
	return &Simulator{
		sink:    sink,
		traded:  cfg.Traded,
		fee:     cfg.FeePerLot,
		books:   make(map[schema.Instrument]schema.OrderBook),
		resting: make(map[uint64]*restingOrder),
	}
}

// ApplyBook installs a new book snapshot, fills any resting orders it now
// crosses, then forwards the snapshot to the sink.
func (s *Simulator) ApplyBook(book schema.OrderBook) {
	s.books[book.Instrument] = book
	if book.Instrument == s.traded {
		s.matchAll()
	}
	s.sink.OnOrderBook(book)
}

// ApplyTrades forwards a trade tick summary to the sink.
func (s *Simulator) ApplyTrades(ticks schema.TradeTicks) {
	s.sink.OnTradeTicks(ticks)
}

// SendInsertOrder validates and rests a new order, filling immediately if
// it crosses the current book. Invalid orders are rejected with an error
// event carrying the order id.
func (s *Simulator) SendInsertOrder(cmd schema.InsertOrder) {
	if reason := validate(cmd); reason != "" {
		s.sink.OnError(schema.VenueError{OrderID: cmd.OrderID, Message: reason})
		return
	}
	if _, dup := s.resting[cmd.OrderID]; dup {
		s.sink.OnError(schema.VenueError{OrderID: cmd.OrderID, Message: "duplicate order id"})
		return
	}

	ord := &restingOrder{side: cmd.Side, price: cmd.Price, remaining: cmd.Quantity}
	s.resting[cmd.OrderID] = ord
	s.queue = append(s.queue, cmd.OrderID)
	s.match(cmd.OrderID, ord)

	if cmd.Lifespan == schema.LifespanFillAndKill && ord.remaining > 0 {
		s.expire(cmd.OrderID, ord)
	}
}

// SendCancelOrder removes a resting order and reports the terminal status.
// Unknown ids are ignored, matching a venue that already filled the order.
func (s *Simulator) SendCancelOrder(cmd schema.CancelOrder) {
	ord, ok := s.resting[cmd.OrderID]
	if !ok {
		return
	}
	s.expire(cmd.OrderID, ord)
}

// SendHedgeOrder fills immediately against the top of the futures book, or
// at the commanded price when that side of the book is empty.
func (s *Simulator) SendHedgeOrder(cmd schema.HedgeOrder) {
	if cmd.Volume <= 0 {
		s.sink.OnHedgeFilled(schema.HedgeFilled{OrderID: cmd.OrderID})
		return
	}

	price := cmd.Price
	book := s.books[schema.InstrumentFuture]
	switch cmd.Side {
	case schema.SideBuy:
		if top := book.AskPrices[0]; top != 0 {
			price = top
		}
	case schema.SideSell:
		if top := book.BidPrices[0]; top != 0 {
			price = top
		}
	}

	s.sink.OnHedgeFilled(schema.HedgeFilled{
		OrderID: cmd.OrderID,
		Price:   price,
		Volume:  cmd.Volume,
	})
}

func validate(cmd schema.InsertOrder) string {
	switch {
	case cmd.Quantity <= 0:
		return "non-positive volume"
	case !cmd.Price.Aligned():
		return "price off tick"
	case cmd.Price < schema.MinBidNearestTick || cmd.Price > schema.MaxAskNearestTick:
		return "price out of range"
	default:
		return ""
	}
}

func (s *Simulator) matchAll() {
	// queue preserves insertion order so fills replay deterministically.
	for _, id := range append([]uint64(nil), s.queue...) {
		ord, ok := s.resting[id]
		if !ok {
			continue
		}
		s.match(id, ord)
	}
}

func (s *Simulator) match(id uint64, ord *restingOrder) {
	book := s.books[s.traded]

	// One sweep of the top level per snapshot.
	var avail schema.Quantity
	switch ord.side {
	case schema.SideBuy:
		if top := book.AskPrices[0]; top == 0 || top > ord.price {
			return
		}
		avail = book.AskVolumes[0]
	case schema.SideSell:
		if top := book.BidPrices[0]; top == 0 || top < ord.price {
			return
		}
		avail = book.BidVolumes[0]
	}
	if avail <= 0 {
		return
	}

	vol := ord.remaining
	if avail < vol {
		vol = avail
	}
	ord.remaining -= vol
	ord.filled += vol
	ord.fees += s.fee * schema.Fee(vol)

	logs.Infof("sim fill, order: %d, price: %d, volume: %d", id, ord.price, vol)
	s.sink.OnOrderFilled(schema.OrderFilled{OrderID: id, Price: ord.price, Volume: vol})
	s.sink.OnOrderStatus(schema.OrderStatus{
		OrderID:         id,
		FillVolume:      ord.filled,
		RemainingVolume: ord.remaining,
		Fees:            ord.fees,
	})
	if ord.remaining == 0 {
		s.remove(id)
	}
}

func (s *Simulator) expire(id uint64, ord *restingOrder) {
	s.remove(id)
	s.sink.OnOrderStatus(schema.OrderStatus{
		OrderID:    id,
		FillVolume: ord.filled,
		Fees:       ord.fees,
	})
}

func (s *Simulator) remove(id uint64) {
	delete(s.resting, id)
	for i, qid := range s.queue {
		if qid == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
}
