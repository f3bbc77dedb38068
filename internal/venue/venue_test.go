package venue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

type eventLog struct {
	books    []schema.OrderBook
	ticks    []schema.TradeTicks
	fills    []schema.OrderFilled
	statuses []schema.OrderStatus
	hedges   []schema.HedgeFilled
	errs     []schema.VenueError
}

func (l *eventLog) OnOrderBook(b schema.OrderBook)     { l.books = append(l.books, b) }
func (l *eventLog) OnTradeTicks(t schema.TradeTicks)   { l.ticks = append(l.ticks, t) }
func (l *eventLog) OnOrderFilled(f schema.OrderFilled) { l.fills = append(l.fills, f) }
func (l *eventLog) OnOrderStatus(s schema.OrderStatus) { l.statuses = append(l.statuses, s) }
func (l *eventLog) OnHedgeFilled(h schema.HedgeFilled) { l.hedges = append(l.hedges, h) }
func (l *eventLog) OnError(e schema.VenueError)        { l.errs = append(l.errs, e) }
func (l *eventLog) OnDisconnect()                      {}

func futureBook(seq uint64, bid, ask schema.Price, vol schema.Quantity) schema.OrderBook {
	b := schema.OrderBook{Instrument: schema.InstrumentFuture, Seq: seq}
	b.BidPrices[0] = bid
	b.BidVolumes[0] = vol
	b.AskPrices[0] = ask
	b.AskVolumes[0] = vol
	return b
}

func newSim(log *eventLog) *Simulator {
	return NewSimulator(log, Config{Traded: schema.InstrumentFuture, FeePerLot: 1})
}

func TestRestingOrderFillsOnCrossingBook(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.ApplyBook(futureBook(1, 10000, 10100, 50))
	sim.SendInsertOrder(schema.InsertOrder{
		OrderID:  1,
		Side:     schema.SideBuy,
		Price:    10000,
		Quantity: 30,
		Lifespan: schema.LifespanGoodForDay,
	})
	require.Empty(t, log.fills, "order at the bid should rest")

	// Ask drops through the resting bid.
	sim.ApplyBook(futureBook(2, 9800, 9900, 50))

	require.Len(t, log.fills, 1)
	assert.Equal(t, uint64(1), log.fills[0].OrderID)
	assert.Equal(t, schema.Price(10000), log.fills[0].Price)
	assert.Equal(t, schema.Quantity(30), log.fills[0].Volume)

	require.Len(t, log.statuses, 1)
	assert.Equal(t, schema.Quantity(0), log.statuses[0].RemainingVolume)
	assert.Equal(t, schema.Fee(30), log.statuses[0].Fees)
}

func TestAggressiveOrderFillsImmediately(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.ApplyBook(futureBook(1, 10000, 10100, 20))
	sim.SendInsertOrder(schema.InsertOrder{
		OrderID:  7,
		Side:     schema.SideBuy,
		Price:    10100,
		Quantity: 50,
		Lifespan: schema.LifespanGoodForDay,
	})

	require.Len(t, log.fills, 1)
	assert.Equal(t, schema.Quantity(20), log.fills[0].Volume)
	require.Len(t, log.statuses, 1)
	assert.Equal(t, schema.Quantity(30), log.statuses[0].RemainingVolume)
}

func TestFillAndKillExpiresRemainder(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.ApplyBook(futureBook(1, 10000, 10100, 20))
	sim.SendInsertOrder(schema.InsertOrder{
		OrderID:  3,
		Side:     schema.SideSell,
		Price:    10000,
		Quantity: 50,
		Lifespan: schema.LifespanFillAndKill,
	})

	require.Len(t, log.fills, 1)
	require.Len(t, log.statuses, 2)
	last := log.statuses[1]
	assert.Equal(t, schema.Quantity(20), last.FillVolume)
	assert.Equal(t, schema.Quantity(0), last.RemainingVolume)

	// Nothing left to fill on the next crossing book.
	sim.ApplyBook(futureBook(2, 10000, 10100, 20))
	assert.Len(t, log.fills, 1)
}

func TestCancelReportsTerminalStatus(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.ApplyBook(futureBook(1, 10000, 10100, 50))
	sim.SendInsertOrder(schema.InsertOrder{
		OrderID:  5,
		Side:     schema.SideSell,
		Price:    10100,
		Quantity: 10,
		Lifespan: schema.LifespanGoodForDay,
	})
	sim.SendCancelOrder(schema.CancelOrder{OrderID: 5})

	require.Len(t, log.statuses, 1)
	assert.Equal(t, uint64(5), log.statuses[0].OrderID)
	assert.Equal(t, schema.Quantity(0), log.statuses[0].RemainingVolume)

	// Cancelling again is silent.
	sim.SendCancelOrder(schema.CancelOrder{OrderID: 5})
	assert.Len(t, log.statuses, 1)
}

func TestInsertRejections(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.SendInsertOrder(schema.InsertOrder{OrderID: 1, Side: schema.SideBuy, Price: 10000, Quantity: 0})
	sim.SendInsertOrder(schema.InsertOrder{OrderID: 2, Side: schema.SideBuy, Price: 10001, Quantity: 10})
	sim.SendInsertOrder(schema.InsertOrder{OrderID: 3, Side: schema.SideBuy, Price: 10000, Quantity: 10})
	sim.SendInsertOrder(schema.InsertOrder{OrderID: 3, Side: schema.SideBuy, Price: 10000, Quantity: 10})

	require.Len(t, log.errs, 3)
	assert.Equal(t, uint64(1), log.errs[0].OrderID)
	assert.Equal(t, uint64(2), log.errs[1].OrderID)
	assert.Equal(t, "duplicate order id", log.errs[2].Message)
}

func TestHedgeFillsAtTopOfFuturesBook(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.ApplyBook(futureBook(1, 10000, 10100, 50))
	sim.SendHedgeOrder(schema.HedgeOrder{
		OrderID: 9,
		Side:    schema.SideBuy,
		Price:   schema.MaxAskNearestTick,
		Volume:  25,
	})

	require.Len(t, log.hedges, 1)
	assert.Equal(t, schema.Price(10100), log.hedges[0].Price)
	assert.Equal(t, schema.Quantity(25), log.hedges[0].Volume)
}

func TestHedgeOnEmptyBookUsesCommandPrice(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.SendHedgeOrder(schema.HedgeOrder{
		OrderID: 4,
		Side:    schema.SideSell,
		Price:   10000,
		Volume:  5,
	})

	require.Len(t, log.hedges, 1)
	assert.Equal(t, schema.Price(10000), log.hedges[0].Price)
}

func TestBooksAndTradesForwarded(t *testing.T) {
	log := &eventLog{}
	sim := newSim(log)

	sim.ApplyBook(futureBook(1, 10000, 10100, 50))
	sim.ApplyTrades(schema.TradeTicks{Instrument: schema.InstrumentFuture, Seq: 2})

	require.Len(t, log.books, 1)
	require.Len(t, log.ticks, 1)
	assert.Equal(t, uint64(2), log.ticks[0].Seq)
}
