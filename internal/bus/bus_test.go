package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/codec"
	"main/internal/schema"
)

func TestQueuePublishAndDrain(t *testing.T) {
	q := NewQueue(4)
	for i := 0; i < 4; i++ {
		require.NoError(t, q.TryPublish(Event{Header: schema.EventHeader{Seq: uint64(i + 1)}}))
	}
	require.ErrorIs(t, q.TryPublish(Event{}), ErrQueueFull)

	q.Close()
	require.ErrorIs(t, q.TryPublish(Event{}), ErrQueueClosed)

	var seqs []uint64
	q.Run(context.Background(), func(e Event) {
		seqs = append(seqs, e.Header.Seq)
	})
	assert.Equal(t, []uint64{1, 2, 3, 4}, seqs)
}

func TestQueueRunStopsOnContext(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q.Run(ctx, func(Event) {
		t.Fatal("handler should not run")
	})
}

type dispatchLog struct {
	books    []schema.OrderBook
	fills    []schema.OrderFilled
	statuses []schema.OrderStatus
	hedges   []schema.HedgeFilled
	errs     []schema.VenueError
	drops    int
}

func (l *dispatchLog) OnOrderBook(b schema.OrderBook)     { l.books = append(l.books, b) }
func (l *dispatchLog) OnTradeTicks(schema.TradeTicks)     {}
func (l *dispatchLog) OnOrderFilled(f schema.OrderFilled) { l.fills = append(l.fills, f) }
func (l *dispatchLog) OnOrderStatus(s schema.OrderStatus) { l.statuses = append(l.statuses, s) }
func (l *dispatchLog) OnHedgeFilled(h schema.HedgeFilled) { l.hedges = append(l.hedges, h) }
func (l *dispatchLog) OnError(e schema.VenueError)        { l.errs = append(l.errs, e) }
func (l *dispatchLog) OnDisconnect()                      { l.drops++ }

func TestDispatchRoutesByType(t *testing.T) {
	log := &dispatchLog{}

	book := schema.OrderBook{Instrument: schema.InstrumentFuture, Seq: 9}
	book.AskPrices[0] = 10100
	require.NoError(t, Dispatch(log, Event{
		Header:  schema.EventHeader{Type: schema.EventOrderBook},
		Payload: codec.EncodeOrderBook(nil, book),
	}))

	require.NoError(t, Dispatch(log, Event{
		Header:  schema.EventHeader{Type: schema.EventOrderFilled},
		Payload: codec.EncodeOrderFilled(nil, schema.OrderFilled{OrderID: 1, Price: 10100, Volume: 5}),
	}))

	require.NoError(t, Dispatch(log, Event{Header: schema.EventHeader{Type: schema.EventDisconnect}}))

	require.Len(t, log.books, 1)
	assert.Equal(t, book, log.books[0])
	require.Len(t, log.fills, 1)
	assert.Equal(t, 1, log.drops)
}

func TestDispatchSkipsCommandsAndFailsOnShortPayload(t *testing.T) {
	log := &dispatchLog{}

	require.NoError(t, Dispatch(log, Event{
		Header:  schema.EventHeader{Type: schema.EventInsertOrder},
		Payload: codec.EncodeInsertOrder(nil, schema.InsertOrder{OrderID: 1}),
	}))
	assert.Empty(t, log.fills)

	err := Dispatch(log, Event{
		Header:  schema.EventHeader{Type: schema.EventOrderFilled},
		Payload: []byte{1, 2, 3},
	})
	require.ErrorIs(t, err, ErrDecodeFailed)
}
