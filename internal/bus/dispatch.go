package bus

import (
	"errors"

	"main/internal/codec"
	"main/internal/schema"
)

var ErrDecodeFailed = errors.New("event payload decode failed")

// Dispatch decodes an inbound event and invokes the matching sink callback.
// Outbound command events (replayed from a recording) and unknown types are
// skipped without error.
func Dispatch(sink schema.EventSink, e Event) error {
	switch e.Header.Type {
	case schema.EventOrderBook:
		book, ok := codec.DecodeOrderBook(e.Payload)
		if !ok {
			return ErrDecodeFailed
		}
		sink.OnOrderBook(book)
	case schema.EventTradeTicks:
		ticks, ok := codec.DecodeTradeTicks(e.Payload)
		if !ok {
			return ErrDecodeFailed
		}
		sink.OnTradeTicks(ticks)
	case schema.EventOrderFilled:
		fill, ok := codec.DecodeOrderFilled(e.Payload)
		if !ok {
			return ErrDecodeFailed
		}
		sink.OnOrderFilled(fill)
	case schema.EventOrderStatus:
		status, ok := codec.DecodeOrderStatus(e.Payload)
		if !ok {
			return ErrDecodeFailed
		}
		sink.OnOrderStatus(status)
	case schema.EventHedgeFilled:
		fill, ok := codec.DecodeHedgeFilled(e.Payload)
		if !ok {
			return ErrDecodeFailed
		}
		sink.OnHedgeFilled(fill)
	case schema.EventVenueError:
		venueErr, ok := codec.DecodeVenueError(e.Payload)
		if !ok {
			return ErrDecodeFailed
		}
		sink.OnError(venueErr)
	case schema.EventDisconnect:
		sink.OnDisconnect()
	}
	return nil
}
