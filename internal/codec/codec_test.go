package codec

import (
	"testing"

	"main/internal/schema"
)

func TestOrderBookRoundTrip(t *testing.T) {
	orig := schema.OrderBook{
		Instrument: schema.InstrumentFuture,
		Seq:        1729,
		AskPrices:  schema.PriceLadder{10_100, 10_200, 10_300, 0, 0},
		AskVolumes: schema.VolumeLadder{10, 25, 5, 0, 0},
		BidPrices:  schema.PriceLadder{10_000, 9_900, 0, 0, 0},
		BidVolumes: schema.VolumeLadder{12, 40, 0, 0, 0},
	}

	decoded, ok := DecodeOrderBook(EncodeOrderBook(nil, orig))
	if !ok {
		t.Fatal("decode failed")
	}
	if decoded != orig {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, orig)
	}
}

func TestOrderStatusRoundTripNegativeFees(t *testing.T) {
	orig := schema.OrderStatus{OrderID: 7, FillVolume: 50, RemainingVolume: 150, Fees: -36}
	decoded, ok := DecodeOrderStatus(EncodeOrderStatus(nil, orig))
	if !ok || decoded != orig {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, orig)
	}
}

func TestVenueErrorRoundTrip(t *testing.T) {
	orig := schema.VenueError{OrderID: 42, Message: "order rejected: price off tick"}
	decoded, ok := DecodeVenueError(EncodeVenueError(nil, orig))
	if !ok || decoded != orig {
		t.Fatalf("round-trip mismatch: got %+v want %+v", decoded, orig)
	}
}

func TestDecodeShortPayloadFails(t *testing.T) {
	if _, ok := DecodeOrderBook(make([]byte, BookPayloadSize-1)); ok {
		t.Fatal("short book payload decoded")
	}
	if _, ok := DecodeInsertOrder(make([]byte, 4)); ok {
		t.Fatal("short insert payload decoded")
	}
	if _, ok := DecodeVenueError([]byte{0, 0}); ok {
		t.Fatal("short error payload decoded")
	}
}
