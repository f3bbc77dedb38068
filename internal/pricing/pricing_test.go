package pricing

import (
	"testing"

	"main/internal/schema"
)

func TestWeightedSpreadSingleLevel(t *testing.T) {
	book := schema.OrderBook{
		AskPrices:  schema.PriceLadder{10_100},
		AskVolumes: schema.VolumeLadder{30},
		BidPrices:  schema.PriceLadder{10_000},
		BidVolumes: schema.VolumeLadder{50},
	}
	if got := WeightedSpread(book); got != 50 {
		t.Fatalf("got %v want 50", got)
	}
}

func TestWeightedSpreadWeightsByMinVolume(t *testing.T) {
	book := schema.OrderBook{
		AskPrices:  schema.PriceLadder{10_100, 10_300},
		AskVolumes: schema.VolumeLadder{10, 30},
		BidPrices:  schema.PriceLadder{10_000, 9_900},
		BidVolumes: schema.VolumeLadder{20, 10},
	}
	// Level 0: half-spread 50, weight min(10,20)=10.
	// Level 1: half-spread 200, weight min(30,10)=10.
	want := (50.0*10 + 200.0*10) / 20.0
	if got := WeightedSpread(book); got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestWeightedSpreadSkipsOneSidedLevels(t *testing.T) {
	book := schema.OrderBook{
		AskPrices:  schema.PriceLadder{10_100, 10_200},
		AskVolumes: schema.VolumeLadder{10, 99},
		BidPrices:  schema.PriceLadder{10_000, 0},
		BidVolumes: schema.VolumeLadder{10, 0},
	}
	if got := WeightedSpread(book); got != 50 {
		t.Fatalf("one-sided second level must be ignored: got %v want 50", got)
	}
}

func TestWeightedSpreadEmptyBook(t *testing.T) {
	if got := WeightedSpread(schema.OrderBook{}); got != 0 {
		t.Fatalf("empty book: got %v want 0", got)
	}
}

func TestWeightedSpreadHalfSpreadTruncates(t *testing.T) {
	book := schema.OrderBook{
		AskPrices:  schema.PriceLadder{10_101},
		AskVolumes: schema.VolumeLadder{5},
		BidPrices:  schema.PriceLadder{10_000},
		BidVolumes: schema.VolumeLadder{5},
	}
	if got := WeightedSpread(book); got != 50 {
		t.Fatalf("odd spread must truncate per level: got %v want 50", got)
	}
}

func TestMidFloors(t *testing.T) {
	if got := Mid(10_000, 10_101); got != 10_050 {
		t.Fatalf("got %v want 10050", got)
	}
}
