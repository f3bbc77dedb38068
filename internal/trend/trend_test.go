package trend

import (
	"testing"

	"main/internal/schema"
)

func TestNeutralUntilSpanBWindowFull(t *testing.T) {
	ind := NewIndicator(Config{ConversionLength: 2, BaselineLength: 3, LeadingSpanBLen: 5})
	prices := []schema.Price{100, 200, 300, 400}
	for n, p := range prices {
		if got := ind.Update(p); got != Neutral {
			t.Fatalf("update %d: got %v before history is complete, want NEUTRAL", n, got)
		}
	}
	if ind.Ready() {
		t.Fatal("indicator reported ready after 4 of 5 required updates")
	}
	ind.Update(500)
	if !ind.Ready() {
		t.Fatal("indicator not ready after the span-B window filled")
	}
}

func TestRisingPricesSignalBuy(t *testing.T) {
	ind := NewIndicator(Config{ConversionLength: 2, BaselineLength: 3, LeadingSpanBLen: 5})
	var got Signal
	price := schema.Price(10_000)
	for n := 0; n < 40; n++ {
		price += 100
		got = ind.Update(price)
	}
	if got != Buy {
		t.Fatalf("steadily rising prices: got %v want BUY", got)
	}
}

func TestFallingPricesSignalSell(t *testing.T) {
	ind := NewIndicator(Config{ConversionLength: 2, BaselineLength: 3, LeadingSpanBLen: 5})
	var got Signal
	price := schema.Price(50_000)
	for n := 0; n < 40; n++ {
		price -= 100
		got = ind.Update(price)
	}
	if got != Sell {
		t.Fatalf("steadily falling prices: got %v want SELL", got)
	}
}

func TestFlatPricesStayNeutral(t *testing.T) {
	ind := NewIndicator(Config{ConversionLength: 2, BaselineLength: 3, LeadingSpanBLen: 5})
	var got Signal
	for n := 0; n < 40; n++ {
		got = ind.Update(10_000)
	}
	if got != Neutral {
		t.Fatalf("flat prices: got %v want NEUTRAL", got)
	}
}

func TestDefaultLengths(t *testing.T) {
	ind := NewIndicator(Config{})
	for n := 0; n < DefaultLeadingSpanBLen-1; n++ {
		ind.Update(10_000)
	}
	if ind.Ready() {
		t.Fatalf("ready after %d updates, want %d", DefaultLeadingSpanBLen-1, DefaultLeadingSpanBLen)
	}
	ind.Update(10_000)
	if !ind.Ready() {
		t.Fatal("not ready after default span-B length updates")
	}
}
