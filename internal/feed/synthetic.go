package feed

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"main/internal/schema"
)

// Synthetic generates a random-walk scenario of n book snapshots around a
// starting mid price. The walk moves at most one tick per snapshot and
// never drops below one tick of headroom.
func Synthetic(n int, seed int64, start schema.Price) *Scenario {
	rng := rand.New(rand.NewSource(seed))

	// Keep every ladder level strictly positive.
	floor := schema.Price(schema.TopLevelCount+1) * schema.TickSize
	mid := start / schema.TickSize * schema.TickSize
	if mid < floor {
		mid = floor
	}

	s := &Scenario{Ticks: make([]Tick, 0, n)}
	for i := 0; i < n; i++ {
		switch rng.Intn(3) {
		case 0:
			mid += schema.TickSize
		case 1:
			if mid > floor {
				mid -= schema.TickSize
			}
		}

		tick := Tick{Instrument: "future"}
		for lvl := 0; lvl < schema.TopLevelCount; lvl++ {
			step := schema.Price(lvl+1) * schema.TickSize
			tick.Bids = append(tick.Bids, Level{
				Price:  cents(mid - step),
				Volume: 20 + rng.Int63n(80),
			})
			tick.Asks = append(tick.Asks, Level{
				Price:  cents(mid + step),
				Volume: 20 + rng.Int63n(80),
			})
		}
		s.Ticks = append(s.Ticks, tick)
	}
	return s
}

func cents(p schema.Price) decimal.Decimal {
	return decimal.New(int64(p), -2)
}
