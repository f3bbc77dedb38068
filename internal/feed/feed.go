package feed

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"main/internal/schema"
)

// Level is one price level of a scenario tick. Prices are written in
// currency units ("12.50") and converted to integer cents on load.
type Level struct {
	Price  decimal.Decimal `json:"price"`
	Volume int64           `json:"volume"`
}

// Tick is one market data message of a scenario. Kind selects between an
// order book snapshot and a trade tick summary.
type Tick struct {
	Instrument string  `json:"instrument"`
	Kind       string  `json:"kind"`
	Bids       []Level `json:"bids"`
	Asks       []Level `json:"asks"`
}

// Scenario is a recorded sequence of market data messages replayed in order.
type Scenario struct {
	Ticks []Tick `json:"ticks"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}

	var s Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}

	for i := range s.Ticks {
		if _, err := s.Ticks[i].Book(0); err != nil {
			return nil, errors.Wrapf(err, "tick %d", i)
		}
	}
	return &s, nil
}

func (t Tick) instrument() (schema.Instrument, error) {
	switch strings.ToLower(t.Instrument) {
	case "", "future":
		return schema.InstrumentFuture, nil
	case "etf":
		return schema.InstrumentETF, nil
	default:
		return 0, errors.Errorf("unknown instrument: %q", t.Instrument)
	}
}

// Trades reports whether the tick is a trade summary rather than a book
// snapshot.
func (t Tick) Trades() bool {
	return strings.EqualFold(t.Kind, "trades")
}

// Book converts the tick to an order book payload with the given sequence
// number. Prices must land on the venue tick size.
func (t Tick) Book(seq uint64) (schema.OrderBook, error) {
	inst, err := t.instrument()
	if err != nil {
		return schema.OrderBook{}, err
	}

	book := schema.OrderBook{Instrument: inst, Seq: seq}
	if err := fillSide(t.Asks, &book.AskPrices, &book.AskVolumes); err != nil {
		return schema.OrderBook{}, errors.Wrap(err, "asks")
	}
	if err := fillSide(t.Bids, &book.BidPrices, &book.BidVolumes); err != nil {
		return schema.OrderBook{}, errors.Wrap(err, "bids")
	}
	return book, nil
}

func fillSide(levels []Level, prices *schema.PriceLadder, volumes *schema.VolumeLadder) error {
	if len(levels) > schema.TopLevelCount {
		return errors.Errorf("too many levels: %d", len(levels))
	}
	for i, lvl := range levels {
		cents := lvl.Price.Shift(2)
		if !cents.IsInteger() {
			return errors.Errorf("price %s has sub-cent precision", lvl.Price)
		}
		p := schema.Price(cents.IntPart())
		if p != 0 && !p.Aligned() {
			return errors.Errorf("price %s off tick", lvl.Price)
		}
		if lvl.Volume < 0 {
			return errors.Errorf("negative volume at %s", lvl.Price)
		}
		prices[i] = p
		volumes[i] = schema.Quantity(lvl.Volume)
	}
	return nil
}
