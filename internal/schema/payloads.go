package schema

// TopLevelCount is the number of visible price levels per side of a book.
const TopLevelCount = 5

// TickSize is the minimum price increment in cents. Every outbound price
// must be an exact multiple of it.
const TickSize Price = 100

// Venue price band in cents. Worst-case hedge prices are derived from these,
// rounded onto the tick grid.
const (
	MinimumBid Price = 1
	MaximumAsk Price = (1 << 31) - 1

	MinBidNearestTick = (MinimumBid + TickSize) / TickSize * TickSize
	MaxAskNearestTick = MaximumAsk / TickSize * TickSize
)

// Price is in integer cents.
type Price int64

// Aligned reports whether the price sits on the tick grid.
func (p Price) Aligned() bool {
	return p%TickSize == 0
}

// Quantity is in integer lots.
type Quantity int64

// Fee is in integer cents, negative when rebated.
type Fee int64

// Instrument identifies one of the two tradable instruments.
type Instrument uint16

const (
	InstrumentFuture Instrument = iota
	InstrumentETF
)

func (i Instrument) String() string {
	switch i {
	case InstrumentFuture:
		return "FUTURE"
	case InstrumentETF:
		return "ETF"
	default:
		return "UNKNOWN"
	}
}

// Side describes order direction.
type Side uint16

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Lifespan describes how long a resting order may live.
type Lifespan uint16

const (
	LifespanGoodForDay Lifespan = iota
	LifespanFillAndKill
)

// PriceLadder is one side of a book, best-to-worst. A zero price marks an
// absent level.
type PriceLadder [TopLevelCount]Price

// VolumeLadder carries the volume available at each ladder level.
type VolumeLadder [TopLevelCount]Quantity

// OrderBook is the payload for EventOrderBook: a point-in-time snapshot of
// the five best levels on each side of one instrument.
type OrderBook struct {
	Instrument Instrument
	Seq        uint64
	AskPrices  PriceLadder
	AskVolumes VolumeLadder
	BidPrices  PriceLadder
	BidVolumes VolumeLadder
}

// TradeTicks is the payload for EventTradeTicks. Same shape as OrderBook but
// volumes are aggregated traded volume since the previous tick message.
type TradeTicks struct {
	Instrument Instrument
	Seq        uint64
	AskPrices  PriceLadder
	AskVolumes VolumeLadder
	BidPrices  PriceLadder
	BidVolumes VolumeLadder
}

// OrderFilled is the payload for EventOrderFilled.
type OrderFilled struct {
	OrderID uint64
	Price   Price
	Volume  Quantity
}

// OrderStatus is the payload for EventOrderStatus. RemainingVolume of zero
// is terminal (fully filled or cancelled).
type OrderStatus struct {
	OrderID         uint64
	FillVolume      Quantity
	RemainingVolume Quantity
	Fees            Fee
}

// HedgeFilled is the payload for EventHedgeFilled. Price is the average fill
// price; both price and volume are zero when the hedge was unsuccessful.
type HedgeFilled struct {
	OrderID uint64
	Price   Price
	Volume  Quantity
}

// VenueError is the payload for EventVenueError. OrderID is zero when the
// error is not tied to a particular order.
type VenueError struct {
	OrderID uint64
	Message string
}

// InsertOrder is the payload for EventInsertOrder.
type InsertOrder struct {
	OrderID  uint64
	Side     Side
	Price    Price
	Quantity Quantity
	Lifespan Lifespan
}

// CancelOrder is the payload for EventCancelOrder.
type CancelOrder struct {
	OrderID uint64
}

// HedgeOrder is the payload for EventHedgeOrder. Hedge orders trade the
// futures instrument regardless of which instrument is being quoted.
type HedgeOrder struct {
	OrderID uint64
	Side    Side
	Price   Price
	Volume  Quantity
}
