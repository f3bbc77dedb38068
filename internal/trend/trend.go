package trend

import (
	"main/internal/schema"
	"main/internal/window"
)

// Default window lengths. These are the lengths the computation actually
// runs with; see Config to override them.
const (
	DefaultConversionLength = 9
	DefaultBaselineLength   = 26
	DefaultLeadingSpanBLen  = 52
)

// Signal is the tri-state verdict of the indicator.
type Signal uint8

const (
	Neutral Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "NEUTRAL"
	}
}

// Config sets the indicator window lengths. Zero fields fall back to the
// defaults.
type Config struct {
	ConversionLength int
	BaselineLength   int
	LeadingSpanBLen  int
}

func (c Config) withDefaults() Config {
	if c.ConversionLength <= 0 {
		c.ConversionLength = DefaultConversionLength
	}
	if c.BaselineLength <= 0 {
		c.BaselineLength = DefaultBaselineLength
	}
	if c.LeadingSpanBLen <= 0 {
		c.LeadingSpanBLen = DefaultLeadingSpanBLen
	}
	return c
}

// Indicator derives a trend signal from a stream of mid prices using four
// chained rolling windows. Each strategy instance owns its own Indicator;
// there is no shared state.
type Indicator struct {
	conversion *window.Window
	baseline   *window.Window
	spanB      *window.Window
	lagging    *window.Window
}

// NewIndicator builds an indicator with the given window lengths. The
// lagging window shares the baseline length but keeps its own accumulator.
func NewIndicator(cfg Config) *Indicator {
	cfg = cfg.withDefaults()
	return &Indicator{
		conversion: window.New(cfg.ConversionLength),
		baseline:   window.New(cfg.BaselineLength),
		spanB:      window.New(cfg.LeadingSpanBLen),
		lagging:    window.New(cfg.BaselineLength),
	}
}

// Ready reports whether the longest window has accumulated enough history
// for the signal to be actionable.
func (i *Indicator) Ready() bool {
	return i.spanB.Full()
}

// Update pushes a new mid price through the windows and returns the signal.
// Until Ready, the result is always Neutral.
func (i *Indicator) Update(price schema.Price) Signal {
	p := int64(price)

	conversion := i.conversion.Push(p)
	baseline := i.baseline.Push(conversion)
	spanA := (conversion + baseline) / 2
	spanB := (i.spanB.Push(conversion) + baseline) / 2

	// The lagging window holds raw prices; its oldest sample is the price
	// one full baseline-length back.
	i.lagging.Push(p)
	laggingRef := i.lagging.Oldest()

	if !i.spanB.Full() {
		return Neutral
	}

	aboveCloud := p > spanA && p > spanB
	belowCloud := p < spanA && p < spanB
	aboveLines := p > conversion && p > baseline
	belowLines := p < conversion && p < baseline

	signal := Neutral
	if (aboveCloud || aboveLines) && p > laggingRef {
		signal = Buy
	}
	// Evaluated second: a sell verdict overrides a buy within the same
	// update.
	if (belowCloud || belowLines) && p < laggingRef {
		signal = Sell
	}
	return signal
}
