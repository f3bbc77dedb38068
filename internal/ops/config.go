package ops

import (
	"encoding/json"
	"os"

	"github.com/yanun0323/errors"

	"main/internal/recorder"
	"main/internal/schema"
	"main/internal/strategy"
	"main/internal/trend"
	"main/internal/venue"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Strategy StrategyConfig `json:"strategy"`
	Trend    TrendConfig    `json:"trend"`
	Venue    VenueConfig    `json:"venue"`
	Journal  JournalConfig  `json:"journal"`
	Store    StoreConfig    `json:"store"`
	Profiler ProfilerConfig `json:"profiler"`
}

// StrategyConfig tunes the quoting parameters, in lots.
type StrategyConfig struct {
	LotSize       int64 `json:"lotSize"`
	PositionLimit int64 `json:"positionLimit"`
	Unload        int64 `json:"unload"`
}

// TrendConfig sets the moving-average window lengths, in book updates.
type TrendConfig struct {
	ConversionLength int `json:"conversionLength"`
	BaselineLength   int `json:"baselineLength"`
	LeadingSpanBLen  int `json:"leadingSpanBLength"`
}

// VenueConfig tunes the simulated venue.
type VenueConfig struct {
	Traded    string `json:"traded"`
	FeePerLot int64  `json:"feePerLot"`
}

// JournalConfig controls session recording.
type JournalConfig struct {
	Dir             string `json:"dir"`
	SegmentMaxBytes int64  `json:"segmentMaxBytes"`
	FilePrefix      string `json:"filePrefix"`
}

// StoreConfig points at the fill database. Empty DSN disables persistence.
type StoreConfig struct {
	DSN string `json:"dsn"`
}

// ProfilerConfig points at a pyroscope server. Empty address disables
// profiling.
type ProfilerConfig struct {
	Address string `json:"address"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Strategy strategy.Config
	Venue    venue.Config
	Journal  recorder.Config
	StoreDSN string
	Profiler string
}

// Load reads a JSON config file and resolves it. A missing path yields
// the defaults.
func Load(path string) (Loaded, error) {
	var cfg FileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Loaded{}, errors.Wrap(err, "read config")
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Loaded{}, errors.Wrap(err, "parse config")
		}
	}
	return cfg.resolve()
}

func (c FileConfig) resolve() (Loaded, error) {
	if err := c.validate(); err != nil {
		return Loaded{}, err
	}

	traded := schema.InstrumentFuture
	switch c.Venue.Traded {
	case "", "future":
	case "etf":
		traded = schema.InstrumentETF
	default:
		return Loaded{}, errors.Errorf("invalid config: unknown traded instrument %q", c.Venue.Traded)
	}

	return Loaded{
		Strategy: strategy.Config{
			LotSize:       schema.Quantity(c.Strategy.LotSize),
			PositionLimit: schema.Quantity(c.Strategy.PositionLimit),
			Unload:        schema.Quantity(c.Strategy.Unload),
			Trend: trend.Config{
				ConversionLength: c.Trend.ConversionLength,
				BaselineLength:   c.Trend.BaselineLength,
				LeadingSpanBLen:  c.Trend.LeadingSpanBLen,
			},
		},
		Venue: venue.Config{
			Traded:    traded,
			FeePerLot: schema.Fee(c.Venue.FeePerLot),
		},
		Journal: recorder.Config{
			Dir:             c.Journal.Dir,
			SegmentMaxBytes: c.Journal.SegmentMaxBytes,
			FilePrefix:      c.Journal.FilePrefix,
		},
		StoreDSN: c.Store.DSN,
		Profiler: c.Profiler.Address,
	}, nil
}

func (c FileConfig) validate() error {
	if c.Strategy.LotSize < 0 {
		return errors.New("invalid config: strategy.lotSize must be >= 0")
	}
	if c.Strategy.PositionLimit < 0 {
		return errors.New("invalid config: strategy.positionLimit must be >= 0")
	}
	if c.Strategy.Unload < 0 {
		return errors.New("invalid config: strategy.unload must be >= 0")
	}
	if c.Strategy.Unload > 0 && c.Strategy.PositionLimit > 0 && c.Strategy.Unload > c.Strategy.PositionLimit {
		return errors.New("invalid config: strategy.unload must be <= strategy.positionLimit")
	}
	if c.Trend.ConversionLength < 0 || c.Trend.BaselineLength < 0 || c.Trend.LeadingSpanBLen < 0 {
		return errors.New("invalid config: trend lengths must be >= 0")
	}
	if c.Venue.FeePerLot < 0 {
		return errors.New("invalid config: venue.feePerLot must be >= 0")
	}
	if c.Journal.SegmentMaxBytes < 0 {
		return errors.New("invalid config: journal.segmentMaxBytes must be >= 0")
	}
	return nil
}
