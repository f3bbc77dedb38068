package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/bus"
	"main/internal/codec"
	"main/internal/feed"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/recorder"
	"main/internal/schema"
	"main/internal/store"
	"main/internal/strategy"
	"main/internal/venue"
)

const feedSource uint16 = 3

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	scenarioPath := flag.String("scenario", "", "Scenario file to run through the simulated venue")
	syntheticN := flag.Int("synthetic", 0, "Generate a random-walk scenario of N books instead of loading one")
	syntheticSeed := flag.Int64("synthetic-seed", 1, "Seed for the synthetic random walk")
	feedInterval := flag.Duration("feed-interval", 0, "Delay between scenario ticks")
	journalDir := flag.String("journal-dir", "", "Session journal directory (overrides config)")
	replayDir := flag.String("replay-dir", "", "Replay a recorded journal instead of running a scenario")
	replaySpeed := flag.Float64("replay-speed", 0, "Replay pacing (1=real-time, 0=no pacing)")
	pgDSN := flag.String("pg-dsn", "", "PostgreSQL DSN for fill persistence (overrides config)")
	profilerAddr := flag.String("pyroscope", "", "Pyroscope server address (overrides config)")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *journalDir != "" {
		loaded.Journal.Dir = *journalDir
	}
	if *pgDSN != "" {
		loaded.StoreDSN = *pgDSN
	}
	if *profilerAddr != "" {
		loaded.Profiler = *profilerAddr
	}

	if loaded.Profiler != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "autotrader",
			ServerAddress:   loaded.Profiler,
			Logger:          emptyLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sys.Shutdown()
		cancel()
	}()

	if *replayDir != "" {
		if err := runReplay(ctx, loaded, *replayDir, *replaySpeed); err != nil {
			log.Fatalf("replay failed: %v", err)
		}
		return
	}

	var scenario *feed.Scenario
	switch {
	case *scenarioPath != "":
		scenario, err = feed.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("scenario load failed: %v", err)
		}
	case *syntheticN > 0:
		scenario = feed.Synthetic(*syntheticN, *syntheticSeed, 20000)
	default:
		log.Fatal("one of -scenario, -synthetic or -replay-dir is required")
	}
	if err := runScenario(ctx, loaded, scenario, *feedInterval); err != nil {
		log.Fatalf("scenario failed: %v", err)
	}
}

// runScenario drives the strategy against the simulated venue. Market data
// flows through the bus queue; everything downstream of the venue is
// synchronous on the consumer goroutine.
func runScenario(ctx context.Context, loaded ops.Loaded, scenario *feed.Scenario, interval time.Duration) error {
	metrics := obs.NewMetrics()

	var events func(schema.EventSink) schema.EventSink = func(s schema.EventSink) schema.EventSink { return s }
	var commands func(schema.CommandSink) schema.CommandSink = func(s schema.CommandSink) schema.CommandSink { return s }

	if loaded.Journal.Dir != "" {
		rec, err := recorder.NewRecorder(loaded.Journal)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logs.Errorf("close journal, err: %+v", err)
			}
		}()
		events = rec.Tap
		commands = rec.TapCommands
	}

	if loaded.StoreDSN != "" {
		db, err := store.Open(loaded.StoreDSN, nil)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		inner := events
		events = func(s schema.EventSink) schema.EventSink {
			return inner(db.Tap(ctx, s))
		}
	}

	// The command path closes a cycle, so the venue is created first with
	// a sink swapped in afterwards.
	wiring := &lateSink{}
	sim := venue.NewSimulator(wiring, loaded.Venue)
	trader := strategy.New(loaded.Strategy, commands(sim))
	wiring.sink = events(obs.Meter(metrics, trader))

	queue := bus.NewQueue(1024)
	go publishScenario(ctx, queue, metrics, scenario, interval)

	queue.Run(ctx, func(e bus.Event) {
		start := time.Now()
		switch e.Header.Type {
		case schema.EventOrderBook:
			book, ok := codec.DecodeOrderBook(e.Payload)
			if !ok {
				logs.Errorf("drop undecodable book, seq: %d", e.Header.Seq)
				return
			}
			sim.ApplyBook(book)
			metrics.ObserveBook(time.Since(start))
		case schema.EventTradeTicks:
			ticks, ok := codec.DecodeTradeTicks(e.Payload)
			if !ok {
				logs.Errorf("drop undecodable trade ticks, seq: %d", e.Header.Seq)
				return
			}
			sim.ApplyTrades(ticks)
		}
	})

	wiring.sink.OnDisconnect()
	report(metrics, trader)
	return nil
}

func publishScenario(ctx context.Context, queue *bus.Queue, metrics *obs.Metrics, scenario *feed.Scenario, interval time.Duration) {
	defer queue.Close()

	var buf []byte
	for i, tick := range scenario.Ticks {
		if ctx.Err() != nil {
			return
		}

		seq := uint64(i + 1)
		book, err := tick.Book(seq)
		if err != nil {
			logs.Errorf("skip bad tick %d, err: %+v", i, err)
			continue
		}

		eventType := schema.EventOrderBook
		if tick.Trades() {
			eventType = schema.EventTradeTicks
			buf = codec.EncodeTradeTicks(buf, schema.TradeTicks(book))
		} else {
			buf = codec.EncodeOrderBook(buf, book)
		}

		now := time.Now().UnixNano()
		payload := make([]byte, len(buf))
		copy(payload, buf)
		if err := queue.TryPublish(bus.Event{
			Header:  schema.NewHeader(eventType, feedSource, seq, now, now),
			Payload: payload,
		}); err != nil {
			metrics.IncQueueDrop()
			logs.Errorf("drop tick %d, err: %+v", i, err)
		}

		if interval > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}
}

// runReplay feeds a recorded session back through a fresh strategy. The
// regenerated commands are logged rather than executed.
func runReplay(ctx context.Context, loaded ops.Loaded, dir string, speed float64) error {
	replayer, err := recorder.NewReplayer(recorder.ReplayConfig{
		Dir:        dir,
		FilePrefix: loaded.Journal.FilePrefix,
		Speed:      speed,
	})
	if err != nil {
		return err
	}

	metrics := obs.NewMetrics()
	trader := strategy.New(loaded.Strategy, loggingCommands{})
	if err := replayer.Run(ctx, obs.Meter(metrics, trader)); err != nil {
		return err
	}

	report(metrics, trader)
	return nil
}

func report(metrics *obs.Metrics, trader *strategy.Trader) {
	snap := metrics.Snapshot()
	logs.Infof("session done, position: %d, events: %v, queue drops: %d, book latency avg: %s",
		trader.Position(), snap.EventCounts, snap.QueueDrops, snap.BookLatency.Avg)
}

// lateSink defers sink resolution so the venue/strategy cycle can be wired
// up in construction order.
type lateSink struct {
	sink schema.EventSink
}

func (l *lateSink) OnOrderBook(book schema.OrderBook)     { l.sink.OnOrderBook(book) }
func (l *lateSink) OnTradeTicks(ticks schema.TradeTicks)  { l.sink.OnTradeTicks(ticks) }
func (l *lateSink) OnOrderFilled(fill schema.OrderFilled) { l.sink.OnOrderFilled(fill) }
func (l *lateSink) OnOrderStatus(st schema.OrderStatus)   { l.sink.OnOrderStatus(st) }
func (l *lateSink) OnHedgeFilled(fill schema.HedgeFilled) { l.sink.OnHedgeFilled(fill) }
func (l *lateSink) OnError(venueErr schema.VenueError)    { l.sink.OnError(venueErr) }
func (l *lateSink) OnDisconnect()                         { l.sink.OnDisconnect() }

type loggingCommands struct{}

func (loggingCommands) SendInsertOrder(cmd schema.InsertOrder) {
	logs.Infof("replay insert, order: %d, side: %s, price: %d, qty: %d", cmd.OrderID, cmd.Side, cmd.Price, cmd.Quantity)
}

func (loggingCommands) SendCancelOrder(cmd schema.CancelOrder) {
	logs.Infof("replay cancel, order: %d", cmd.OrderID)
}

func (loggingCommands) SendHedgeOrder(cmd schema.HedgeOrder) {
	logs.Infof("replay hedge, order: %d, side: %s, price: %d, volume: %d", cmd.OrderID, cmd.Side, cmd.Price, cmd.Volume)
}

type emptyLogger struct{}

func (emptyLogger) Infof(_ string, _ ...interface{})  {}
func (emptyLogger) Debugf(_ string, _ ...interface{}) {}
func (emptyLogger) Errorf(_ string, _ ...interface{}) {}
