package recorder

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yanun0323/errors"

	"main/internal/bus"
	"main/internal/schema"
)

// ReplayConfig controls journal replay.
type ReplayConfig struct {
	Dir        string
	FilePrefix string
	// Speed scales the recorded inter-event gaps. Zero replays as fast
	// as possible; 1 replays in real time.
	Speed      float64
	MaxPayload int
}

func (c ReplayConfig) withDefaults() ReplayConfig {
	if c.FilePrefix == "" {
		c.FilePrefix = defaultFilePrefix
	}
	if c.MaxPayload == 0 {
		c.MaxPayload = defaultMaxPayload
	}
	return c
}

// Validate checks if the configuration is usable.
func (c ReplayConfig) Validate() error {
	if c.Dir == "" {
		return errors.New("invalid replay config: Dir is empty")
	}
	if c.Speed < 0 {
		return errors.New("invalid replay config: Speed must be >= 0")
	}
	return nil
}

// Replayer feeds a journaled session back through an event sink. Frames
// recorded from the strategy side are paced but not dispatched, so the
// sink regenerates its own commands.
type Replayer struct {
	cfg   ReplayConfig
	sleep func(ctx context.Context, d time.Duration) error
}

// NewReplayer validates the config and creates a replayer.
func NewReplayer(cfg ReplayConfig) (*Replayer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Replayer{cfg: cfg, sleep: sleepFor}, nil
}

// Run replays every segment under the journal directory in name order.
func (r *Replayer) Run(ctx context.Context, sink schema.EventSink) error {
	files, err := r.segments()
	if err != nil {
		return err
	}

	var prevTS int64
	for _, path := range files {
		if err := r.replayFile(ctx, path, sink, &prevTS); err != nil {
			return err
		}
	}
	return nil
}

func (r *Replayer) segments() ([]string, error) {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "read journal dir")
	}

	prefix := r.cfg.FilePrefix + "-"
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".jnl") {
			continue
		}
		files = append(files, filepath.Join(r.cfg.Dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Replayer) replayFile(ctx context.Context, path string, sink schema.EventSink, prevTS *int64) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open segment")
	}
	defer file.Close()

	reader := newJournalReader(file, r.cfg.MaxPayload)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, payload, err := reader.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrapf(err, "read %s", path)
		}

		if err := r.pace(ctx, header.TsEvent, prevTS); err != nil {
			return err
		}
		if err := bus.Dispatch(sink, bus.Event{Header: header, Payload: payload}); err != nil {
			return errors.Wrapf(err, "dispatch seq %d", header.Seq)
		}
	}
}

func (r *Replayer) pace(ctx context.Context, current int64, prevTS *int64) error {
	if current <= 0 {
		return nil
	}
	defer func() { *prevTS = current }()

	if r.cfg.Speed <= 0 || *prevTS <= 0 {
		return nil
	}
	delta := current - *prevTS
	if delta <= 0 {
		return nil
	}
	return r.sleep(ctx, time.Duration(float64(delta)/r.cfg.Speed))
}

func sleepFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
