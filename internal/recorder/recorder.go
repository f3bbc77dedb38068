package recorder

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/yanun0323/errors"

	"main/internal/codec"
	"main/internal/schema"
)

const (
	defaultSegmentMaxBytes int64 = 1 << 30
	defaultBufferSize            = 256 * 1024
	defaultFilePrefix            = "session"
	defaultMaxPayload            = 1 << 20
)

// Event sources stamped into frame headers.
const (
	SourceVenue    uint16 = 1
	SourceStrategy uint16 = 2
)

// Config controls the session journal.
type Config struct {
	Dir             string
	SegmentMaxBytes int64
	BufferSize      int
	FilePrefix      string
}

func (c Config) withDefaults() Config {
	if c.SegmentMaxBytes == 0 {
		c.SegmentMaxBytes = defaultSegmentMaxBytes
	}
	if c.BufferSize == 0 {
		c.BufferSize = defaultBufferSize
	}
	if c.FilePrefix == "" {
		c.FilePrefix = defaultFilePrefix
	}
	return c
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("invalid recorder config: Dir is empty")
	}
	if c.SegmentMaxBytes <= 0 {
		return errors.New("invalid recorder config: SegmentMaxBytes must be > 0")
	}
	if c.BufferSize <= 0 {
		return errors.New("invalid recorder config: BufferSize must be > 0")
	}
	return nil
}

// Recorder journals every venue event and strategy command to segment
// files so a session can be replayed. Wrap the strategy with Tap and the
// venue with TapCommands; both sides then share one causally ordered
// stream.
type Recorder struct {
	cfg Config

	mu      sync.Mutex
	seg     *segment
	segID   uint64
	seq     uint64
	err     error
	header  []byte
	payload []byte
	trailer [frameTrailerLen]byte
}

type segment struct {
	file *os.File
	buf  *bufio.Writer
	size int64
}

// NewRecorder creates the journal directory and an idle recorder. The
// first segment is opened lazily on the first frame.
func NewRecorder(cfg Config) (*Recorder, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create journal dir")
	}
	return &Recorder{
		cfg:    cfg,
		header: make([]byte, frameHeaderLen),
	}, nil
}

// Close flushes and syncs the open segment. The first write error, if
// any, is returned.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seg != nil {
		if err := r.closeSegment(); err != nil && r.err == nil {
			r.err = err
		}
		r.seg = nil
	}
	return r.err
}

// Err returns the first write error observed, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Tap returns an event sink that journals each event before forwarding it
// to next.
func (r *Recorder) Tap(next schema.EventSink) schema.EventSink {
	return eventTap{rec: r, next: next}
}

// TapCommands returns a command sink that journals each command before
// forwarding it to next.
func (r *Recorder) TapCommands(next schema.CommandSink) schema.CommandSink {
	return commandTap{rec: r, next: next}
}

func (r *Recorder) append(eventType schema.EventType, source uint16, encode func([]byte) []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}

	r.payload = r.payload[:0]
	if encode != nil {
		r.payload = encode(r.payload)
	}

	r.seq++
	now := time.Now().UnixNano()
	header := schema.NewHeader(eventType, source, r.seq, now, now)
	header.TraceID = r.seq

	frameSize := int64(frameHeaderLen + len(r.payload) + frameTrailerLen)
	if r.seg == nil || r.seg.size+frameSize > r.cfg.SegmentMaxBytes {
		if err := r.rotate(); err != nil {
			r.err = err
			return
		}
	}

	encodeFrameHeader(r.header, header, len(r.payload))
	binary.LittleEndian.PutUint32(r.trailer[:], frameChecksum(r.header, r.payload))

	if _, err := r.seg.buf.Write(r.header); err != nil {
		r.err = errors.Wrap(err, "write frame header")
		return
	}
	if len(r.payload) > 0 {
		if _, err := r.seg.buf.Write(r.payload); err != nil {
			r.err = errors.Wrap(err, "write frame payload")
			return
		}
	}
	if _, err := r.seg.buf.Write(r.trailer[:]); err != nil {
		r.err = errors.Wrap(err, "write frame checksum")
		return
	}
	r.seg.size += frameSize
}

func (r *Recorder) rotate() error {
	if r.seg != nil {
		if err := r.closeSegment(); err != nil {
			return err
		}
		r.seg = nil
	}

	ts := time.Now().UTC().Format("20060102-150405")
	for {
		r.segID++
		name := fmt.Sprintf("%s-%s-%06d.jnl", r.cfg.FilePrefix, ts, r.segID)
		file, err := os.OpenFile(filepath.Join(r.cfg.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return errors.Wrap(err, "open segment")
		}
		r.seg = &segment{file: file, buf: bufio.NewWriterSize(file, r.cfg.BufferSize)}
		return nil
	}
}

func (r *Recorder) closeSegment() error {
	if err := r.seg.buf.Flush(); err != nil {
		_ = r.seg.file.Close()
		return errors.Wrap(err, "flush segment")
	}
	if err := r.seg.file.Sync(); err != nil {
		_ = r.seg.file.Close()
		return errors.Wrap(err, "sync segment")
	}
	return r.seg.file.Close()
}

type eventTap struct {
	rec  *Recorder
	next schema.EventSink
}

func (t eventTap) OnOrderBook(book schema.OrderBook) {
	t.rec.append(schema.EventOrderBook, SourceVenue, func(dst []byte) []byte {
		return codec.EncodeOrderBook(dst, book)
	})
	t.next.OnOrderBook(book)
}

func (t eventTap) OnTradeTicks(ticks schema.TradeTicks) {
	t.rec.append(schema.EventTradeTicks, SourceVenue, func(dst []byte) []byte {
		return codec.EncodeTradeTicks(dst, ticks)
	})
	t.next.OnTradeTicks(ticks)
}

func (t eventTap) OnOrderFilled(fill schema.OrderFilled) {
	t.rec.append(schema.EventOrderFilled, SourceVenue, func(dst []byte) []byte {
		return codec.EncodeOrderFilled(dst, fill)
	})
	t.next.OnOrderFilled(fill)
}

func (t eventTap) OnOrderStatus(status schema.OrderStatus) {
	t.rec.append(schema.EventOrderStatus, SourceVenue, func(dst []byte) []byte {
		return codec.EncodeOrderStatus(dst, status)
	})
	t.next.OnOrderStatus(status)
}

func (t eventTap) OnHedgeFilled(fill schema.HedgeFilled) {
	t.rec.append(schema.EventHedgeFilled, SourceVenue, func(dst []byte) []byte {
		return codec.EncodeHedgeFilled(dst, fill)
	})
	t.next.OnHedgeFilled(fill)
}

func (t eventTap) OnError(venueErr schema.VenueError) {
	t.rec.append(schema.EventVenueError, SourceVenue, func(dst []byte) []byte {
		return codec.EncodeVenueError(dst, venueErr)
	})
	t.next.OnError(venueErr)
}

func (t eventTap) OnDisconnect() {
	t.rec.append(schema.EventDisconnect, SourceVenue, nil)
	t.next.OnDisconnect()
}

type commandTap struct {
	rec  *Recorder
	next schema.CommandSink
}

func (t commandTap) SendInsertOrder(cmd schema.InsertOrder) {
	t.rec.append(schema.EventInsertOrder, SourceStrategy, func(dst []byte) []byte {
		return codec.EncodeInsertOrder(dst, cmd)
	})
	t.next.SendInsertOrder(cmd)
}

func (t commandTap) SendCancelOrder(cmd schema.CancelOrder) {
	t.rec.append(schema.EventCancelOrder, SourceStrategy, func(dst []byte) []byte {
		return codec.EncodeCancelOrder(dst, cmd)
	})
	t.next.SendCancelOrder(cmd)
}

func (t commandTap) SendHedgeOrder(cmd schema.HedgeOrder) {
	t.rec.append(schema.EventHedgeOrder, SourceStrategy, func(dst []byte) []byte {
		return codec.EncodeHedgeOrder(dst, cmd)
	})
	t.next.SendHedgeOrder(cmd)
}
