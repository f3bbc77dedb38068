package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const (
	ladderOffset    = 16
	ladderSize      = 8 * schema.TopLevelCount
	BookPayloadSize = ladderOffset + 4*ladderSize
)

// EncodeOrderBook serializes a book snapshot into a fixed-size payload.
func EncodeOrderBook(dst []byte, book schema.OrderBook) []byte {
	dst = sized(dst, BookPayloadSize)
	binary.LittleEndian.PutUint64(dst[0:8], book.Seq)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(book.Instrument))
	putLadders(dst, book.AskPrices, book.AskVolumes, book.BidPrices, book.BidVolumes)
	return dst
}

// DecodeOrderBook parses a fixed-size book payload.
func DecodeOrderBook(src []byte) (schema.OrderBook, bool) {
	if len(src) < BookPayloadSize {
		return schema.OrderBook{}, false
	}
	book := schema.OrderBook{
		Seq:        binary.LittleEndian.Uint64(src[0:8]),
		Instrument: schema.Instrument(binary.LittleEndian.Uint16(src[8:10])),
	}
	getLadders(src, &book.AskPrices, &book.AskVolumes, &book.BidPrices, &book.BidVolumes)
	return book, true
}

// EncodeTradeTicks serializes trade ticks; the wire layout matches the book
// snapshot, only the event type differs.
func EncodeTradeTicks(dst []byte, ticks schema.TradeTicks) []byte {
	return EncodeOrderBook(dst, schema.OrderBook(ticks))
}

// DecodeTradeTicks parses a fixed-size trade-ticks payload.
func DecodeTradeTicks(src []byte) (schema.TradeTicks, bool) {
	book, ok := DecodeOrderBook(src)
	return schema.TradeTicks(book), ok
}

func putLadders(dst []byte, askP schema.PriceLadder, askV schema.VolumeLadder, bidP schema.PriceLadder, bidV schema.VolumeLadder) {
	off := ladderOffset
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		binary.LittleEndian.PutUint64(dst[off:off+8], uint64(askP[i]))
	}
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		binary.LittleEndian.PutUint64(dst[off:off+8], uint64(askV[i]))
	}
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		binary.LittleEndian.PutUint64(dst[off:off+8], uint64(bidP[i]))
	}
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		binary.LittleEndian.PutUint64(dst[off:off+8], uint64(bidV[i]))
	}
}

func getLadders(src []byte, askP *schema.PriceLadder, askV *schema.VolumeLadder, bidP *schema.PriceLadder, bidV *schema.VolumeLadder) {
	off := ladderOffset
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		askP[i] = schema.Price(int64(binary.LittleEndian.Uint64(src[off : off+8])))
	}
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		askV[i] = schema.Quantity(int64(binary.LittleEndian.Uint64(src[off : off+8])))
	}
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		bidP[i] = schema.Price(int64(binary.LittleEndian.Uint64(src[off : off+8])))
	}
	for i := 0; i < schema.TopLevelCount; i, off = i+1, off+8 {
		bidV[i] = schema.Quantity(int64(binary.LittleEndian.Uint64(src[off : off+8])))
	}
}

func sized(dst []byte, size int) []byte {
	if cap(dst) < size {
		return make([]byte, size)
	}
	return dst[:size]
}
