package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const (
	FillPayloadSize   = 24
	StatusPayloadSize = 32
)

// EncodeOrderFilled serializes a fill into a fixed-size payload.
func EncodeOrderFilled(dst []byte, fill schema.OrderFilled) []byte {
	dst = sized(dst, FillPayloadSize)
	binary.LittleEndian.PutUint64(dst[0:8], fill.OrderID)
	binary.LittleEndian.PutUint64(dst[8:16], uint64(fill.Price))
	binary.LittleEndian.PutUint64(dst[16:24], uint64(fill.Volume))
	return dst
}

// DecodeOrderFilled parses a fixed-size fill payload.
func DecodeOrderFilled(src []byte) (schema.OrderFilled, bool) {
	if len(src) < FillPayloadSize {
		return schema.OrderFilled{}, false
	}
	return schema.OrderFilled{
		OrderID: binary.LittleEndian.Uint64(src[0:8]),
		Price:   schema.Price(int64(binary.LittleEndian.Uint64(src[8:16]))),
		Volume:  schema.Quantity(int64(binary.LittleEndian.Uint64(src[16:24]))),
	}, true
}

// EncodeHedgeFilled serializes a hedge fill; the layout matches OrderFilled.
func EncodeHedgeFilled(dst []byte, fill schema.HedgeFilled) []byte {
	return EncodeOrderFilled(dst, schema.OrderFilled(fill))
}

// DecodeHedgeFilled parses a fixed-size hedge-fill payload.
func DecodeHedgeFilled(src []byte) (schema.HedgeFilled, bool) {
	fill, ok := DecodeOrderFilled(src)
	return schema.HedgeFilled(fill), ok
}

// EncodeOrderStatus serializes a status update into a fixed-size payload.
func EncodeOrderStatus(dst []byte, status schema.OrderStatus) []byte {
	dst = sized(dst, StatusPayloadSize)
	binary.LittleEndian.PutUint64(dst[0:8], status.OrderID)
	binary.LittleEndian.PutUint64(dst[8:16], uint64(status.FillVolume))
	binary.LittleEndian.PutUint64(dst[16:24], uint64(status.RemainingVolume))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(status.Fees))
	return dst
}

// DecodeOrderStatus parses a fixed-size status payload.
func DecodeOrderStatus(src []byte) (schema.OrderStatus, bool) {
	if len(src) < StatusPayloadSize {
		return schema.OrderStatus{}, false
	}
	return schema.OrderStatus{
		OrderID:         binary.LittleEndian.Uint64(src[0:8]),
		FillVolume:      schema.Quantity(int64(binary.LittleEndian.Uint64(src[8:16]))),
		RemainingVolume: schema.Quantity(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Fees:            schema.Fee(int64(binary.LittleEndian.Uint64(src[24:32]))),
	}, true
}
