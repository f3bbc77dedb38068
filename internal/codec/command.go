package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const (
	InsertPayloadSize = 32
	CancelPayloadSize = 8
	HedgePayloadSize  = 32
)

// EncodeInsertOrder serializes an insert command into a fixed-size payload.
func EncodeInsertOrder(dst []byte, order schema.InsertOrder) []byte {
	dst = sized(dst, InsertPayloadSize)
	binary.LittleEndian.PutUint64(dst[0:8], order.OrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(order.Side))
	binary.LittleEndian.PutUint16(dst[10:12], uint16(order.Lifespan))
	binary.LittleEndian.PutUint32(dst[12:16], 0)
	binary.LittleEndian.PutUint64(dst[16:24], uint64(order.Price))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(order.Quantity))
	return dst
}

// DecodeInsertOrder parses a fixed-size insert payload.
func DecodeInsertOrder(src []byte) (schema.InsertOrder, bool) {
	if len(src) < InsertPayloadSize {
		return schema.InsertOrder{}, false
	}
	return schema.InsertOrder{
		OrderID:  binary.LittleEndian.Uint64(src[0:8]),
		Side:     schema.Side(binary.LittleEndian.Uint16(src[8:10])),
		Lifespan: schema.Lifespan(binary.LittleEndian.Uint16(src[10:12])),
		Price:    schema.Price(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Quantity: schema.Quantity(int64(binary.LittleEndian.Uint64(src[24:32]))),
	}, true
}

// EncodeCancelOrder serializes a cancel command.
func EncodeCancelOrder(dst []byte, cancel schema.CancelOrder) []byte {
	dst = sized(dst, CancelPayloadSize)
	binary.LittleEndian.PutUint64(dst[0:8], cancel.OrderID)
	return dst
}

// DecodeCancelOrder parses a cancel payload.
func DecodeCancelOrder(src []byte) (schema.CancelOrder, bool) {
	if len(src) < CancelPayloadSize {
		return schema.CancelOrder{}, false
	}
	return schema.CancelOrder{OrderID: binary.LittleEndian.Uint64(src[0:8])}, true
}

// EncodeHedgeOrder serializes a hedge command into a fixed-size payload.
func EncodeHedgeOrder(dst []byte, hedge schema.HedgeOrder) []byte {
	dst = sized(dst, HedgePayloadSize)
	binary.LittleEndian.PutUint64(dst[0:8], hedge.OrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(hedge.Side))
	binary.LittleEndian.PutUint16(dst[10:12], 0)
	binary.LittleEndian.PutUint32(dst[12:16], 0)
	binary.LittleEndian.PutUint64(dst[16:24], uint64(hedge.Price))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(hedge.Volume))
	return dst
}

// DecodeHedgeOrder parses a fixed-size hedge payload.
func DecodeHedgeOrder(src []byte) (schema.HedgeOrder, bool) {
	if len(src) < HedgePayloadSize {
		return schema.HedgeOrder{}, false
	}
	return schema.HedgeOrder{
		OrderID: binary.LittleEndian.Uint64(src[0:8]),
		Side:    schema.Side(binary.LittleEndian.Uint16(src[8:10])),
		Price:   schema.Price(int64(binary.LittleEndian.Uint64(src[16:24]))),
		Volume:  schema.Quantity(int64(binary.LittleEndian.Uint64(src[24:32]))),
	}, true
}
