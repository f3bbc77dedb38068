package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

// errorHeaderSize covers the order id and the message length prefix.
const errorHeaderSize = 10

// EncodeVenueError serializes a venue error. The payload is variable length:
// order id, a message length prefix, and the message bytes.
func EncodeVenueError(dst []byte, venueErr schema.VenueError) []byte {
	msg := venueErr.Message
	if len(msg) > int(^uint16(0)) {
		msg = msg[:int(^uint16(0))]
	}
	dst = sized(dst, errorHeaderSize+len(msg))
	binary.LittleEndian.PutUint64(dst[0:8], venueErr.OrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(len(msg)))
	copy(dst[errorHeaderSize:], msg)
	return dst
}

// DecodeVenueError parses a venue-error payload.
func DecodeVenueError(src []byte) (schema.VenueError, bool) {
	if len(src) < errorHeaderSize {
		return schema.VenueError{}, false
	}
	msgLen := int(binary.LittleEndian.Uint16(src[8:10]))
	if len(src) < errorHeaderSize+msgLen {
		return schema.VenueError{}, false
	}
	return schema.VenueError{
		OrderID: binary.LittleEndian.Uint64(src[0:8]),
		Message: string(src[errorHeaderSize : errorHeaderSize+msgLen]),
	}, true
}
