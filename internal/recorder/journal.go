package recorder

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"

	"main/internal/schema"
)

const (
	journalVersion uint16 = 1
	frameHeaderLen        = 56
	frameTrailerLen       = 4
)

var (
	journalMagic = [4]byte{'T', 'J', 'L', '1'}
	crcTable     = crc32.MakeTable(crc32.Castagnoli)
)

var (
	ErrBadMagic           = errors.New("journal bad magic")
	ErrUnsupportedVersion = errors.New("journal unsupported version")
	ErrShortFrame         = errors.New("journal short frame")
	ErrChecksumMismatch   = errors.New("journal checksum mismatch")
	ErrFrameTooLarge      = errors.New("journal frame too large")
)

func encodeFrameHeader(dst []byte, header schema.EventHeader, payloadLen int) {
	_ = dst[frameHeaderLen-1]
	copy(dst[0:4], journalMagic[:])
	binary.LittleEndian.PutUint16(dst[4:6], journalVersion)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(frameHeaderLen))
	binary.LittleEndian.PutUint16(dst[8:10], uint16(header.Type))
	binary.LittleEndian.PutUint16(dst[10:12], header.Version)
	binary.LittleEndian.PutUint16(dst[12:14], header.Source)
	binary.LittleEndian.PutUint16(dst[14:16], header.Flags)
	binary.LittleEndian.PutUint32(dst[16:20], uint32(payloadLen))
	binary.LittleEndian.PutUint64(dst[20:28], header.Seq)
	binary.LittleEndian.PutUint64(dst[28:36], uint64(header.TsEvent))
	binary.LittleEndian.PutUint64(dst[36:44], uint64(header.TsRecv))
	binary.LittleEndian.PutUint64(dst[44:52], header.TraceID)
	binary.LittleEndian.PutUint32(dst[52:56], 0)
}

func decodeFrameHeader(src []byte) (schema.EventHeader, uint32, error) {
	if len(src) < frameHeaderLen {
		return schema.EventHeader{}, 0, ErrShortFrame
	}
	if !bytes.Equal(src[0:4], journalMagic[:]) {
		return schema.EventHeader{}, 0, ErrBadMagic
	}
	if ver := binary.LittleEndian.Uint16(src[4:6]); ver != journalVersion {
		return schema.EventHeader{}, 0, ErrUnsupportedVersion
	}
	if size := binary.LittleEndian.Uint16(src[6:8]); size != frameHeaderLen {
		return schema.EventHeader{}, 0, ErrShortFrame
	}
	h := schema.EventHeader{
		Type:    schema.EventType(binary.LittleEndian.Uint16(src[8:10])),
		Version: binary.LittleEndian.Uint16(src[10:12]),
		Source:  binary.LittleEndian.Uint16(src[12:14]),
		Flags:   binary.LittleEndian.Uint16(src[14:16]),
		Seq:     binary.LittleEndian.Uint64(src[20:28]),
		TsEvent: int64(binary.LittleEndian.Uint64(src[28:36])),
		TsRecv:  int64(binary.LittleEndian.Uint64(src[36:44])),
		TraceID: binary.LittleEndian.Uint64(src[44:52]),
	}
	return h, binary.LittleEndian.Uint32(src[16:20]), nil
}

func frameChecksum(header, payload []byte) uint32 {
	crc := crc32.Update(0, crcTable, header)
	return crc32.Update(crc, crcTable, payload)
}

// journalReader decodes frames sequentially from one segment file.
type journalReader struct {
	r          *bufio.Reader
	maxPayload int
	headerBuf  []byte
	payload    []byte
}

func newJournalReader(r io.Reader, maxPayload int) *journalReader {
	return &journalReader{
		r:          bufio.NewReader(r),
		maxPayload: maxPayload,
		headerBuf:  make([]byte, frameHeaderLen),
	}
}

// next returns the following frame. The payload slice is reused across
// calls.
func (r *journalReader) next() (schema.EventHeader, []byte, error) {
	n, err := io.ReadFull(r.r, r.headerBuf)
	if err != nil {
		if err == io.EOF && n == 0 {
			return schema.EventHeader{}, nil, io.EOF
		}
		return schema.EventHeader{}, nil, err
	}

	header, payloadLen, err := decodeFrameHeader(r.headerBuf)
	if err != nil {
		return header, nil, err
	}
	if r.maxPayload > 0 && payloadLen > uint32(r.maxPayload) {
		return header, nil, ErrFrameTooLarge
	}

	if cap(r.payload) < int(payloadLen) {
		r.payload = make([]byte, payloadLen)
	}
	r.payload = r.payload[:payloadLen]
	if payloadLen > 0 {
		if _, err := io.ReadFull(r.r, r.payload); err != nil {
			return header, nil, err
		}
	}

	var trailer [frameTrailerLen]byte
	if _, err := io.ReadFull(r.r, trailer[:]); err != nil {
		return header, nil, err
	}
	if binary.LittleEndian.Uint32(trailer[:]) != frameChecksum(r.headerBuf, r.payload) {
		return header, nil, ErrChecksumMismatch
	}
	return header, r.payload, nil
}
