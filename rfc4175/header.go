// Package rfc4175 implements the packetization side of the RTP payload format
// for uncompressed video (RFC 4175).
//
// Every packet carries exactly one line segment, so the payload header is
// always the 2 byte extended sequence number followed by a single 6 byte
// segment header. Together with the 12 byte RTP header this gives a constant
// overhead of HeaderSize bytes per packet.
package rfc4175

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pion/rtp"
)

const (
	RTPHeaderSize        = 12
	ExtendedSequenceSize = 2
	SegmentHeaderSize    = 6
	HeaderSize           = RTPHeaderSize + ExtendedSequenceSize + SegmentHeaderSize

	// ClockRate is the RTP timestamp rate for video.
	ClockRate = 90_000

	Version = 2

	// MaxLineNumber and MaxOffset are limited to 15 bits by the F and C bits
	// sharing their 16 bit words.
	MaxLineNumber = 0x7fff
	MaxOffset     = 0x7fff
)

var (
	ErrLineOutOfRange = errors.New("line number or pixel offset out of range")
	ErrShortHeader    = errors.New("buffer too short for RFC4175 header")
)

// Header is the wire representation of the RTP header plus the RFC4175
// payload header of a single packet. It is a value, so every packet owns its
// header.
type Header [HeaderSize]byte

// HeaderFields are the decoded fields of a Header.
type HeaderFields struct {
	PayloadType uint8
	Marker      bool

	// SequenceNumber is the full 32 bit counter. The low 16 bits go into the
	// RTP header, the high 16 bits into the extended sequence number.
	SequenceNumber uint32
	Timestamp      uint32
	SSRC           uint32

	Length     uint16
	Field      bool
	LineNumber uint16
	Offset     uint16
}

// EncodeHeader builds the 20 byte header for one packet.
func EncodeHeader(f HeaderFields) (Header, error) {
	var h Header
	if f.LineNumber > MaxLineNumber {
		return h, fmt.Errorf("%w: line %d", ErrLineOutOfRange, f.LineNumber)
	}
	if f.Offset > MaxOffset {
		return h, fmt.Errorf("%w: offset %d", ErrLineOutOfRange, f.Offset)
	}
	rh := rtp.Header{
		Version:        Version,
		Marker:         f.Marker,
		PayloadType:    f.PayloadType & 0x7f,
		SequenceNumber: uint16(f.SequenceNumber),
		Timestamp:      f.Timestamp,
		SSRC:           f.SSRC,
	}
	n, err := rh.MarshalTo(h[:RTPHeaderSize])
	if err != nil {
		return h, err
	}
	if n != RTPHeaderSize {
		return h, fmt.Errorf("unexpected RTP header size: %d", n)
	}
	binary.BigEndian.PutUint16(h[12:], uint16(f.SequenceNumber>>16))
	binary.BigEndian.PutUint16(h[14:], f.Length)
	line := f.LineNumber
	if f.Field {
		line |= 0x8000
	}
	binary.BigEndian.PutUint16(h[16:], line)
	// C bit stays clear, there is never a second segment header.
	binary.BigEndian.PutUint16(h[18:], f.Offset)
	return h, nil
}

// ParseHeader decodes the RTP and RFC4175 headers at the start of buf.
func ParseHeader(buf []byte) (HeaderFields, error) {
	var rh rtp.Header
	n, err := rh.Unmarshal(buf)
	if err != nil {
		return HeaderFields{}, fmt.Errorf("%w: %w", ErrShortHeader, err)
	}
	if len(buf) < n+ExtendedSequenceSize+SegmentHeaderSize {
		return HeaderFields{}, ErrShortHeader
	}
	p := buf[n:]
	line := binary.BigEndian.Uint16(p[4:])
	return HeaderFields{
		PayloadType:    rh.PayloadType,
		Marker:         rh.Marker,
		SequenceNumber: uint32(binary.BigEndian.Uint16(p[0:]))<<16 | uint32(rh.SequenceNumber),
		Timestamp:      rh.Timestamp,
		SSRC:           rh.SSRC,
		Length:         binary.BigEndian.Uint16(p[2:]),
		Field:          line&0x8000 != 0,
		LineNumber:     line & MaxLineNumber,
		Offset:         binary.BigEndian.Uint16(p[6:]) & MaxOffset,
	}, nil
}

// RTP returns the RTP part of h in pion's representation.
func (h Header) RTP() rtp.Header {
	var rh rtp.Header
	// The first 12 bytes are always a valid fixed header.
	_, _ = rh.Unmarshal(h[:RTPHeaderSize])
	return rh
}

// PayloadHeader returns the RFC4175 payload header bytes of h, i.e. the
// bytes that precede the pixel data in the RTP payload.
func (h Header) PayloadHeader() []byte {
	return h[RTPHeaderSize:]
}
