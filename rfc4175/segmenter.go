package rfc4175

import (
	"errors"
	"fmt"
)

var (
	ErrMTUTooSmall       = errors.New("MTU too small for a single pixel group")
	ErrInvalidPixelGroup = errors.New("pixel group must contain at least one byte")
)

// PixelGroup is the smallest run of pixels that maps to a whole number of
// bytes for a sampling format. Packets never split a pixel group.
type PixelGroup struct {
	Pixels uint16
	Bytes  uint16
}

// Stream is the per-stream state the Segmenter reads. Sequence is advanced
// once for every emitted packet.
type Stream struct {
	MTU         uint16
	PayloadType uint8
	SSRC        uint32
	Timestamp   uint32
	Sequence    *Sequencer
}

// Line is one scanline (or the part of it starting at Offset) to send.
type Line struct {
	Number     uint16
	Offset     uint16
	Field      bool
	EndOfFrame bool
	Payload    []byte
}

// Packet is one header and payload chunk. Payload aliases the submitted line
// and must not be retained after emit returns.
type Packet struct {
	Header  Header
	Fields  HeaderFields
	Payload []byte
}

type Segmenter struct {
	group PixelGroup
}

func NewSegmenter(group PixelGroup) (*Segmenter, error) {
	if group.Bytes == 0 {
		return nil, ErrInvalidPixelGroup
	}
	return &Segmenter{group: group}, nil
}

func (s *Segmenter) PixelGroup() PixelGroup {
	return s.group
}

// MaxPayload returns the largest payload that fits into a datagram of size
// mtu, rounded down to whole pixel groups.
func (s *Segmenter) MaxPayload(mtu uint16) (int, error) {
	room := int(mtu) - HeaderSize
	if room <= 0 {
		return 0, fmt.Errorf("%w: mtu %d", ErrMTUTooSmall, mtu)
	}
	maxPayload := room / int(s.group.Bytes) * int(s.group.Bytes)
	if maxPayload <= 0 {
		return 0, fmt.Errorf("%w: mtu %d, pixel group %d bytes", ErrMTUTooSmall, mtu, s.group.Bytes)
	}
	return maxPayload, nil
}

// pixels returns the number of pixels covered by n bytes of whole pixel
// groups.
func (s *Segmenter) pixels(n int) int {
	return n / int(s.group.Bytes) * int(s.group.Pixels)
}

// Segment splits line into packets and hands them to emit in order. The
// marker bit is set on the last packet of the line iff line.EndOfFrame. An
// error from emit stops segmentation; packets emitted so far stay sent and
// the sequence number is not advanced for the failed packet.
func (s *Segmenter) Segment(st Stream, line Line, emit func(Packet) error) error {
	maxPayload, err := s.MaxPayload(st.MTU)
	if err != nil {
		return err
	}
	if len(line.Payload) == 0 {
		return nil
	}
	if line.Number > MaxLineNumber {
		return fmt.Errorf("%w: line %d", ErrLineOutOfRange, line.Number)
	}
	chunks := (len(line.Payload) + maxPayload - 1) / maxPayload
	lastOffset := int(line.Offset) + s.pixels((chunks-1)*maxPayload)
	if lastOffset > MaxOffset {
		return fmt.Errorf("%w: line %d reaches offset %d", ErrLineOutOfRange, line.Number, lastOffset)
	}

	offset := line.Offset
	payload := line.Payload
	for len(payload) > 0 {
		chunk := min(len(payload), maxPayload)
		last := chunk == len(payload)
		fields := HeaderFields{
			PayloadType:    st.PayloadType,
			Marker:         last && line.EndOfFrame,
			SequenceNumber: st.Sequence.Current(),
			Timestamp:      st.Timestamp,
			SSRC:           st.SSRC,
			Length:         uint16(chunk),
			Field:          line.Field,
			LineNumber:     line.Number,
			Offset:         offset,
		}
		header, err := EncodeHeader(fields)
		if err != nil {
			return err
		}
		if err = emit(Packet{
			Header:  header,
			Fields:  fields,
			Payload: payload[:chunk],
		}); err != nil {
			return err
		}
		st.Sequence.Advance()
		offset += uint16(s.pixels(chunk))
		payload = payload[chunk:]
	}
	return nil
}
