package rtpvideotx

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mengelbart/rtpvideotx/rfc4175"
	"github.com/mengelbart/rtpvideotx/udp"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
)

const (
	DefaultMTU         = 1492
	DefaultPayloadType = 96
)

// LineFlags modify how SubmitLine sends a line.
type LineFlags uint

const (
	// EndOfFrame marks the line as the last one of a frame or field. Its
	// final packet carries the RTP marker bit.
	EndOfFrame LineFlags = 1 << iota

	// SecondField sets the F bit for lines of the second field of an
	// interlaced frame.
	SecondField
)

// PacketLogger receives every packet after it was sent. The attributes carry
// the packet's rfc4175.HeaderFields under rfc4175.HeaderFieldsKey.
type PacketLogger interface {
	LogRTPPacket(header *rtp.Header, payload []byte, attributes interceptor.Attributes)
}

// Session sends one RFC4175 video stream. A Session is owned by a single
// caller and must not be used concurrently.
type Session struct {
	format    Format
	segmenter *rfc4175.Segmenter
	transport Transport
	buffer    *LineBuffer
	sequencer *rfc4175.Sequencer

	mtu         uint16
	payloadType uint8
	ssrc        uint32
	fixedSSRC   bool
	initialSeq  uint32
	fixedSeq    bool
	timestamp   uint32
	frameOpen   bool
	closed      bool

	rand          *rand.Rand
	maxLineBuffer int
	logger        *slog.Logger
	packetLogger  PacketLogger
}

// NewSession creates a session for format. Without WithTransport the session
// sends over a UDP socket that is bound on the first SetDestination.
func NewSession(format Format, opts ...SessionOption) (*Session, error) {
	pg, err := LookupPixelGroup(format)
	if err != nil {
		return nil, err
	}
	segmenter, err := rfc4175.NewSegmenter(pg)
	if err != nil {
		return nil, err
	}
	s := &Session{
		format:        format,
		segmenter:     segmenter,
		mtu:           DefaultMTU,
		payloadType:   DefaultPayloadType,
		maxLineBuffer: defaultMaxLineBuffer,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err = opt(s); err != nil {
			return nil, err
		}
	}
	if s.rand == nil {
		var seed [32]byte
		if _, err = crand.Read(seed[:]); err != nil {
			return nil, err
		}
		s.rand = rand.New(rand.NewChaCha8(seed))
	}
	if !s.fixedSSRC {
		s.ssrc = s.rand.Uint32()
	}
	if !s.fixedSeq {
		// Keep the first packets away from an extended sequence wrap.
		s.initialSeq = s.rand.Uint32N(0x8000)
	}
	if s.transport == nil {
		t, err := udp.New()
		if err != nil {
			return nil, err
		}
		s.transport = t
	}
	s.sequencer = rfc4175.NewSequencer(s.initialSeq)
	s.buffer = NewLineBuffer(4*int(s.mtu), s.maxLineBuffer)

	s.logger = s.logger.With("ssrc", s.ssrc, "format", format.String())
	s.logger.Debug("created session", "mtu", s.mtu, "payload-type", s.payloadType, "sequence-number", s.initialSeq)
	return s, nil
}

// Close releases the line buffer and closes the transport.
func (s *Session) Close() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.buffer.Release()
	return s.transport.Close()
}

func (s *Session) SetDestination(host string, port uint16) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.transport.SetDestination(host, port); err != nil {
		if !errors.Is(err, ErrInvalidDestination) {
			err = fmt.Errorf("%w: %w", ErrInvalidDestination, err)
		}
		return err
	}
	s.logger.Info("set destination", "host", host, "port", port)
	return nil
}

func (s *Session) ClearDestination() error {
	if s.closed {
		return ErrSessionClosed
	}
	return s.transport.ClearDestination()
}

// SetMTU sets the maximum datagram size including all headers. An MTU too
// small for one pixel group is only reported by SubmitLine.
func (s *Session) SetMTU(mtu uint16) {
	s.mtu = mtu
}

func (s *Session) SetPayloadType(pt uint8) {
	s.payloadType = pt
}

func (s *Session) SetSSRC(ssrc uint32) {
	s.ssrc = ssrc
}

func (s *Session) Format() Format {
	return s.format
}

func (s *Session) MTU() uint16 {
	return s.mtu
}

func (s *Session) PayloadType() uint8 {
	return s.payloadType
}

func (s *Session) SSRC() uint32 {
	return s.ssrc
}

func (s *Session) Timestamp() uint32 {
	return s.timestamp
}

// SequenceNumber returns the 32 bit sequence number of the next packet.
func (s *Session) SequenceNumber() uint32 {
	return s.sequencer.Current()
}

// BeginFrame starts a new frame. All lines submitted until the next
// BeginFrame carry timestamp.
func (s *Session) BeginFrame(timestamp uint32) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.frameOpen {
		s.logger.Debug("frame started before previous frame ended", "timestamp", s.timestamp)
	}
	s.timestamp = timestamp
	s.frameOpen = true
	s.buffer.Reset()
	return nil
}

// AcquireLineBuffer returns length writable bytes from the session's line
// buffer. The slice is valid until the next call to AcquireLineBuffer or
// SubmitLine.
func (s *Session) AcquireLineBuffer(length int) ([]byte, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.buffer.Acquire(length)
}

// SubmitLine packetizes line and sends the packets synchronously. The line
// buffer is reset afterwards, whether sending succeeded or not.
func (s *Session) SubmitLine(lineNumber, pixelOffset uint16, line []byte, flags LineFlags) error {
	if s.closed {
		return ErrSessionClosed
	}
	defer s.buffer.Reset()

	if !s.frameOpen {
		s.logger.Debug("line submitted outside of a frame", "line", lineNumber)
	}
	endOfFrame := flags&EndOfFrame != 0
	err := s.segmenter.Segment(rfc4175.Stream{
		MTU:         s.mtu,
		PayloadType: s.payloadType,
		SSRC:        s.ssrc,
		Timestamp:   s.timestamp,
		Sequence:    s.sequencer,
	}, rfc4175.Line{
		Number:     lineNumber,
		Offset:     pixelOffset,
		Field:      flags&SecondField != 0,
		EndOfFrame: endOfFrame,
		Payload:    line,
	}, s.writePacket)
	if endOfFrame {
		s.frameOpen = false
	}
	if err != nil {
		s.logger.Debug("failed to submit line", "line", lineNumber, "length", len(line), "error", err)
		return err
	}
	return nil
}

func (s *Session) writePacket(p rfc4175.Packet) error {
	want := rfc4175.HeaderSize + len(p.Payload)
	n, err := s.transport.WritePacket(p.Header[:], p.Payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if n != want {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrTransport, n, want)
	}
	if s.packetLogger != nil {
		header := p.Header.RTP()
		s.packetLogger.LogRTPPacket(&header, p.Payload, interceptor.Attributes{
			rfc4175.HeaderFieldsKey: p.Fields,
		})
	}
	return nil
}

// Flush exists for symmetry with the frame lifecycle. Packets are sent by
// SubmitLine, so there is nothing left to flush.
func (s *Session) Flush() error {
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}
