package rtpvideotx

import (
	"errors"
	"log/slog"
	"math/rand/v2"
)

type SessionOption func(*Session) error

// WithTransport sets the transport packets are written to. The session owns
// the transport and closes it on Close.
func WithTransport(t Transport) SessionOption {
	return func(s *Session) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		s.transport = t
		return nil
	}
}

func WithMTU(mtu uint16) SessionOption {
	return func(s *Session) error {
		s.mtu = mtu
		return nil
	}
}

func WithPayloadType(pt uint8) SessionOption {
	return func(s *Session) error {
		s.payloadType = pt
		return nil
	}
}

// WithSSRC sets a fixed SSRC instead of drawing one from the random source.
func WithSSRC(ssrc uint32) SessionOption {
	return func(s *Session) error {
		s.ssrc = ssrc
		s.fixedSSRC = true
		return nil
	}
}

// WithRandSource sets the source the SSRC and the initial sequence number are
// drawn from.
func WithRandSource(src rand.Source) SessionOption {
	return func(s *Session) error {
		if src == nil {
			return errors.New("rand source must not be nil")
		}
		s.rand = rand.New(src)
		return nil
	}
}

// WithInitialSequenceNumber sets the 32 bit sequence number of the first
// packet instead of drawing it from the random source.
func WithInitialSequenceNumber(seq uint32) SessionOption {
	return func(s *Session) error {
		s.initialSeq = seq
		s.fixedSeq = true
		return nil
	}
}

// WithMaxLineBuffer limits the size of the line buffer. Requests beyond the
// limit fail with ErrOutOfMemory.
func WithMaxLineBuffer(limit int) SessionOption {
	return func(s *Session) error {
		if limit <= 0 {
			return errors.New("line buffer limit must be positive")
		}
		s.maxLineBuffer = limit
		return nil
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) error {
		s.logger = logger
		return nil
	}
}

// WithPacketLogger enables tracing of every sent packet.
func WithPacketLogger(l PacketLogger) SessionOption {
	return func(s *Session) error {
		s.packetLogger = l
		return nil
	}
}
