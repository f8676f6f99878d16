package rfc4175

import "github.com/pion/rtp"

var _ rtp.Sequencer = (*Sequencer)(nil)

// Sequencer is the 32 bit sequence counter of a stream. The RTP header only
// carries the low 16 bits, RFC4175 adds the high 16 bits in the extended
// sequence number field.
type Sequencer struct {
	next uint32
}

func NewSequencer(initial uint32) *Sequencer {
	return &Sequencer{next: initial}
}

// Current returns the sequence number the next packet will use.
func (s *Sequencer) Current() uint32 {
	return s.next
}

// Advance moves to the next sequence number, wrapping at 2^32.
func (s *Sequencer) Advance() {
	s.next++
}

// NextSequenceNumber implements rtp.Sequencer.
func (s *Sequencer) NextSequenceNumber() uint16 {
	n := s.next
	s.next++
	return uint16(n)
}

// RollOverCount implements rtp.Sequencer.
func (s *Sequencer) RollOverCount() uint64 {
	return uint64(s.next >> 16)
}
