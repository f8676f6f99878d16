package rfc4175

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencerWraps(t *testing.T) {
	s := NewSequencer(math.MaxUint32)
	assert.Equal(t, uint32(math.MaxUint32), s.Current())
	s.Advance()
	assert.Equal(t, uint32(0), s.Current())
}

func TestSequencerImplementsPionSequencer(t *testing.T) {
	s := NewSequencer(0xfffe)
	assert.Equal(t, uint16(0xfffe), s.NextSequenceNumber())
	assert.Equal(t, uint64(0), s.RollOverCount())
	assert.Equal(t, uint16(0xffff), s.NextSequenceNumber())
	assert.Equal(t, uint64(1), s.RollOverCount())
	assert.Equal(t, uint16(0), s.NextSequenceNumber())
	assert.Equal(t, uint32(0x1_0001), s.Current())
}
