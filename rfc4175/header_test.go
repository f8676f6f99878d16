package rfc4175

import (
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeaderLayout(t *testing.T) {
	h, err := EncodeHeader(HeaderFields{
		PayloadType:    96,
		Marker:         true,
		SequenceNumber: 0x0102_0304,
		Timestamp:      0x0506_0708,
		SSRC:           0x090a_0b0c,
		Length:         1479,
		LineNumber:     575,
		Offset:         493,
	})
	require.NoError(t, err)

	expected := Header{
		0x80, 0x80 | 96,
		0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c,
		0x01, 0x02,
		0x05, 0xc7,
		0x02, 0x3f,
		0x01, 0xed,
	}
	assert.Equal(t, expected, h)
}

func TestEncodeHeaderMarkerClear(t *testing.T) {
	h, err := EncodeHeader(HeaderFields{PayloadType: 96})
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), h[0])
	assert.Equal(t, byte(96), h[1])
}

func TestEncodeHeaderMasksPayloadType(t *testing.T) {
	h, err := EncodeHeader(HeaderFields{PayloadType: 0xff})
	require.NoError(t, err)
	assert.Equal(t, byte(0x7f), h[1])
}

func TestEncodeHeaderFieldBit(t *testing.T) {
	h, err := EncodeHeader(HeaderFields{Field: true, LineNumber: 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x03}, h[16:18])

	f, err := ParseHeader(h[:])
	require.NoError(t, err)
	assert.True(t, f.Field)
	assert.Equal(t, uint16(3), f.LineNumber)
}

func TestEncodeHeaderRange(t *testing.T) {
	_, err := EncodeHeader(HeaderFields{LineNumber: MaxLineNumber + 1})
	assert.ErrorIs(t, err, ErrLineOutOfRange)

	_, err = EncodeHeader(HeaderFields{Offset: MaxOffset + 1})
	assert.ErrorIs(t, err, ErrLineOutOfRange)
}

func TestHeaderIsReadableByPion(t *testing.T) {
	fields := HeaderFields{
		PayloadType:    112,
		Marker:         true,
		SequenceNumber: 0x0001_fffe,
		Timestamp:      3600,
		SSRC:           0xdeadbeef,
		Length:         4,
		LineNumber:     10,
		Offset:         20,
	}
	h, err := EncodeHeader(fields)
	require.NoError(t, err)

	datagram := append(h[:], 1, 2, 3, 4)
	var pkt rtp.Packet
	require.NoError(t, pkt.Unmarshal(datagram))

	assert.Equal(t, uint8(2), pkt.Version)
	assert.False(t, pkt.Padding)
	assert.False(t, pkt.Extension)
	assert.Empty(t, pkt.CSRC)
	assert.True(t, pkt.Marker)
	assert.Equal(t, uint8(112), pkt.PayloadType)
	assert.Equal(t, uint16(0xfffe), pkt.SequenceNumber)
	assert.Equal(t, uint32(3600), pkt.Timestamp)
	assert.Equal(t, uint32(0xdeadbeef), pkt.SSRC)
	assert.Equal(t, append(h.PayloadHeader(), 1, 2, 3, 4), pkt.Payload)

	rh := h.RTP()
	assert.Equal(t, pkt.Header.SequenceNumber, rh.SequenceNumber)
	assert.Equal(t, pkt.Header.Marker, rh.Marker)

	parsed, err := ParseHeader(datagram)
	require.NoError(t, err)
	assert.Equal(t, fields, parsed)
}

func TestParseHeaderShort(t *testing.T) {
	h, err := EncodeHeader(HeaderFields{})
	require.NoError(t, err)

	_, err = ParseHeader(h[:HeaderSize-1])
	assert.ErrorIs(t, err, ErrShortHeader)

	_, err = ParseHeader(h[:4])
	assert.ErrorIs(t, err, ErrShortHeader)
}
