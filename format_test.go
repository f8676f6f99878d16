package rtpvideotx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPixelGroup(t *testing.T) {
	pg, err := LookupPixelGroup(RGB_8bit)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), pg.Pixels)
	assert.Equal(t, uint16(3), pg.Bytes)

	pg, err = LookupPixelGroup(RGB_10bit)
	require.NoError(t, err)
	assert.Equal(t, uint16(4), pg.Pixels)
	assert.Equal(t, uint16(15), pg.Bytes)

	_, err = LookupPixelGroup(Format(-1))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = LookupPixelGroup(BGRA_16bit + 1)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEveryFormatHasGeometryAndName(t *testing.T) {
	for f := YCbCr411_8bit; f <= BGRA_16bit; f++ {
		pg, err := LookupPixelGroup(f)
		require.NoError(t, err, "format %d", f)
		assert.Positive(t, pg.Bytes)
		assert.Positive(t, pg.Pixels)

		parsed, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	assert.Len(t, Formats(), int(BGRA_16bit)+1)
}

func TestParseFormatUnknown(t *testing.T) {
	_, err := ParseFormat("RGB-9")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, "Format(99)", Format(99).String())
}
