package rtpvideotx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineBufferFirstAllocation(t *testing.T) {
	b := NewLineBuffer(4*1500, defaultMaxLineBuffer)
	buf, err := b.Acquire(100)
	require.NoError(t, err)
	assert.Len(t, buf, 100)
	assert.Equal(t, 6000, b.Cap())

	b = NewLineBuffer(4*1500, defaultMaxLineBuffer)
	buf, err = b.Acquire(10_000)
	require.NoError(t, err)
	assert.Len(t, buf, 10_000)
	assert.Equal(t, 10_000, b.Cap())
}

func TestLineBufferGrowthPreservesBytes(t *testing.T) {
	b := NewLineBuffer(64, defaultMaxLineBuffer)
	first, err := b.Acquire(48)
	require.NoError(t, err)
	for i := range first {
		first[i] = byte(i + 1)
	}

	second, err := b.Acquire(1000)
	require.NoError(t, err)
	assert.Len(t, second, 1000)
	assert.GreaterOrEqual(t, b.Cap(), 1048)

	written := b.Bytes()
	require.Len(t, written, 1048)
	for i := range 48 {
		assert.Equal(t, byte(i+1), written[i])
	}
}

func TestLineBufferNeverShrinks(t *testing.T) {
	b := NewLineBuffer(16, defaultMaxLineBuffer)
	_, err := b.Acquire(4096)
	require.NoError(t, err)
	capacity := b.Cap()

	b.Reset()
	assert.Zero(t, b.Len())
	buf, err := b.Acquire(8)
	require.NoError(t, err)
	assert.Len(t, buf, 8)
	assert.Equal(t, capacity, b.Cap())
}

func TestLineBufferOutOfMemory(t *testing.T) {
	b := NewLineBuffer(64, 1024)
	_, err := b.Acquire(2048)
	assert.ErrorIs(t, err, ErrOutOfMemory)

	buf, err := b.Acquire(512)
	require.NoError(t, err)
	assert.Len(t, buf, 512)

	_, err = b.Acquire(600)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 512, b.Len())

	b.Reset()
	_, err = b.Acquire(1024)
	assert.NoError(t, err)
}

func TestLineBufferRelease(t *testing.T) {
	b := NewLineBuffer(64, 1024)
	_, err := b.Acquire(10)
	require.NoError(t, err)
	b.Release()
	assert.Zero(t, b.Cap())
	assert.Empty(t, b.Bytes())
}
