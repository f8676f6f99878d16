package flags

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterInto(t *testing.T) {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	RegisterInto(fs, MTUFlag, WriteTimeoutFlag, FormatFlag)

	require.NoError(t, fs.Parse([]string{"-mtu", "9000", "-write-timeout", "20ms", "-format", "RGBA-10"}))
	assert.Equal(t, uint(9000), MTU)
	assert.Equal(t, 20*time.Millisecond, WriteTimeout)
	assert.Equal(t, "RGBA-10", Format)

	assert.Error(t, fs.Parse([]string{"-width", "10"}))
}

func TestRegisterIntoUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	assert.Panics(t, func() {
		RegisterInto(fs, FlagName("no-such-flag"))
	})
}
