// Package flags implements command-line flags for rtpvideotx.
//
// The design idea is taken from [upspin.io/flags], but most of the code is
// modified. This package uses a slightly modified version of [RegisterInto] and
// the internal [flags]-map. See [Upspin LICENSE] for upspins copyright and
// license information.
//
// [upspin.io/flags]: https://github.com/upspin/upspin/tree/334f107fe3d98225d7adfbb35b74e066fbca9875/flags
// [Upspin LICENSE]: https://github.com/upspin/upspin/blob/334f107fe3d98225d7adfbb35b74e066fbca9875/LICENSE
package flags

import (
	"flag"
	"fmt"
	"time"

	"github.com/mengelbart/rtpvideotx"
)

type FlagName string

// flag keys
const (
	LocalAddrFlag  FlagName = "local"
	LocalPortFlag  FlagName = "local-port"
	RemoteAddrFlag FlagName = "remote"
	RTPPortFlag    FlagName = "rtp-port"

	FormatFlag      FlagName = "format"
	WidthFlag       FlagName = "width"
	HeightFlag      FlagName = "height"
	FPSFlag         FlagName = "fps"
	CropTopFlag     FlagName = "crop-top"
	CropLeftFlag    FlagName = "crop-left"
	CropBottomFlag  FlagName = "crop-bottom"
	CropRightFlag   FlagName = "crop-right"
	FramesFlag      FlagName = "frames"
	MTUFlag         FlagName = "mtu"
	PayloadTypeFlag FlagName = "pt"
	SSRCFlag        FlagName = "ssrc"

	WriteTimeoutFlag FlagName = "write-timeout"

	TraceRTPSendFlag FlagName = "trace-rtp-send"
)

// Flag vars
var (
	// LocalAddr is the address the UDP socket binds to, empty means any.
	LocalAddr = ""
	LocalPort = uint(0)

	RemoteAddr = "127.0.0.1"

	// RTP destination port
	RTPPort = uint(5004)

	Format = rtpvideotx.RGB_8bit.String()
	Width  = uint(720)
	Height = uint(576)
	FPS    = uint(25)

	CropTop    = uint(0)
	CropLeft   = uint(0)
	CropBottom = uint(0)
	CropRight  = uint(0)

	// Frames is the number of frames to send, 0 sends until interrupted.
	Frames = uint(0)

	MTU         = uint(rtpvideotx.DefaultMTU)
	PayloadType = uint(rtpvideotx.DefaultPayloadType)
	SSRC        = uint(0)

	WriteTimeout = time.Duration(0)

	TraceRTPSend = false
)

type flagVar func(*flag.FlagSet)

func stringVar(p *string, name FlagName, defaultValue *string, usage string) func(*flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		fs.StringVar(p, string(name), *defaultValue, usage)
	}
}

func uintVar(p *uint, name FlagName, defaultValue *uint, usage string) func(*flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		fs.UintVar(p, string(name), *defaultValue, usage)
	}
}

func boolVar(p *bool, name FlagName, defaultValue *bool, usage string) func(*flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		fs.BoolVar(p, string(name), *defaultValue, usage)
	}
}

func durationVar(p *time.Duration, name FlagName, defaultValue *time.Duration, usage string) func(*flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		fs.DurationVar(p, string(name), *defaultValue, usage)
	}
}

var flags = map[FlagName]flagVar{
	// Address related flags
	LocalAddrFlag:  stringVar(&LocalAddr, LocalAddrFlag, &LocalAddr, "Local address to bind the UDP socket to (empty: any)"),
	LocalPortFlag:  uintVar(&LocalPort, LocalPortFlag, &LocalPort, "Local UDP port (0: ephemeral)"),
	RemoteAddrFlag: stringVar(&RemoteAddr, RemoteAddrFlag, &RemoteAddr, "Address of the receiver"),
	RTPPortFlag:    uintVar(&RTPPort, RTPPortFlag, &RTPPort, "UDP Port number for outgoing RTP stream"),

	// Video flags
	FormatFlag: stringVar(&Format, FormatFlag, &Format, "Sampling format, e.g. RGB-8, RGBA-10, YCbCr-4:2:2-10"),
	WidthFlag:  uintVar(&Width, WidthFlag, &Width, "Frame width in pixels"),
	HeightFlag: uintVar(&Height, HeightFlag, &Height, "Frame height in lines"),
	FPSFlag:    uintVar(&FPS, FPSFlag, &FPS, "Frames per second"),

	CropTopFlag:    uintVar(&CropTop, CropTopFlag, &CropTop, "Lines to skip at the top of the frame"),
	CropLeftFlag:   uintVar(&CropLeft, CropLeftFlag, &CropLeft, "Pixels to skip at the start of each line"),
	CropBottomFlag: uintVar(&CropBottom, CropBottomFlag, &CropBottom, "Lines to skip at the bottom of the frame"),
	CropRightFlag:  uintVar(&CropRight, CropRightFlag, &CropRight, "Pixels to skip at the end of each line"),

	FramesFlag: uintVar(&Frames, FramesFlag, &Frames, "Number of frames to send (0: until interrupted)"),

	// RTP flags
	MTUFlag:         uintVar(&MTU, MTUFlag, &MTU, "Maximum datagram size including RTP and RFC4175 headers"),
	PayloadTypeFlag: uintVar(&PayloadType, PayloadTypeFlag, &PayloadType, "RTP payload type"),
	SSRCFlag:        uintVar(&SSRC, SSRCFlag, &SSRC, "RTP SSRC (0: random)"),

	WriteTimeoutFlag: durationVar(&WriteTimeout, WriteTimeoutFlag, &WriteTimeout, "Timeout for a single datagram write (0: block)"),

	// tracing flags
	TraceRTPSendFlag: boolVar(&TraceRTPSend, TraceRTPSendFlag, &TraceRTPSend, "Log outgoing RTP packets"),
}

func RegisterInto(fs *flag.FlagSet, names ...FlagName) {
	if len(names) == 0 {
		for _, f := range flags {
			f(fs)
		}
	} else {
		for _, n := range names {
			f, ok := flags[n]
			if !ok {
				panic(fmt.Sprintf("unknown flag: %q", n))
			}
			f(fs)
		}
	}
}
