package subcmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mengelbart/rtpvideotx"
	"github.com/mengelbart/rtpvideotx/cmdmain"
	"github.com/mengelbart/rtpvideotx/flags"
	"github.com/mengelbart/rtpvideotx/logging"
	"github.com/mengelbart/rtpvideotx/testpattern"
	"github.com/mengelbart/rtpvideotx/udp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func init() {
	cmdmain.RegisterSubCmd("send", func() cmdmain.SubCmd { return new(Send) })
}

type Send struct{}

// Help implements cmdmain.SubCmd.
func (s *Send) Help() string {
	return "Send a generated test pattern as RFC 4175 RTP video"
}

// Exec implements cmdmain.SubCmd.
func (s *Send) Exec(cmd string, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)

	flags.RegisterInto(fs, []flags.FlagName{
		flags.LocalAddrFlag,
		flags.LocalPortFlag,
		flags.RemoteAddrFlag,
		flags.RTPPortFlag,
		flags.FormatFlag,
		flags.WidthFlag,
		flags.HeightFlag,
		flags.FPSFlag,
		flags.CropTopFlag,
		flags.CropLeftFlag,
		flags.CropBottomFlag,
		flags.CropRightFlag,
		flags.FramesFlag,
		flags.MTUFlag,
		flags.PayloadTypeFlag,
		flags.SSRCFlag,
		flags.WriteTimeoutFlag,
		flags.TraceRTPSendFlag,
	}...)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Send a generated test pattern

Usage:
	%s send [flags]

Formats:
	%v

Flags:
`, cmd, rtpvideotx.Formats())
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
	fs.Parse(args)

	if len(fs.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unknown extra arguments: %v\n", fs.Args())
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := sendConfigFromFlags()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runSend(ctx, cfg)
}

type sendConfig struct {
	format       rtpvideotx.Format
	info         testpattern.Info
	crop         testpattern.Crop
	frames       uint
	localAddr    string
	localPort    uint16
	remoteAddr   string
	remotePort   uint16
	mtu          uint16
	payloadType  uint8
	ssrc         uint32
	writeTimeout time.Duration
	trace        bool
}

func sendConfigFromFlags() (sendConfig, error) {
	format, err := rtpvideotx.ParseFormat(flags.Format)
	if err != nil {
		return sendConfig{}, err
	}
	if flags.RTPPort == 0 || flags.RTPPort > math.MaxUint16 {
		return sendConfig{}, fmt.Errorf("invalid -%v: %d", flags.RTPPortFlag, flags.RTPPort)
	}
	if flags.LocalPort > math.MaxUint16 {
		return sendConfig{}, fmt.Errorf("invalid -%v: %d", flags.LocalPortFlag, flags.LocalPort)
	}
	if flags.MTU > math.MaxUint16 {
		return sendConfig{}, fmt.Errorf("invalid -%v: %d", flags.MTUFlag, flags.MTU)
	}
	if flags.PayloadType > 127 {
		return sendConfig{}, fmt.Errorf("invalid -%v: %d, must be at most 127", flags.PayloadTypeFlag, flags.PayloadType)
	}
	if flags.SSRC > math.MaxUint32 {
		return sendConfig{}, fmt.Errorf("invalid -%v: %d", flags.SSRCFlag, flags.SSRC)
	}
	if flags.FPS == 0 {
		return sendConfig{}, fmt.Errorf("invalid -%v: must be positive", flags.FPSFlag)
	}
	return sendConfig{
		format: format,
		info: testpattern.Info{
			Width:       flags.Width,
			Height:      flags.Height,
			TimebaseNum: int(flags.FPS),
			TimebaseDen: 1,
		},
		crop: testpattern.Crop{
			Top:    flags.CropTop,
			Left:   flags.CropLeft,
			Bottom: flags.CropBottom,
			Right:  flags.CropRight,
		},
		frames:       flags.Frames,
		localAddr:    flags.LocalAddr,
		localPort:    uint16(flags.LocalPort),
		remoteAddr:   flags.RemoteAddr,
		remotePort:   uint16(flags.RTPPort),
		mtu:          uint16(flags.MTU),
		payloadType:  uint8(flags.PayloadType),
		ssrc:         uint32(flags.SSRC),
		writeTimeout: flags.WriteTimeout,
		trace:        flags.TraceRTPSend,
	}, nil
}

func runSend(ctx context.Context, cfg sendConfig) error {
	transport, err := udp.New(
		udp.WithLocalAddress(cfg.localAddr, cfg.localPort),
		udp.WithWriteTimeout(cfg.writeTimeout),
		udp.WithLogger(slog.Default().With("component", "udp")),
	)
	if err != nil {
		return err
	}

	opts := []rtpvideotx.SessionOption{
		rtpvideotx.WithTransport(transport),
		rtpvideotx.WithMTU(cfg.mtu),
		rtpvideotx.WithPayloadType(cfg.payloadType),
	}
	if cfg.ssrc != 0 {
		opts = append(opts, rtpvideotx.WithSSRC(cfg.ssrc))
	}
	if cfg.trace {
		opts = append(opts, rtpvideotx.WithPacketLogger(logging.NewRTPLogger("sender", nil)))
	}
	session, err := rtpvideotx.NewSession(cfg.format, opts...)
	if err != nil {
		transport.Close()
		return err
	}
	defer session.Close()

	if err = session.SetDestination(cfg.remoteAddr, cfg.remotePort); err != nil {
		return err
	}

	sender, err := newVideoSender(session, cfg.info, cfg.crop, cfg.frames)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return sender.run(ctx)
	})
	g.Go(func() error {
		return sender.report(ctx, time.Second)
	})
	err = g.Wait()

	sender.logStats("sending done")
	return err
}

func newFrameLimiter(info testpattern.Info) *rate.Limiter {
	return rate.NewLimiter(rate.Every(info.FrameDuration()), 1)
}
