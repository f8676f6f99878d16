package subcmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mengelbart/rtpvideotx"
	"github.com/mengelbart/rtpvideotx/rfc4175"
	"github.com/mengelbart/rtpvideotx/testpattern"
	"golang.org/x/time/rate"
)

// videoSender paces generated frames into a session, one frame per limiter
// token.
type videoSender struct {
	session   *rtpvideotx.Session
	window    testpattern.Window
	lineBytes int
	step      uint32
	frames    uint
	limiter   *rate.Limiter
	pattern   *testpattern.Bounce
	logger    *slog.Logger

	framesSent  atomic.Uint64
	linesSent   atomic.Uint64
	linesFailed atomic.Uint64
	bytesSent   atomic.Uint64
}

func newVideoSender(session *rtpvideotx.Session, info testpattern.Info, crop testpattern.Crop, frames uint) (*videoSender, error) {
	window, err := info.Window(crop)
	if err != nil {
		return nil, err
	}
	pg, err := rtpvideotx.LookupPixelGroup(session.Format())
	if err != nil {
		return nil, err
	}
	lineBytes, err := window.LineBytes(uint(pg.Pixels), uint(pg.Bytes))
	if err != nil {
		return nil, err
	}
	if window.LastLine > rfc4175.MaxLineNumber || window.Offset+window.Width-uint(pg.Pixels) > rfc4175.MaxOffset {
		return nil, fmt.Errorf("%w: %dx%d", rtpvideotx.ErrLineOutOfRange, info.Width, info.Height)
	}
	return &videoSender{
		session:   session,
		window:    window,
		lineBytes: lineBytes,
		step:      info.TimestampStep(rfc4175.ClockRate),
		frames:    frames,
		limiter:   newFrameLimiter(info),
		pattern:   testpattern.NewBounce(0),
		logger:    slog.Default().With("ssrc", session.SSRC()),
	}, nil
}

// run sends frames until the frame count is reached or ctx is done. Lines
// that fail are logged and skipped.
func (v *videoSender) run(ctx context.Context) error {
	var timestamp uint32
	for n := uint(0); v.frames == 0 || n < v.frames; n++ {
		if err := v.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := v.sendFrame(timestamp); err != nil {
			return err
		}
		timestamp += v.step
	}
	return nil
}

func (v *videoSender) sendFrame(timestamp uint32) error {
	if err := v.session.BeginFrame(timestamp); err != nil {
		return err
	}
	for line := v.window.FirstLine; line <= v.window.LastLine; line++ {
		buf, err := v.session.AcquireLineBuffer(v.lineBytes)
		if err != nil {
			return err
		}
		v.pattern.FillLine(buf)

		var lf rtpvideotx.LineFlags
		if line == v.window.LastLine {
			lf |= rtpvideotx.EndOfFrame
		}
		err = v.session.SubmitLine(uint16(line), uint16(v.window.Offset), buf, lf)
		if err != nil {
			v.linesFailed.Add(1)
			v.logger.Warn("failed to send line", "line", line, "timestamp", timestamp, "error", err)
			if errors.Is(err, rtpvideotx.ErrSessionClosed) {
				return err
			}
			continue
		}
		v.linesSent.Add(1)
		v.bytesSent.Add(uint64(len(buf)))
	}
	v.framesSent.Add(1)
	return v.session.Flush()
}

func (v *videoSender) report(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v.logStats("send stats")
		}
	}
}

func (v *videoSender) logStats(msg string) {
	v.logger.Info(
		msg,
		"frames", v.framesSent.Load(),
		"lines", v.linesSent.Load(),
		"failed-lines", v.linesFailed.Load(),
		"bytes", v.bytesSent.Load(),
	)
}
