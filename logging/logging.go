package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mengelbart/rtpvideotx/rfc4175"
	"github.com/pion/interceptor"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
)

type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case TextFormat, JSONFormat:
		return f, nil
	}
	return "", fmt.Errorf("unknown log format: %q", s)
}

// NewLogger returns a logger writing to writer, or to stderr if writer is
// nil.
func NewLogger(format Format, level slog.Level, writer io.Writer) (*slog.Logger, error) {
	if writer == nil {
		writer = os.Stderr
	}
	ho := &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	}
	switch format {
	case JSONFormat:
		return slog.New(slog.NewJSONHandler(writer, ho)), nil
	case TextFormat:
		return slog.New(slog.NewTextHandler(writer, ho)), nil
	default:
		return nil, fmt.Errorf("unexpected logging format: %#v", format)
	}
}

// Configure sets the default slog logger.
func Configure(format Format, level slog.Level, writer io.Writer) {
	logger, err := NewLogger(format, level, writer)
	if err != nil {
		panic(err)
	}
	slog.SetDefault(logger)
}

// RTPLogger traces sent RTP packets.
type RTPLogger struct {
	logger *slog.Logger
	seq    *unwrapper
}

func NewRTPLogger(vantagePoint string, logger *slog.Logger) *RTPLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &RTPLogger{
		logger: logger.With("vantage-point", vantagePoint).WithGroup("rtp-packet"),
		seq:    &unwrapper{},
	}
}

func (l *RTPLogger) LogRTPPacket(header *rtp.Header, payload []byte, attributes interceptor.Attributes) {
	u := l.seq.Unwrap(header.SequenceNumber)
	args := []any{
		"version", header.Version,
		"padding", header.Padding,
		"marker", header.Marker,
		"payload-type", header.PayloadType,
		"sequence-number", header.SequenceNumber,
		"unwrapped-sequence-number", u,
		"timestamp", header.Timestamp,
		"ssrc", header.SSRC,
	}
	length := header.MarshalSize() + len(payload)
	if f, ok := attributes.Get(rfc4175.HeaderFieldsKey).(rfc4175.HeaderFields); ok {
		length += rfc4175.ExtendedSequenceSize + rfc4175.SegmentHeaderSize
		args = append(args,
			"extended-sequence-number", f.SequenceNumber,
			"line", f.LineNumber,
			"field", f.Field,
			"offset", f.Offset,
			"segment-length", f.Length,
		)
	}
	args = append(args, "payload-length", length)
	l.logger.Info("rtp packet", args...)
}

// LogRTPPacketBuf traces a complete RFC4175 datagram.
func (l *RTPLogger) LogRTPPacketBuf(rtpBuf []byte, ia interceptor.Attributes) {
	var pkt rtp.Packet
	if err := pkt.Unmarshal(rtpBuf); err != nil {
		return
	}
	payload := pkt.Payload
	if f, err := rfc4175.ParseHeader(rtpBuf); err == nil {
		if ia == nil {
			ia = interceptor.Attributes{}
		}
		ia.Set(rfc4175.HeaderFieldsKey, f)
		payload = payload[rfc4175.ExtendedSequenceSize+rfc4175.SegmentHeaderSize:]
	}
	l.LogRTPPacket(&pkt.Header, payload, ia)
}

func (l *RTPLogger) LogRTCPPackets([]rtcp.Packet, interceptor.Attributes) {}
