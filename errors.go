package rtpvideotx

import (
	"errors"

	"github.com/mengelbart/rtpvideotx/rfc4175"
	"github.com/mengelbart/rtpvideotx/udp"
)

var (
	// ErrUnsupportedFormat indicates a format without pixel group geometry.
	ErrUnsupportedFormat = errors.New("unsupported video format")

	// ErrInvalidDestination indicates a destination that could not be
	// resolved or a socket that could not be bound.
	ErrInvalidDestination = udp.ErrInvalidDestination

	// ErrOutOfMemory indicates a line buffer request beyond the configured
	// limit.
	ErrOutOfMemory = errors.New("line buffer out of memory")

	// ErrMTUTooSmall indicates an MTU that does not fit a single pixel group.
	ErrMTUTooSmall = rfc4175.ErrMTUTooSmall

	// ErrTransport indicates a datagram that was not sent completely.
	ErrTransport = errors.New("transport error")

	// ErrLineOutOfRange indicates a line number or pixel offset that does
	// not fit into the 15 bit header fields.
	ErrLineOutOfRange = rfc4175.ErrLineOutOfRange

	ErrSessionClosed = errors.New("session closed")
)
