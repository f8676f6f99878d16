// Package udp sends RTP datagrams over UDP. Sockets are created through a
// pion transport.Net, so the same code runs on the host network and on a
// virtual network in tests.
package udp

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/gobwas/pool/pbytes"
	"github.com/pion/transport/v4"
	"github.com/pion/transport/v4/stdnet"
)

var (
	ErrInvalidDestination = errors.New("invalid destination")
	ErrNoDestination      = errors.New("no destination set")
	ErrClosed             = errors.New("transport closed")
)

type Option func(*Transport) error

// WithNet sets the network sockets are opened on.
func WithNet(n transport.Net) Option {
	return func(t *Transport) error {
		if n == nil {
			return errors.New("net must not be nil")
		}
		t.net = n
		return nil
	}
}

// WithLocalAddress sets the address the socket is bound to. The default is
// the wildcard address with an ephemeral port.
func WithLocalAddress(host string, port uint16) Option {
	return func(t *Transport) error {
		t.localHost = host
		t.localPort = port
		return nil
	}
}

// WithWriteTimeout bounds every datagram write. A zero timeout lets writes
// block until the socket accepts the datagram.
func WithWriteTimeout(d time.Duration) Option {
	return func(t *Transport) error {
		if d < 0 {
			return fmt.Errorf("negative write timeout: %v", d)
		}
		t.writeTimeout = d
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) error {
		t.logger = logger
		return nil
	}
}

// Transport writes each packet as one datagram to the current destination.
// It is not safe for concurrent use.
type Transport struct {
	net          transport.Net
	localHost    string
	localPort    uint16
	writeTimeout time.Duration
	logger       *slog.Logger

	conn        transport.UDPConn
	destination *net.UDPAddr
	closed      bool
}

func New(opts ...Option) (*Transport, error) {
	t := &Transport{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	if t.net == nil {
		n, err := stdnet.NewNet()
		if err != nil {
			return nil, err
		}
		t.net = n
	}
	return t, nil
}

// SetDestination resolves host and port and makes it the target of all
// following writes. The socket is bound on the first call.
func (t *Transport) SetDestination(host string, port uint16) error {
	if t.closed {
		return ErrClosed
	}
	dst, err := t.net.ResolveUDPAddr("udp4", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDestination, err)
	}
	if dst.IP == nil || dst.IP.IsUnspecified() {
		return fmt.Errorf("%w: %q has no address", ErrInvalidDestination, host)
	}
	if t.conn == nil {
		if err = t.bind(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDestination, err)
		}
	}
	t.destination = dst
	t.logger.Debug("udp destination set", "local", t.conn.LocalAddr(), "remote", dst)
	return nil
}

func (t *Transport) bind() error {
	local := &net.UDPAddr{IP: net.IPv4zero, Port: int(t.localPort)}
	if t.localHost != "" {
		addr, err := t.net.ResolveUDPAddr("udp4", net.JoinHostPort(t.localHost, strconv.Itoa(int(t.localPort))))
		if err != nil {
			return err
		}
		local = addr
	}
	conn, err := t.net.ListenUDP("udp4", local)
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

// ClearDestination stops sending. The socket stays bound.
func (t *Transport) ClearDestination() error {
	if t.closed {
		return ErrClosed
	}
	t.destination = nil
	return nil
}

// Destination returns the current destination or nil.
func (t *Transport) Destination() *net.UDPAddr {
	return t.destination
}

// LocalAddr returns the bound local address or nil before the first
// SetDestination.
func (t *Transport) LocalAddr() net.Addr {
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

// WritePacket sends header followed by payload as a single datagram. A
// datagram that is not written completely is reported as io.ErrShortWrite.
func (t *Transport) WritePacket(header, payload []byte) (int, error) {
	if t.closed {
		return 0, ErrClosed
	}
	if t.destination == nil {
		return 0, ErrNoDestination
	}
	size := len(header) + len(payload)
	datagram := pbytes.GetLen(size)
	defer pbytes.Put(datagram)
	copy(datagram, header)
	copy(datagram[len(header):], payload)

	if t.writeTimeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
			return 0, err
		}
	}
	n, err := t.conn.WriteTo(datagram, t.destination)
	if err != nil {
		return n, err
	}
	if n != size {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (t *Transport) Close() error {
	if t.closed {
		return ErrClosed
	}
	t.closed = true
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}
