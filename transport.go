package rtpvideotx

// Transport sends RTP datagrams to a single destination.
type Transport interface {
	SetDestination(host string, port uint16) error
	ClearDestination() error

	// WritePacket sends header and payload as one datagram and returns the
	// number of bytes written.
	WritePacket(header, payload []byte) (int, error)

	Close() error
}
