package udp_test

import (
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/mengelbart/rtpvideotx/logging"
	"github.com/mengelbart/rtpvideotx/udp"
	"github.com/pion/transport/v4/vnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportLoopback(t *testing.T) {
	receiver, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer receiver.Close()
	port := receiver.LocalAddr().(*net.UDPAddr).Port

	tr, err := udp.New(udp.WithWriteTimeout(time.Second))
	require.NoError(t, err)
	defer tr.Close()
	assert.Nil(t, tr.LocalAddr())

	require.NoError(t, tr.SetDestination("127.0.0.1", uint16(port)))
	assert.NotNil(t, tr.LocalAddr())
	assert.Equal(t, port, tr.Destination().Port)

	header := []byte{0x80, 96, 0, 1}
	payload := []byte("scanline")
	n, err := tr.WritePacket(header, payload)
	require.NoError(t, err)
	assert.Equal(t, len(header)+len(payload), n)

	buf := make([]byte, 1500)
	require.NoError(t, receiver.SetReadDeadline(time.Now().Add(5*time.Second)))
	n, _, err = receiver.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, append(header, payload...), buf[:n])
}

func TestTransportNoDestination(t *testing.T) {
	tr, err := udp.New()
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.WritePacket([]byte{1}, []byte{2})
	assert.ErrorIs(t, err, udp.ErrNoDestination)

	require.NoError(t, tr.SetDestination("127.0.0.1", 5004))
	require.NoError(t, tr.ClearDestination())
	assert.Nil(t, tr.Destination())
	_, err = tr.WritePacket([]byte{1}, []byte{2})
	assert.ErrorIs(t, err, udp.ErrNoDestination)
}

func TestTransportInvalidDestination(t *testing.T) {
	tr, err := udp.New()
	require.NoError(t, err)
	defer tr.Close()

	assert.ErrorIs(t, tr.SetDestination("", 5004), udp.ErrInvalidDestination)
	assert.ErrorIs(t, tr.SetDestination("0.0.0.0", 5004), udp.ErrInvalidDestination)
	assert.Nil(t, tr.Destination())
}

func TestTransportClosed(t *testing.T) {
	tr, err := udp.New()
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	assert.ErrorIs(t, tr.Close(), udp.ErrClosed)
	assert.ErrorIs(t, tr.SetDestination("127.0.0.1", 5004), udp.ErrClosed)
	_, err = tr.WritePacket(nil, nil)
	assert.ErrorIs(t, err, udp.ErrClosed)
}

func TestTransportOptions(t *testing.T) {
	_, err := udp.New(udp.WithWriteTimeout(-time.Second))
	assert.Error(t, err)

	_, err = udp.New(udp.WithNet(nil))
	assert.Error(t, err)
}

func TestTransportVNet(t *testing.T) {
	loggerFactory := logging.NewPionLoggerFactory(slog.New(slog.DiscardHandler))
	router, err := vnet.NewRouter(&vnet.RouterConfig{
		CIDR:          "10.0.0.0/24",
		LoggerFactory: loggerFactory,
	})
	require.NoError(t, err)

	senderNet, err := vnet.NewNet(&vnet.NetConfig{
		StaticIPs: []string{"10.0.0.1"},
	})
	require.NoError(t, err)
	require.NoError(t, router.AddNet(senderNet))

	receiverNet, err := vnet.NewNet(&vnet.NetConfig{
		StaticIPs: []string{"10.0.0.2"},
	})
	require.NoError(t, err)
	require.NoError(t, router.AddNet(receiverNet))

	require.NoError(t, router.Start())
	defer func() {
		assert.NoError(t, router.Stop())
	}()

	receiver, err := receiverNet.ListenUDP("udp4", &net.UDPAddr{IP: net.ParseIP("10.0.0.2"), Port: 5004})
	require.NoError(t, err)
	defer receiver.Close()

	tr, err := udp.New(
		udp.WithNet(senderNet),
		udp.WithLocalAddress("10.0.0.1", 6000),
		udp.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	defer tr.Close()

	require.NoError(t, tr.SetDestination("10.0.0.2", 5004))
	assert.Equal(t, "10.0.0.1:6000", tr.LocalAddr().String())

	datagrams := [][]byte{
		[]byte("first line"),
		[]byte("second line"),
	}
	for _, d := range datagrams {
		_, err = tr.WritePacket(d[:4], d[4:])
		require.NoError(t, err)
	}

	received := make([][]byte, 0, len(datagrams))
	for range datagrams {
		buf := make([]byte, 1500)
		require.NoError(t, receiver.SetReadDeadline(time.Now().Add(5*time.Second)))
		n, from, err := receiver.ReadFrom(buf)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.1:6000", from.String())
		received = append(received, buf[:n])
	}
	assert.ElementsMatch(t, datagrams, received)
}
