package datagram

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/bft-labs/transmit/pkg/address"
	"github.com/bft-labs/transmit/pkg/log"
)

type write struct {
	payload []byte
	addr    net.Addr
}

type fakeSocket struct {
	provider *fakeProvider
	writeErr error
	short    bool
}

func (s *fakeSocket) WriteTo(p []byte, addr net.Addr) (int, error) {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if s.provider.onWrite != nil {
		s.provider.onWrite()
	}
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.provider.writes = append(s.provider.writes, write{payload: append([]byte(nil), p...), addr: addr})
	if s.short {
		return len(p) - 1, nil
	}
	return len(p), nil
}

func (s *fakeSocket) Close() error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()
	s.provider.closed++
	return nil
}

// fakeProvider counts opened and closed sockets and records writes.
type fakeProvider struct {
	mu       sync.Mutex
	opened   int
	closed   int
	networks []string
	writes   []write

	openErr  error
	writeErr error
	short    bool
	onWrite  func()
}

func (p *fakeProvider) Open(network string) (Socket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.networks = append(p.networks, network)
	if p.openErr != nil {
		return nil, p.openErr
	}
	p.opened++
	return &fakeSocket{provider: p, writeErr: p.writeErr, short: p.short}, nil
}

type fakeResolver struct {
	ips   map[string][]netip.Addr
	calls []string
}

func (r *fakeResolver) LookupNetIP(_ context.Context, network, host string) ([]netip.Addr, error) {
	r.calls = append(r.calls, network+"/"+host)
	ips, ok := r.ips[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return ips, nil
}

type debugEntry struct {
	msg    string
	fields map[string]interface{}
}

// debugRecorder keeps debug messages and their fields.
type debugRecorder struct {
	log.NoopLogger
	entries []debugEntry
}

func (r *debugRecorder) Debug(msg string, fields ...log.Field) {
	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	r.entries = append(r.entries, debugEntry{msg: msg, fields: m})
}

type TransmitterTestSuite struct {
	suite.Suite

	provider *fakeProvider
	resolver *fakeResolver
	clock    *clock.Mock
	tx       *Transmitter
}

func TestTransmitterTestSuite(t *testing.T) {
	suite.Run(t, new(TransmitterTestSuite))
}

func (s *TransmitterTestSuite) SetupTest() {
	s.provider = &fakeProvider{}
	s.resolver = &fakeResolver{ips: map[string][]netip.Addr{
		"node-a": {netip.MustParseAddr("10.0.0.7"), netip.MustParseAddr("10.0.0.8")},
		"empty":  {},
	}}
	s.clock = clock.NewMock()
	s.tx = s.newTransmitter()
}

func (s *TransmitterTestSuite) newTransmitter(opts ...Option) *Transmitter {
	return NewTransmitter(append([]Option{
		WithSocketProvider(s.provider),
		WithResolver(s.resolver),
		WithClock(s.clock),
	}, opts...)...)
}

func (s *TransmitterTestSuite) requireBalanced(opened int) {
	s.Require().Equal(opened, s.provider.opened)
	s.Require().Equal(s.provider.opened, s.provider.closed)
}

func (s *TransmitterTestSuite) TestSendLiteralIPv4() {
	payload := []byte{0x01, 0x05, 0x00, 0x00}

	err := s.tx.Send(context.Background(), address.Address{Host: "127.0.0.1", Port: 4001}, payload)
	s.Require().NoError(err)

	s.requireBalanced(1)
	s.Require().Len(s.provider.writes, 1)
	s.Equal(payload, s.provider.writes[0].payload)
	s.Equal("127.0.0.1:4001", s.provider.writes[0].addr.String())
	s.Equal([]string{DefaultNetwork}, s.provider.networks)
	s.Empty(s.resolver.calls)
}

func (s *TransmitterTestSuite) TestSendLogsWriteDuration() {
	rec := &debugRecorder{}
	tx := s.newTransmitter(WithLogger(rec))
	s.provider.onWrite = func() { s.clock.Add(25 * time.Millisecond) }

	payload := []byte("abc")
	s.Require().NoError(tx.Send(context.Background(), address.Address{Host: "127.0.0.1", Port: 4001}, payload))

	s.Require().Len(rec.entries, 1)
	s.Equal("datagram sent", rec.entries[0].msg)
	s.Equal(25*time.Millisecond, rec.entries[0].fields["took"])
	s.Equal(len(payload), rec.entries[0].fields["bytes"])
	s.Equal("127.0.0.1:4001", rec.entries[0].fields["to"])
}

func (s *TransmitterTestSuite) TestSendResolvesName() {
	err := s.tx.Send(context.Background(), address.Address{Host: "node-a", Port: 9}, []byte("x"))
	s.Require().NoError(err)

	s.requireBalanced(1)
	s.Equal([]string{"ip4/node-a"}, s.resolver.calls)
	s.Require().Len(s.provider.writes, 1)
	s.Equal("10.0.0.7:9", s.provider.writes[0].addr.String())
}

func (s *TransmitterTestSuite) TestSendNetworkSelectsLookupFamily() {
	tx := s.newTransmitter(WithNetwork("udp6"))
	s.Equal("udp6", tx.Network())

	s.Require().NoError(tx.Send(context.Background(), address.Address{Host: "node-a", Port: 9}, []byte("x")))
	s.Equal([]string{"ip6/node-a"}, s.resolver.calls)
	s.Equal([]string{"udp6"}, s.provider.networks)
}

func (s *TransmitterTestSuite) TestWithNetworkIgnoresUnknown() {
	s.Equal(DefaultNetwork, s.newTransmitter(WithNetwork("tcp")).Network())
}

func (s *TransmitterTestSuite) TestSocketCreateFailed() {
	s.provider.openErr = errors.New("too many open files")

	err := s.tx.Send(context.Background(), address.Address{Host: "127.0.0.1", Port: 4001}, []byte("x"))
	s.Require().ErrorIs(err, ErrSocketCreate)
	s.Contains(err.Error(), "too many open files")

	s.requireBalanced(0)
	s.Empty(s.provider.writes)
}

func (s *TransmitterTestSuite) TestSendFailedReleasesSocket() {
	tests := []struct {
		name  string
		host  string
		setup func()
	}{
		{"write error", "127.0.0.1", func() { s.provider.writeErr = errors.New("network is unreachable") }},
		{"short write", "127.0.0.1", func() { s.provider.short = true }},
		{"unknown host", "nowhere", func() {}},
		{"no addresses", "empty", func() {}},
		{"empty host", "", func() {}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setup()

			err := s.tx.Send(context.Background(), address.Address{Host: tt.host, Port: 4001}, []byte("payload"))
			s.Require().ErrorIs(err, ErrSendFailed)
			s.requireBalanced(1)
		})
	}
}

func (s *TransmitterTestSuite) TestCanceledContextOpensNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.tx.Send(ctx, address.Address{Host: "127.0.0.1", Port: 4001}, []byte("x"))
	s.Require().ErrorIs(err, context.Canceled)
	s.requireBalanced(0)
}

func (s *TransmitterTestSuite) TestLoopbackDelivery() {
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	s.Require().NoError(err)
	defer conn.Close()

	port := uint16(conn.LocalAddr().(*net.UDPAddr).Port)
	payload := []byte{0x01, 0x05, 0x04, 'a', 0x04, 'b'}

	tx := NewTransmitter()
	s.Require().NoError(tx.Send(context.Background(), address.Address{Host: "127.0.0.1", Port: port}, payload))

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	buf := make([]byte, 2048)
	n, _, err := conn.ReadFrom(buf)
	s.Require().NoError(err)
	s.Equal(payload, buf[:n])
}
