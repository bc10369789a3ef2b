package datagram

import (
	"context"
	"net"
	"net/netip"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/bft-labs/transmit/pkg/address"
	"github.com/bft-labs/transmit/pkg/log"
)

// DefaultNetwork matches the IPv4-only socket of the original tool.
const DefaultNetwork = "udp4"

var (
	// ErrSocketCreate is returned when no socket could be opened.
	ErrSocketCreate = errors.New("datagram: socket creation failed")

	// ErrSendFailed is returned when the datagram could not be handed to the
	// kernel, including when the destination cannot be resolved.
	ErrSendFailed = errors.New("datagram: send failed")
)

// Transmitter sends one datagram per Send call.
type Transmitter struct {
	network  string
	provider SocketProvider
	resolver Resolver
	clock    clock.Clock
	logger   log.Logger
}

// Option configures a Transmitter.
type Option func(*Transmitter)

// WithNetwork selects "udp4", "udp6" or "udp". Unknown values are ignored.
func WithNetwork(network string) Option {
	return func(t *Transmitter) {
		if ValidNetwork(network) {
			t.network = network
		}
	}
}

// WithSocketProvider replaces the socket source.
func WithSocketProvider(p SocketProvider) Option {
	return func(t *Transmitter) { t.provider = p }
}

// WithResolver replaces the host name resolver.
func WithResolver(r Resolver) Option {
	return func(t *Transmitter) { t.resolver = r }
}

// WithClock sets the clock used to time sends.
func WithClock(c clock.Clock) Option {
	return func(t *Transmitter) { t.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(t *Transmitter) { t.logger = l }
}

// NewTransmitter creates a Transmitter using real UDP sockets and the
// default resolver unless overridden.
func NewTransmitter(opts ...Option) *Transmitter {
	t := &Transmitter{
		network:  DefaultNetwork,
		provider: UDPProvider{},
		resolver: net.DefaultResolver,
		clock:    clock.New(),
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Network returns the configured network name.
func (t *Transmitter) Network() string {
	return t.network
}

// Send opens a socket, sends payload to addr in a single datagram and
// closes the socket. The socket is closed on every path once opened.
func (t *Transmitter) Send(ctx context.Context, addr address.Address, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sock, err := t.provider.Open(t.network)
	if err != nil {
		return errors.Wrapf(ErrSocketCreate, "open %s socket: %v", t.network, err)
	}
	defer func() {
		if cerr := sock.Close(); cerr != nil {
			t.logger.Warn("close socket", log.Err(cerr))
		}
	}()

	dst, err := t.resolve(ctx, addr)
	if err != nil {
		return errors.Wrapf(ErrSendFailed, "resolve %s: %v", addr, err)
	}

	start := t.clock.Now()
	n, err := sock.WriteTo(payload, dst)
	if err != nil {
		return errors.Wrapf(ErrSendFailed, "write to %s: %v", dst, err)
	}
	if n != len(payload) {
		return errors.Wrapf(ErrSendFailed, "short write to %s: %d of %d bytes", dst, n, len(payload))
	}

	t.logger.Debug("datagram sent",
		log.String("to", dst.String()),
		log.Int("bytes", n),
		log.Duration("took", t.clock.Since(start)),
	)
	return nil
}

// resolve turns addr into a UDP endpoint. Literal IPs skip the resolver.
func (t *Transmitter) resolve(ctx context.Context, addr address.Address) (*net.UDPAddr, error) {
	if addr.Host == "" {
		return nil, errors.New("empty host")
	}

	ip, err := netip.ParseAddr(addr.Host)
	if err != nil {
		ips, lerr := t.resolver.LookupNetIP(ctx, ipNetwork(t.network), addr.Host)
		if lerr != nil {
			return nil, lerr
		}
		if len(ips) == 0 {
			return nil, errors.Errorf("no addresses for %q", addr.Host)
		}
		ip = ips[0]
	}

	return net.UDPAddrFromAddrPort(netip.AddrPortFrom(ip.Unmap(), addr.Port)), nil
}
