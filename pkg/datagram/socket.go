package datagram

import (
	"context"
	"net"
	"net/netip"
)

// Socket is the part of net.PacketConn a Transmitter uses.
type Socket interface {
	WriteTo(p []byte, addr net.Addr) (n int, err error)
	Close() error
}

// SocketProvider opens sockets for a network ("udp4", "udp6" or "udp").
type SocketProvider interface {
	Open(network string) (Socket, error)
}

// Resolver looks up host names. *net.Resolver satisfies it.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// UDPProvider opens unconnected UDP sockets bound to an ephemeral port.
type UDPProvider struct{}

// Open implements SocketProvider.
func (UDPProvider) Open(network string) (Socket, error) {
	conn, err := net.ListenPacket(network, ":0")
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// ipNetwork maps a UDP network name to the IP network used for lookups.
func ipNetwork(network string) string {
	switch network {
	case "udp4":
		return "ip4"
	case "udp6":
		return "ip6"
	default:
		return "ip"
	}
}

// ValidNetwork reports whether network can be passed to NewTransmitter.
func ValidNetwork(network string) bool {
	switch network {
	case "udp", "udp4", "udp6":
		return true
	}
	return false
}
