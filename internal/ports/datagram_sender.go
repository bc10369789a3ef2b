package ports

import (
	"context"

	"github.com/bft-labs/transmit/pkg/address"
)

// DatagramSender delivers a payload to a node as a single datagram.
type DatagramSender interface {
	// Send issues exactly one send of payload to addr. A nil error means the
	// datagram left the local host, not that the node received it.
	Send(ctx context.Context, addr address.Address, payload []byte) error
}
