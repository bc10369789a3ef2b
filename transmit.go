// Package transmit asks a myceli node to ship one of its files to another
// node, using a single fire-and-forget UDP datagram.
//
// Example usage:
//
//	err := transmit.Send(ctx, "127.0.0.1:8001", "/data/image.jpg", "10.0.0.2:8001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The building blocks are available separately in pkg/address, pkg/message
// and pkg/datagram.
package transmit

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bft-labs/transmit/pkg/address"
	"github.com/bft-labs/transmit/pkg/datagram"
	"github.com/bft-labs/transmit/pkg/log"
	"github.com/bft-labs/transmit/pkg/message"
)

// Option configures Send.
type Option func(*options)

type options struct {
	encoderOpts     []message.EncoderOption
	transmitterOpts []datagram.Option
}

// WithLogger sets the logger used for the send.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		o.transmitterOpts = append(o.transmitterOpts, datagram.WithLogger(l))
	}
}

// WithNetwork selects "udp4" (default), "udp6" or "udp".
func WithNetwork(network string) Option {
	return func(o *options) {
		o.transmitterOpts = append(o.transmitterOpts, datagram.WithNetwork(network))
	}
}

// WithMaxMessageSize lowers the request size limit below message.MaxSize.
func WithMaxMessageSize(n int) Option {
	return func(o *options) {
		o.encoderOpts = append(o.encoderOpts, message.WithLimit(n))
	}
}

// WithTransmitterOptions passes options straight to the datagram transmitter.
func WithTransmitterOptions(opts ...datagram.Option) Option {
	return func(o *options) {
		o.transmitterOpts = append(o.transmitterOpts, opts...)
	}
}

// Send asks the node at nodeAddr to transmit path to targetAddr. Errors can
// be matched against the sentinel errors of pkg/address, pkg/message and
// pkg/datagram.
func Send(ctx context.Context, nodeAddr, path, targetAddr string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	node, err := address.Parse(nodeAddr)
	if err != nil {
		return err
	}

	var buf [message.MaxSize]byte
	n, err := message.NewEncoder(o.encoderOpts...).Encode(buf[:], path, targetAddr)
	if err != nil {
		return errors.WithMessage(err, "encode transmit request")
	}

	return datagram.NewTransmitter(o.transmitterOpts...).Send(ctx, node, buf[:n])
}
