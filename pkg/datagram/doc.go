// Package datagram sends a single unacknowledged UDP datagram to a node.
//
// Every Send opens its own socket from a SocketProvider and releases it
// before returning, whatever the outcome. There is no retry, no timeout and
// no delivery confirmation: a nil error only means the kernel accepted the
// payload.
//
//	t := datagram.NewTransmitter(datagram.WithLogger(logger))
//	err := t.Send(ctx, address.Address{Host: "127.0.0.1", Port: 4001}, payload)
package datagram
