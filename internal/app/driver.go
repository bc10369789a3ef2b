package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/bft-labs/transmit/internal/ports"
	"github.com/bft-labs/transmit/pkg/address"
	"github.com/bft-labs/transmit/pkg/datagram"
	"github.com/bft-labs/transmit/pkg/log"
	"github.com/bft-labs/transmit/pkg/message"
)

// UsageText is printed when the argument count is wrong.
const UsageText = "Please provide three arguments: [ipfs_addr] [path_to_transmit] [destination_addr]"

// ErrUsage is returned when the driver is not given exactly three arguments.
var ErrUsage = errors.New("expected three arguments")

var (
	_ ports.RequestEncoder = (*message.Encoder)(nil)
	_ ports.DatagramSender = (*datagram.Transmitter)(nil)
)

// Driver runs one transmit request: parse, encode, send.
type Driver struct {
	encoder ports.RequestEncoder
	sender  ports.DatagramSender
	out     io.Writer
	logger  log.Logger
	dryRun  bool
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the driver logger.
func WithLogger(l log.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// WithDryRun makes Run print the encoded payload instead of sending it.
func WithDryRun(dryRun bool) DriverOption {
	return func(d *Driver) { d.dryRun = dryRun }
}

// NewDriver creates a Driver printing user-facing lines to out.
func NewDriver(encoder ports.RequestEncoder, sender ports.DatagramSender, out io.Writer, opts ...DriverOption) *Driver {
	d := &Driver{
		encoder: encoder,
		sender:  sender,
		out:     out,
		logger:  log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes the request described by args:
// node address, path to transmit, destination address.
func (d *Driver) Run(ctx context.Context, args []string) error {
	if len(args) != 3 {
		fmt.Fprintln(d.out, UsageText)
		return ErrUsage
	}
	nodeAddr, path, target := args[0], args[1], args[2]

	node, err := address.Parse(nodeAddr)
	if err != nil {
		return fmt.Errorf("parse node address: %w", err)
	}

	var buf [message.MaxSize]byte
	limit := d.encoder.MaxSize()
	if limit <= 0 || limit > len(buf) {
		return fmt.Errorf("encoder limit %d outside buffer of %d bytes: %w", limit, len(buf), message.ErrBufferTooSmall)
	}
	n, err := d.encoder.Encode(buf[:limit], path, target)
	if err != nil {
		return fmt.Errorf("encode transmit request: %w", err)
	}
	payload := buf[:n]

	if d.dryRun {
		fmt.Fprintf(d.out, "%s\n", hex.EncodeToString(payload))
		d.logger.Info("dry run, nothing sent", log.String("node", node.String()), log.Int("bytes", n), log.Hex("payload", payload))
		return nil
	}

	fmt.Fprintf(d.out, "Sending {\"Transmit\": {\"path\": %s, \"addr\": %s}} to %s\n", path, target, nodeAddr)

	if err := d.sender.Send(ctx, node, payload); err != nil {
		return fmt.Errorf("send transmit request: %w", err)
	}
	d.logger.Info("transmit request sent", log.String("node", node.String()), log.Int("bytes", n))
	return nil
}
