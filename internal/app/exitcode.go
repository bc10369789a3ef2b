package app

import (
	"context"
	"errors"

	"github.com/bft-labs/transmit/pkg/address"
	"github.com/bft-labs/transmit/pkg/datagram"
	"github.com/bft-labs/transmit/pkg/message"
)

// Process exit codes, one per failure category.
const (
	ExitOK           = 0
	ExitConfig       = 1
	ExitAddress      = 2
	ExitEncoding     = 3
	ExitSocketCreate = 4
	ExitSendFailed   = 5
	ExitInterrupted  = 130
	ExitUsage        = 255
)

// ExitCode maps a Run error to a process exit status. Errors outside the
// known categories (flag or config problems) map to ExitConfig.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, address.ErrMissingSeparator), errors.Is(err, address.ErrInvalidPort):
		return ExitAddress
	case errors.Is(err, message.ErrBufferTooSmall), errors.Is(err, message.ErrInvalidText):
		return ExitEncoding
	case errors.Is(err, datagram.ErrSocketCreate):
		return ExitSocketCreate
	case errors.Is(err, datagram.ErrSendFailed):
		return ExitSendFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	default:
		return ExitConfig
	}
}
