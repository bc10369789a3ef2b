package address

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingSeparator is returned when the address has no ':' separator.
	ErrMissingSeparator = errors.New("address: missing ':' separator")

	// ErrInvalidPort is returned when the port is not a base-10 integer in [0, 65535].
	ErrInvalidPort = errors.New("address: invalid port")
)

// Address identifies a node by host and UDP port.
type Address struct {
	Host string
	Port uint16
}

// Parse splits s at its first ':' into host and port.
//
// Everything after the first ':' must parse as an unsigned decimal 16-bit
// integer, so a second ':' always yields ErrInvalidPort. An empty host is
// accepted.
func Parse(s string) (Address, error) {
	host, port, ok := strings.Cut(s, ":")
	if !ok {
		return Address{}, errors.Wrapf(ErrMissingSeparator, "%q", s)
	}

	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return Address{}, errors.Wrapf(ErrInvalidPort, "%q", s)
	}

	return Address{Host: host, Port: uint16(p)}, nil
}

// String renders the address as "host:port".
func (a Address) String() string {
	return a.Host + ":" + strconv.FormatUint(uint64(a.Port), 10)
}
