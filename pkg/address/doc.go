// Package address parses node addresses of the form "host:port".
//
// Parsing is purely syntactic: the host is not resolved and may be any
// string without a colon, including the empty string. Resolution happens
// later, when a datagram is actually sent (see package datagram).
//
//	addr, err := address.Parse("127.0.0.1:4001")
//	if errors.Is(err, address.ErrMissingSeparator) { ... }
package address
