// Package ports defines the interfaces the transmit driver depends on.
//
// The driver in internal/app only sees these interfaces. Concrete
// implementations live in pkg/message (SCALE encoder) and pkg/datagram
// (UDP transmitter); tests substitute stubs that count calls.
//
// # Port Interfaces
//
//   - [RequestEncoder]: serializes a TransmitFile request into a fixed buffer
//   - [DatagramSender]: sends one datagram to a node address
package ports
