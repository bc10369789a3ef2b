// Package message encodes application API requests understood by a myceli
// storage node.
//
// Requests are SCALE encoded (the Parity codec used by the node): an enum is
// a one byte variant index followed by its fields, and a string is a compact
// length prefix followed by its UTF-8 bytes. Only the TransmitFile request is
// implemented:
//
//	0x01                 Message::ApplicationAPI
//	0x05                 ApplicationAPI::TransmitFile
//	compact(len) path    source file path on the node
//	compact(len) addr    destination node address
//
// Encoding always happens into a caller-owned fixed buffer and never writes
// past it.
package message
