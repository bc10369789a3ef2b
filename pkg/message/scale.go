package message

import (
	"encoding/binary"
	"math/bits"
)

// Compact integer modes, held in the two low bits of the first byte.
const (
	compactSingle = 0b00
	compactTwo    = 0b01
	compactFour   = 0b10
	compactBig    = 0b11
)

// compactLen returns the number of bytes compact encoding of v occupies.
func compactLen(v uint64) int {
	switch {
	case v < 1<<6:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<30:
		return 4
	default:
		return 1 + bigLen(v)
	}
}

// bigLen is the minimal little-endian byte width of v, never less than 4.
func bigLen(v uint64) int {
	n := (bits.Len64(v) + 7) / 8
	if n < 4 {
		n = 4
	}
	return n
}

// putCompact writes v in SCALE compact form and returns the bytes written.
// dst must hold at least compactLen(v) bytes.
func putCompact(dst []byte, v uint64) int {
	switch {
	case v < 1<<6:
		dst[0] = byte(v<<2) | compactSingle
		return 1
	case v < 1<<14:
		binary.LittleEndian.PutUint16(dst, uint16(v<<2)|compactTwo)
		return 2
	case v < 1<<30:
		binary.LittleEndian.PutUint32(dst, uint32(v<<2)|compactFour)
		return 4
	}

	n := bigLen(v)
	dst[0] = byte(n-4)<<2 | compactBig
	for i := 0; i < n; i++ {
		dst[1+i] = byte(v >> (8 * i))
	}
	return 1 + n
}

// stringLen is the encoded size of s.
func stringLen(s string) int {
	return compactLen(uint64(len(s))) + len(s)
}

// putString writes a compact length prefix followed by the bytes of s.
func putString(dst []byte, s string) int {
	n := putCompact(dst, uint64(len(s)))
	return n + copy(dst[n:], s)
}
