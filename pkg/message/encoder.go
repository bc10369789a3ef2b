package message

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxSize is the largest message this package will produce.
const MaxSize = 1024

// Variant indexes of the node's message enums.
const (
	variantApplicationAPI = 0x01
	variantTransmitFile   = 0x05
)

var (
	// ErrBufferTooSmall is returned when the encoded request does not fit in
	// the destination buffer or exceeds the encoder limit.
	ErrBufferTooSmall = errors.New("message: buffer too small")

	// ErrInvalidText is returned when a request field is not valid UTF-8.
	ErrInvalidText = errors.New("message: invalid UTF-8")
)

// TransmitFile asks a node to chunk the file at Path and ship it to TargetAddr.
type TransmitFile struct {
	Path       string
	TargetAddr string
}

// EncodedLen returns the size of the encoded request.
func (t TransmitFile) EncodedLen() int {
	return 2 + stringLen(t.Path) + stringLen(t.TargetAddr)
}

// encodeTo writes the request into dst and returns the number of bytes
// written. dst must hold at least EncodedLen bytes.
func (t TransmitFile) encodeTo(dst []byte) int {
	dst[0] = variantApplicationAPI
	dst[1] = variantTransmitFile
	n := 2
	n += putString(dst[n:], t.Path)
	n += putString(dst[n:], t.TargetAddr)
	return n
}

// Encoder writes TransmitFile requests into fixed buffers.
type Encoder struct {
	limit int
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithLimit lowers the maximum message size. Values outside (0, MaxSize]
// are ignored.
func WithLimit(n int) EncoderOption {
	return func(e *Encoder) {
		if n > 0 && n <= MaxSize {
			e.limit = n
		}
	}
}

// NewEncoder creates an Encoder limited to MaxSize bytes unless overridden.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{limit: MaxSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxSize returns the largest message the encoder will produce.
func (e *Encoder) MaxSize() int {
	return e.limit
}

// Encode writes a TransmitFile request for path and targetAddr into dst and
// returns its length. Nothing is written unless the whole message fits in
// both dst and the encoder limit.
func (e *Encoder) Encode(dst []byte, path, targetAddr string) (int, error) {
	if !utf8.ValidString(path) {
		return 0, errors.Wrap(ErrInvalidText, "path")
	}
	if !utf8.ValidString(targetAddr) {
		return 0, errors.Wrap(ErrInvalidText, "target address")
	}

	req := TransmitFile{Path: path, TargetAddr: targetAddr}
	need := req.EncodedLen()
	if need > e.limit {
		return 0, errors.Wrapf(ErrBufferTooSmall, "message is %d bytes, limit is %d", need, e.limit)
	}
	if need > len(dst) {
		return 0, errors.Wrapf(ErrBufferTooSmall, "message is %d bytes, buffer holds %d", need, len(dst))
	}

	return req.encodeTo(dst), nil
}
