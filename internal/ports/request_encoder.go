package ports

// RequestEncoder serializes a TransmitFile request.
type RequestEncoder interface {
	// Encode writes the request for path and targetAddr into dst and returns
	// the number of bytes written. It must fail rather than write past dst
	// or beyond MaxSize.
	Encode(dst []byte, path, targetAddr string) (int, error)

	// MaxSize is the largest message Encode will produce.
	MaxSize() int
}
