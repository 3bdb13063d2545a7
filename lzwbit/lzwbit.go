package lzwbit

import (
	"io"

	"github.com/saxbophone/lzw-bit/bitio"
)

// Compress reads r to end-of-stream and writes its LZW-bit-compressed form
// to w, using an Encoder configured by opts (the default configuration when
// opts is empty).
func Compress(r io.Reader, w io.Writer, opts ...Option) (EncodeStats, error) {
	src := bitio.NewByteSource(r)
	sink := bitio.NewByteSink(w)
	stats, err := NewEncoder(opts...).Encode(src, sink)
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	return stats, err
}

// Decompress reads an LZW-bit-compressed stream from r to end-of-stream and
// writes the reconstructed bits to w, using a Decoder configured by opts (the
// default configuration when opts is empty).
func Decompress(r io.Reader, w io.Writer, opts ...Option) (DecodeStats, error) {
	src := bitio.NewByteSource(r)
	sink := bitio.NewByteSink(w)
	stats, err := NewDecoder(opts...).Decode(src, sink)
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	return stats, err
}
