// Package varwidth implements the variable-width bit codec used by the LZW
// bit stream: given a space of size n, a codeword is exactly ceil(log2(n))
// bits wide, MSB first. The width is always recomputed from n, never cached,
// because n tracks the encoder/decoder's live dictionary size.
package varwidth

import (
	"fmt"
	"math/bits"
)

// BitSource is the minimal read side needed to deserialize a codeword. ok is
// false only when the source is exhausted exactly on a byte boundary.
type BitSource interface {
	ReadBit() (bit byte, ok bool)
}

// BitSink is the minimal write side needed to serialize a codeword.
type BitSink interface {
	WriteBit(bit byte) error
}

// Width returns ceil(log2(n)) for n >= 1. It panics for n < 1.
func Width(n int) int {
	if n < 1 {
		panic(fmt.Sprintf("varwidth: Width called with non-positive space size %d", n))
	}
	if n == 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Serialize emits k as a Width(n)-bit, MSB-first codeword into sink. k must
// satisfy 0 <= k < n.
func Serialize(k, n int, sink BitSink) error {
	if k < 0 || k >= n {
		panic(fmt.Sprintf("varwidth: Serialize(%d, %d): k out of range", k, n))
	}
	w := Width(n)
	for i := w - 1; i >= 0; i-- {
		bit := byte((k >> i) & 1)
		if err := sink.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads exactly Width(n) bits from source and interprets them
// MSB-first as an unsigned integer in [0, n).
//
// If the source runs out before the codeword is complete — whether on the
// first bit or partway through — Deserialize returns (0, false): a clean
// end-of-stream. A byte-packed stream's zero-padding tail looks structurally
// identical to a genuinely truncated stream, so the wire format makes no
// attempt to tell them apart; both simply end the decode.
func Deserialize(n int, source BitSource) (k int, ok bool) {
	w := Width(n)
	if w == 0 {
		return 0, true
	}
	value := 0
	for i := 0; i < w; i++ {
		bit, readOK := source.ReadBit()
		if !readOK {
			return 0, false
		}
		value = (value << 1) | int(bit)
	}
	return value, true
}
