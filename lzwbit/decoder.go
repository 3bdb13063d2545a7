package lzwbit

import (
	"fmt"

	"github.com/saxbophone/lzw-bit/bitio"
	"github.com/saxbophone/lzw-bit/dictionary"
	"github.com/saxbophone/lzw-bit/varwidth"
)

// DecodeStats summarises a completed Decode call.
type DecodeStats struct {
	BitsOut       int
	CodewordsRead int
	FinalCodes    int
}

// Decoder reverses Encoder's output, rebuilding the dictionary in lockstep
// with the stream it reads.
type Decoder struct {
	config Config
}

// NewDecoder constructs a Decoder with the given Options applied.
func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{config: newConfig(opts)}
}

// Decode reads a compressed codeword sequence from src and writes the
// reconstructed bits to dst, stopping at the first codeword boundary src
// cannot complete. It does not close dst.
func (d *Decoder) Decode(src bitio.Source, dst bitio.Sink) (DecodeStats, error) {
	var stats DecodeStats
	dict := dictionary.New()

	output := func(s dictionary.Bits) error {
		for _, bit := range s {
			if err := dst.WriteBit(bit); err != nil {
				return err
			}
		}
		stats.BitsOut += len(s)
		return nil
	}

	k, ok := varwidth.Deserialize(dict.Size()+1, src)
	if !ok {
		return stats, nil
	}
	stats.CodewordsRead++

	if k > dict.Size() {
		return stats, fmt.Errorf("lzwbit: first codeword %d exceeds dictionary size %d: %w", k, dict.Size(), ErrCorruptStream)
	}
	if k == dict.Size() {
		// The stream's body never diverged from the two seed strings, so
		// the very first codeword is the END sentinel rather than a real
		// symbol: no body iteration ever ran, so the encoder never had a
		// pending match it inserted but could not get the decoder to mirror,
		// and encoderLag is 0. original_source/lzw_bit.cpp reads the first
		// codeword as an unconditional string_table[k] lookup and has no
		// equivalent guard, which is undefined behaviour for e.g. any
		// single-bit input.
		d.config.tracef("lzwbit: decode first codeword is END, body is empty")
		return d.finishAfterEnd(dict, src, output, &stats, nil, 0)
	}

	w := dict.StringOf(k)
	if err := output(w); err != nil {
		return stats, err
	}

	for {
		size := dict.Size()
		k, ok := varwidth.Deserialize(size+2, src)
		if !ok {
			break
		}
		stats.CodewordsRead++

		if k == size+1 {
			d.config.tracef("lzwbit: decode END sentinel, restoring dropped codes")
			return d.finishAfterEnd(dict, src, output, &stats, w, 1)
		}
		if k > size+1 {
			return stats, fmt.Errorf("lzwbit: codeword %d exceeds dictionary size %d: %w", k, size, ErrCorruptStream)
		}

		var entry dictionary.Bits
		if k < size {
			entry = dict.StringOf(k)
		} else {
			// k == size: the K-omega-K case. The encoder referenced a
			// string it had not yet inserted when it emitted this
			// codeword's predecessor; we can reconstruct it as the
			// previous entry extended by its own first bit.
			entry = extend(w, w[0])
		}
		d.config.tracef("lzwbit: decode code=%d -> %d bits", k, len(entry))
		if err := output(entry); err != nil {
			return stats, err
		}

		dict.Insert(extend(w, entry[0]))
		dict.DropOldestRedundant()
		w = entry
	}

	stats.FinalCodes = dict.Size()
	return stats, nil
}

// finishAfterEnd runs the END handshake: restore every dropped code, read the
// single trailing residual codeword, and output it. This is always the last
// thing Decode does once it sees the sentinel, whether that sentinel was the
// very first codeword or arrived partway through the main loop.
//
// The encoder writes that residual at Width(dict.Size()) on its OWN
// dictionary, taken immediately after its own RestoreAllCodes. Whenever the
// body diverged from the seed strings at all, the encoder's dictionary holds
// one more entry than the decoder's does at the same point: the encoder's
// last body iteration always inserts the pending match (emit, drop, insert)
// before it ever gets a further codeword to react to, but the decoder only
// performs the mirroring insert when it sees the *next* codeword — and
// instead of a next codeword, it sees END. That pending insert is exactly
// the encoder's one extra entry, and encoderLag carries it: 1 whenever the
// body ran at all, 0 only for the fast path where the first codeword read is
// already END (no body iteration ever ran, so there is no pending insert to
// be missing).
//
// When the residual is that very pending entry (k == dict.Size() after the
// restore), it is reconstructed as in the main loop's K-omega-K case: w, the
// last entry decoded before END, extended by its own first bit.
func (d *Decoder) finishAfterEnd(dict *dictionary.Dictionary, src bitio.Source, output func(dictionary.Bits) error, stats *DecodeStats, w dictionary.Bits, encoderLag int) (DecodeStats, error) {
	dict.RestoreAllCodes()
	stats.FinalCodes = dict.Size()
	k, ok := varwidth.Deserialize(dict.Size()+encoderLag, src)
	if !ok {
		return *stats, nil
	}
	stats.CodewordsRead++
	if k > dict.Size() || (k == dict.Size() && len(w) == 0) {
		return *stats, fmt.Errorf("lzwbit: final codeword %d exceeds dictionary size %d: %w", k, dict.Size(), ErrCorruptStream)
	}
	var entry dictionary.Bits
	if k < dict.Size() {
		entry = dict.StringOf(k)
	} else {
		entry = extend(w, w[0])
	}
	if err := output(entry); err != nil {
		return *stats, err
	}
	return *stats, nil
}
