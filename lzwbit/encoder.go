package lzwbit

import (
	"github.com/saxbophone/lzw-bit/bitio"
	"github.com/saxbophone/lzw-bit/dictionary"
	"github.com/saxbophone/lzw-bit/varwidth"
)

// EncodeStats summarises a completed Encode call.
type EncodeStats struct {
	BitsIn           int // number of input bits consumed
	BitsOut          int // number of codeword bits written, excluding Close's zero-padding
	FinalCodes       int // dictionary size immediately before the final flush
	RestoredCodes    int // dictionary size after RestoreAllCodes, used to width the trailing residual codeword
	CodewordsWritten int
}

// Encoder compresses a bit source into a stream of variable-width codewords.
// The zero value is ready to use; NewEncoder only exists to apply Options.
type Encoder struct {
	config Config
}

// NewEncoder constructs an Encoder with the given Options applied.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{config: newConfig(opts)}
}

// Encode drains src to end-of-stream, writing the compressed codeword
// sequence to dst. It does not close dst; callers own the sink's lifetime
// (see bitio.ByteSink.Close).
//
// Empty input is special-cased: Encode writes nothing at all, since there is
// no symbol to prefix with an END sentinel and no trailing residual to emit.
func (e *Encoder) Encode(src bitio.Source, dst bitio.Sink) (EncodeStats, error) {
	var stats EncodeStats

	first, ok := src.ReadBit()
	if !ok {
		return stats, nil
	}
	stats.BitsIn++

	dict := dictionary.New()
	p := dictionary.Bits{first}

	emit := func(k, n int) error {
		if err := varwidth.Serialize(k, n, dst); err != nil {
			return err
		}
		stats.BitsOut += varwidth.Width(n)
		stats.CodewordsWritten++
		return nil
	}

	for {
		bit, ok := src.ReadBit()
		if !ok {
			break
		}
		stats.BitsIn++

		pc := extend(p, bit)
		if dict.ContainsString(pc) {
			p = pc
			continue
		}

		code, ok := dict.CodeOf(p)
		if !ok {
			panic("lzwbit: encoder's current match is uncoded, dictionary invariant broken")
		}
		e.config.tracef("lzwbit: encode emit code=%d space=%d", code, dict.Size()+1)
		if err := emit(code, dict.Size()+1); err != nil {
			return stats, err
		}
		dict.DropOldestRedundant()
		dict.Insert(pc)
		p = dictionary.Bits{bit}
	}

	stats.FinalCodes = dict.Size()
	e.config.tracef("lzwbit: encode END sentinel=%d space=%d", dict.Size(), dict.Size()+1)
	if err := emit(dict.Size(), dict.Size()+1); err != nil {
		return stats, err
	}
	dict.RestoreAllCodes()
	stats.RestoredCodes = dict.Size()

	finalCode, ok := dict.CodeOf(p)
	if !ok {
		panic("lzwbit: encoder's trailing match is uncoded after restore, dictionary invariant broken")
	}
	e.config.tracef("lzwbit: encode final code=%d space=%d", finalCode, dict.Size())
	if err := emit(finalCode, dict.Size()); err != nil {
		return stats, err
	}

	return stats, nil
}

func extend(p dictionary.Bits, bit byte) dictionary.Bits {
	out := make(dictionary.Bits, len(p)+1)
	copy(out, p)
	out[len(p)] = bit
	return out
}
