package lzwbit

import "errors"

// ErrCorruptStream is returned by Decode when a codeword's value falls
// outside the space the current dictionary state can account for — one more
// than the END sentinel allows. An honest Encoder never writes such a value;
// seeing one means the compressed stream has been corrupted. A stream that is
// merely truncated does not produce it: running out of bits ends the decode
// cleanly (see varwidth.Deserialize).
var ErrCorruptStream = errors.New("lzwbit: codeword out of range for current dictionary")
