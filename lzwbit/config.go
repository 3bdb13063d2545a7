// Package lzwbit implements a bit-level LZW compressor and decompressor over
// a binary {0,1} alphabet, using a self-pruning dictionary (package
// dictionary) and a variable-width bit codec (package varwidth).
package lzwbit

import "fortio.org/log"

// Config holds the tunables an Encoder or Decoder is built with. The zero
// value is the default configuration.
type Config struct {
	verbose bool
}

// Option configures an Encoder or Decoder, in the style of a functional
// option.
type Option func(*Config)

// WithVerboseLogging toggles per-symbol debug tracing through the
// package-level fortio.org/log logger. Off by default.
func WithVerboseLogging(v bool) Option {
	return func(c *Config) { c.verbose = v }
}

func newConfig(opts []Option) Config {
	var c Config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Config) tracef(format string, args ...any) {
	if !c.verbose {
		return
	}
	log.Debugf(format, args...)
}
