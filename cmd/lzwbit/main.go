// Command lzwbit compresses and decompresses files using the bit-level LZW
// codec implemented by package lzwbit.
package main

import (
	"flag"
	"os"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/saxbophone/lzw-bit/lzwbit"
)

func main() {
	os.Exit(Main())
}

// Main runs the CLI and returns a process exit code, so tests can drive it
// without calling os.Exit directly.
func Main() int {
	verbose := flag.Bool("verbose", false, "log every codeword as it is encoded/decoded")

	cli.ArgsHelp = "[c|d] <input file> <output file>"
	cli.MinArgs = 3
	cli.MaxArgs = 3
	cli.Main()

	log.Infof("lzwbit %s", cli.LongVersion)

	args := flag.Args()
	return run(args[0], args[1], args[2], *verbose)
}

// run performs the requested mode against the given file paths and returns a
// process exit code. It touches neither the flag package nor fortio.org/cli,
// so tests can call it directly without the one-shot flag-registration
// restrictions Main carries.
func run(mode, inPath, outPath string, verbose bool) int {
	in, err := os.Open(inPath)
	if err != nil {
		log.Errf("opening %s: %v", inPath, err)
		return 1
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		log.Errf("creating %s: %v", outPath, err)
		return 1
	}
	defer out.Close()

	opts := []lzwbit.Option{lzwbit.WithVerboseLogging(verbose)}

	switch mode {
	case "c":
		if _, err := lzwbit.Compress(in, out, opts...); err != nil {
			log.Errf("compressing %s: %v", inPath, err)
			return 1
		}
	case "d":
		if _, err := lzwbit.Decompress(in, out, opts...); err != nil {
			log.Errf("decompressing %s: %v", inPath, err)
			return 1
		}
	default:
		log.Errf("unknown mode %q, expected c or d", mode)
		return 1
	}

	inInfo, err := in.Stat()
	if err != nil {
		log.Errf("stat %s: %v", inPath, err)
		return 1
	}
	outInfo, err := out.Stat()
	if err != nil {
		log.Errf("stat %s: %v", outPath, err)
		return 1
	}
	inSize, outSize := inInfo.Size(), outInfo.Size()

	ratio := 100.0
	if inSize > 0 {
		ratio = float64(outSize) / float64(inSize) * 100
	}
	log.Infof("%d bytes -> %d bytes (%.0f%%)", inSize, outSize, ratio)
	return 0
}
