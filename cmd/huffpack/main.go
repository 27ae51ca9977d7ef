// Command huffpack compresses and decompresses files with a Huffman code.
//
// Usage:
//
//     huffpack compress <input> <output>
//     huffpack decompress <input> <output>
//
// Settings are read from the environment: HUFFPACK_LOG_LEVEL (debug, info or
// error) and HUFFPACK_FILE_MODE (octal permissions for the output file).
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/internal/config"
	"github.com/chronos-tachyon/huffpack/internal/logger"
)

const usage = "usage: huffpack compress|decompress <input> <output>"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, os.LookupEnv))
}

type command struct {
	phase     string
	transform func(input []byte, logg logger.Logger) ([]byte, error)
}

var commands = map[string]command{
	"compress":   {phase: "compress", transform: compress},
	"decompress": {phase: "decode", transform: decompress},
}

func run(args []string, stderr io.Writer, lookup func(string) (string, bool)) int {
	cfg, err := config.LoadFrom(lookup)
	if err != nil {
		fmt.Fprintf(stderr, "huffpack: config: %v\n", err)
		return 1
	}
	logg := logger.New(stderr, cfg.LogLevel)

	if len(args) != 3 {
		logg.Errorf("%s", usage)
		return 1
	}
	cmd, found := commands[args[0]]
	if !found {
		logg.Errorf("unknown command %q; %s", args[0], usage)
		return 1
	}
	inputPath, outputPath := args[1], args[2]

	input, err := os.ReadFile(inputPath)
	if err != nil {
		logg.Errorf("read input: %v", err)
		return 1
	}

	output, err := cmd.transform(input, logg)
	if err != nil {
		logg.Errorf("%s: %v", cmd.phase, err)
		return 1
	}

	if err := writeOutput(outputPath, output, cfg.FileMode); err != nil {
		logg.Errorf("write output: %v", err)
		return 1
	}

	logg.Infof("%s: %s (%d bytes) -> %s (%d bytes)", args[0], inputPath, len(input), outputPath, len(output))
	return 0
}

func compress(input []byte, logg logger.Logger) ([]byte, error) {
	a, err := huffpack.CompressArchive(input)
	if err != nil {
		return nil, err
	}
	dumpArchive(a, logg)

	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(input []byte, logg logger.Logger) ([]byte, error) {
	a, err := huffpack.ReadArchive(input)
	if err != nil {
		return nil, err
	}
	dumpArchive(a, logg)
	return a.Decode()
}

func dumpArchive(a *huffpack.Archive, logg logger.Logger) {
	if !logg.Enabled(logger.LevelDebug) {
		return
	}
	w := logg.Writer(logger.LevelDebug)
	_, _ = a.Frequencies.Dump(w)
	if a.Tree != nil {
		_, _ = a.Tree.Dump(w)
	}
	if a.Codes != nil {
		_, _ = a.Codes.Dump(w)
	}
	logg.Debugf("encoded stream: %d bytes, padding %d bits", len(a.Stream), paddingOf(a.Stream))
}

func paddingOf(stream []byte) int {
	if len(stream) == 0 {
		return 0
	}
	return int(stream[0])
}

// writeOutput writes data to a temporary file next to path and renames it
// into place, so a failed write never leaves a partial output behind.
func writeOutput(path string, data []byte, mode os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
