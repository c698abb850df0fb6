// tagpack-dump prints tagged-mode data as a tree without needing the schema
// that produced it. Input is read from a file argument or stdin, either as
// raw bytes or (with --hex) as hexadecimal text.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/clockworklabs/tagpack/pkg/tagpack/inspect"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	format  string
	hex     bool
	single  bool
	verbose bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("tagpack-dump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.format, "format", "f", "text", "output format: text, json or yaml")
	flagSet.BoolVar(&opts.hex, "hex", false, "input is hexadecimal text (whitespace ignored)")
	flagSet.BoolVar(&opts.single, "single", false, "input holds exactly one value; trailing bytes are an error")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch opts.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}

	rest := flagSet.Args()
	if len(rest) > 1 {
		return fmt.Errorf("unexpected argument: %s", rest[1])
	}
	source := "stdin"
	input := stdin
	if len(rest) == 1 && rest[0] != "-" {
		f, err := os.Open(rest[0])
		if err != nil {
			return err
		}
		defer f.Close()
		source, input = rest[0], f
	}

	data, err := readInput(input, opts.hex)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}
	logger.Debug("read input", "source", source, "bytes", len(data))

	var nodes []*inspect.Node
	var decodeErr error
	if opts.single {
		n, err := inspect.Decode(data)
		if n != nil {
			nodes = append(nodes, n)
		}
		decodeErr = err
	} else {
		nodes, decodeErr = inspect.DecodeAll(data)
	}
	logger.Debug("decoded", "values", len(nodes))

	if err := write(stdout, opts.format, nodes); err != nil {
		return err
	}
	if decodeErr != nil {
		return fmt.Errorf("decoding %s: %w", source, decodeErr)
	}
	return nil
}

func readInput(r io.Reader, isHex bool) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !isHex {
		return data, nil
	}
	text := strings.Join(strings.Fields(string(data)), "")
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	return hex.DecodeString(text)
}

func write(w io.Writer, format string, nodes []*inspect.Node) error {
	switch format {
	case "json":
		if nodes == nil {
			nodes = []*inspect.Node{}
		}
		out, err := gojson.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(out, '\n'))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return err
		}
		return enc.Close()
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := inspect.WriteText(&buf, n); err != nil {
			return err
		}
	}
	_, err := buf.WriteTo(w)
	return err
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `tagpack-dump prints tagged-mode data without a schema.

Usage:
  tagpack-dump [flags] [file]

With no file, or when file is "-", input is read from stdin.

Examples:
  # Dump a binary file
  tagpack-dump message.bin

  # Dump hex from the command line as JSON
  echo 'b7 01 03 00' | tagpack-dump --hex --format json

Flags:
`)
	flagSet.PrintDefaults()
}
