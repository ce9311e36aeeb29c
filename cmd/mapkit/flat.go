package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mapkit/flat"
	"mapkit/internal/document"
	"mapkit/omap"
)

func newFlatCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "flat FILE",
		Short: "List the leaves of a document as path=value lines",
		Long: `Flat lists every leaf of the document with the path that reaches it, in
document order. Values are written as JSON, so the output can be read back
with unflat. Lists are leaves; empty mappings have no leaves.

With --format yaml or json the leaves are printed as a single-level
document keyed by path instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			entries := flat.Flatten(doc.Root)
			out := cmd.OutOrStdout()

			if format == "lines" {
				return a.writeLines(out, entries)
			}

			f, err := document.ParseFormat(format)
			if err != nil {
				return err
			}

			byPath := omap.NewWithCapacity(len(entries))
			for _, e := range entries {
				byPath.Set(a.formatPath(e.Keys), e.Value)
			}

			data, err := document.Marshal(byPath, f, a.cfg.GetInt(cfgKeyIndent))
			if err != nil {
				return err
			}

			_, err = out.Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "lines", "lines, yaml or json")

	return cmd
}

func (a *app) writeLines(w io.Writer, entries []flat.Entry) error {
	bw := bufio.NewWriter(w)

	for _, e := range entries {
		value, err := json.Marshal(e.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", a.formatPath(e.Keys), err)
		}

		fmt.Fprintf(bw, "%s=%s\n", a.formatPath(e.Keys), value)
	}

	return bw.Flush()
}

func newUnflatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unflat [FILE]",
		Short: "Build a document from path=value lines",
		Long: `Unflat reads path=value lines, as printed by flat, from FILE or standard
input and prints the document they describe. Values are parsed as YAML,
so 8080 is a number, true a boolean and [a, b] a list. Blank lines and
lines starting with # are skipped. A later line overwrites what an earlier
one set on the same path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			source := stdinPath

			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()

				in, source = f, args[0]
			}

			entries, err := a.readLines(in, source)
			if err != nil {
				return err
			}

			return a.write(cmd.OutOrStdout(), flat.Unflatten(entries))
		},
	}
}

func (a *app) readLines(r io.Reader, source string) ([]flat.Entry, error) {
	var entries []flat.Entry

	br := bufio.NewReader(r)

	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}

		if line == "" && err != nil {
			break
		}

		line = strings.TrimRight(line, "\r\n")
		if text := strings.TrimLeft(line, " \t"); text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		path, raw, ok := splitLine(line)
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected path=value", source, n)
		}

		keys, err := a.parsePath(trimPath(path))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, n, err)
		}

		value, err := document.ParseValue(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, n, err)
		}

		entries = append(entries, flat.Entry{Keys: keys, Value: value})
	}

	return entries, nil
}
