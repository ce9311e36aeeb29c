package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"mapkit/internal/diagnostic"
	"mapkit/internal/document"
	"mapkit/internal/pathexpr"
	"mapkit/omap"
)

// stdinPath names standard input in place of a file.
const stdinPath = "-"

// load reads a document and logs the diagnostics found while decoding it.
// stdinPath reads standard input as YAML, which also accepts JSON.
func (a *app) load(path string) (*document.Document, error) {
	if path == stdinPath {
		return a.loadReader(a.stdin, stdinPath, document.FormatYAML)
	}

	var diags diagnostic.Diagnostics

	doc, err := document.LoadFile(path, &diags)

	a.logDiagnostics(&diags)

	if err != nil {
		return nil, err
	}

	a.logger.Debug("document loaded",
		zap.String("source", doc.Source),
		zap.Stringer("format", doc.Format),
		zap.Int("keys", doc.Root.Len()),
	)

	return doc, nil
}

// loadReader reads a document from r, e.g. standard input.
func (a *app) loadReader(r io.Reader, source string, format document.Format) (*document.Document, error) {
	var diags diagnostic.Diagnostics

	doc, err := document.Load(r, source, format, &diags)

	a.logDiagnostics(&diags)

	return doc, err
}

func (a *app) logDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fields := []zap.Field{
			zap.String("code", d.Code),
			zap.String("source", d.Source),
			zap.String("path", d.Path),
		}

		switch d.Severity {
		case diagnostic.SeverityError:
			a.logger.Error(d.Message, fields...)
		case diagnostic.SeverityWarning:
			a.logger.Warn(d.Message, fields...)
		default:
			a.logger.Info(d.Message, fields...)
		}
	}
}

// write prints m in the configured output format.
func (a *app) write(w io.Writer, m *omap.Map) error {
	data, err := document.Marshal(m, outputFormat(a.cfg), a.cfg.GetInt(cfgKeyIndent))
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// writeValue prints a value found inside a document: scalars as plain text,
// mappings and slices in the configured output format.
func (a *app) writeValue(w io.Writer, v any) error {
	switch v.(type) {
	case *omap.Map, []any:
		data, err := document.MarshalValue(v, outputFormat(a.cfg), a.cfg.GetInt(cfgKeyIndent))
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

func (a *app) separator() string {
	return a.cfg.GetString(cfgKeySeparator)
}

// parsePath parses a path argument with the configured separator.
func (a *app) parsePath(s string) ([]string, error) {
	return pathexpr.ParseSep(s, a.separator())
}

// formatPath renders keys for a path=value line. On top of the separator,
// "=" is escaped so the line splits unambiguously, and a leading "#" or
// whitespace at either end is escaped so readLines keeps it.
func (a *app) formatPath(keys []string) string {
	path := strings.ReplaceAll(pathexpr.FormatSep(keys, a.separator()), "=", `\=`)

	if path == "" {
		return path
	}

	if path[0] == '#' || isLineSpace(path[0]) {
		path = `\` + path
	}

	if last := len(path) - 1; isLineSpace(path[last]) && !escapedAt(path, last) {
		path = path[:last] + `\` + path[last:]
	}

	return path
}

// splitLine splits a path=value line at the first "=" that is not escaped.
func splitLine(line string) (path, value string, ok bool) {
	escaped := false

	for i := 0; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '=':
			return line[:i], line[i+1:], true
		}
	}

	return "", "", false
}

// trimPath drops the whitespace around a path, keeping escaped whitespace.
func trimPath(path string) string {
	path = strings.TrimLeft(path, " \t")

	for last := len(path) - 1; last >= 0 && isLineSpace(path[last]) && !escapedAt(path, last); last-- {
		path = path[:last]
	}

	return path
}

// escapedAt reports whether s[i] is preceded by an odd number of backslashes.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}

	return n%2 == 1
}

func isLineSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
