package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mapkit/internal/diagnostic"
	"mapkit/internal/pathexpr"
	"mapkit/internal/suggest"
	"mapkit/omap"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE PATH",
		Short: "Print the value at a path",
		Long: `Get prints the value found by following PATH from the document root.
Scalars are printed as plain text, mappings and lists in the output
format. A missing key is reported together with the closest existing keys.

Example:
  mapkit get config.yaml server.http.port`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			keys, err := a.parsePath(args[1])
			if err != nil {
				return err
			}

			v, err := lookup(doc.Root, keys, doc.Source, a.separator())
			if err != nil {
				return err
			}

			return a.writeValue(cmd.OutOrStdout(), v)
		},
	}
}

// lookup follows keys from root. A failed step is reported as a diagnostic
// error naming the path up to the failing key.
func lookup(root *omap.Map, keys []string, source, sep string) (any, error) {
	var cur any = root

	for i, k := range keys {
		at := pathexpr.FormatSep(keys[:i+1], sep)

		m, ok := cur.(*omap.Map)
		if !ok {
			var d diagnostic.Diagnostics
			d.AddError(diagnostic.CodeNotMapping, fmt.Sprintf("cannot look up %q in a %T", k, cur), source, at)

			return nil, d.Error()
		}

		v, ok := m.Get(k)
		if !ok {
			var d diagnostic.Diagnostics
			d.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        diagnostic.CodeMissingPath,
				Message:     "key not found",
				Source:      source,
				Path:        at,
				Suggestions: suggest.Closest(k, m.Keys(), suggest.DefaultLimit),
			})

			return nil, d.Error()
		}

		cur = v
	}

	return cur, nil
}
