package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"mapkit/omap"
	"mapkit/shape"
	"mapkit/view"
)

func newFilterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filter FILE KEY...",
		Short: "Keep only the given top-level keys",
		Long: `Filter prints the entries of the document root whose keys are listed, in
the order they are listed. Unknown keys are ignored.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			filtered, err := view.Filter(doc.Root, args[1:])
			if err != nil {
				return err
			}

			return a.write(cmd.OutOrStdout(), filtered)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete FILE KEY...",
		Short: "Drop the given top-level keys",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			return a.write(cmd.OutOrStdout(), view.Delete(doc.Root, args[1:]))
		},
	}
}

func newGrepCmd(a *app) *cobra.Command {
	var (
		invert   bool
		nonEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "grep FILE PATTERN",
		Short: "Keep top-level keys matching a regular expression",
		Long: `Grep prints the entries of the document root whose keys match PATTERN,
a Go regular expression. --non-empty also drops entries whose value is
null, an empty string, an empty list or an empty mapping.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regexp.Compile(args[1])
			if err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}

			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			kept := view.Grep(doc.Root, func(key string, value any) bool {
				if nonEmpty && isBlank(value) {
					return false
				}

				return re.MatchString(key) != invert
			})

			return a.write(cmd.OutOrStdout(), kept)
		},
	}

	cmd.Flags().BoolVar(&invert, "invert", false, "keep the keys that do not match")
	cmd.Flags().BoolVar(&nonEmpty, "non-empty", false, "drop entries with empty values")

	return cmd
}

// isBlank reports values that carry no data. Numbers and booleans are
// data even when zero.
func isBlank(v any) bool {
	switch v.(type) {
	case bool, int, int64, uint64, float64:
		return false
	default:
		return shape.IsEmpty(v)
	}
}

func newKeysCmd(a *app) *cobra.Command {
	var deepKeys bool

	cmd := &cobra.Command{
		Use:   "keys FILE",
		Short: "List the keys of a document",
		Long: `Keys prints the top-level keys of the document, one per line. With --deep
it prints every key in document order, descending into mappings and
lists; list entries are keyed by their index. Keys are indented by depth.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if !deepKeys {
				view.Each(doc.Root, func(key string, _ any, _ *omap.Map) bool {
					fmt.Fprintln(out, key)
					return true
				})

				return nil
			}

			// depth of each container entered so far, the root being absent
			depth := map[any]int{}

			view.EachDeep(doc.Root, func(key string, value any, container any) bool {
				d := depth[identity(container)]
				fmt.Fprintf(out, "%*s%s\n", d*2, "", key)

				if id := identity(value); id != nil {
					depth[id] = d + 1
				}

				return true
			})

			return nil
		},
	}

	cmd.Flags().BoolVarP(&deepKeys, "deep", "d", false, "list nested keys too")

	return cmd
}

// sliceID identifies a []any by its first element and its length.
type sliceID struct {
	first *any
	n     int
}

// identity returns a comparable handle for a container value, or nil.
func identity(v any) any {
	switch t := v.(type) {
	case *omap.Map:
		if t != nil {
			return t
		}
	case []any:
		if len(t) > 0 {
			return sliceID{first: &t[0], n: len(t)}
		}
	}

	return nil
}
