package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"mapkit/view"
)

const defaultMask = "***"

func newRedactCmd(a *app) *cobra.Command {
	var mask string

	cmd := &cobra.Command{
		Use:   "redact FILE PATTERN",
		Short: "Mask values whose keys match a regular expression",
		Long: `Redact prints the document with every value whose key matches PATTERN,
at any depth, replaced by the mask. Nested mappings are searched rather
than masked, so a matching key masks only leaves.

Example:
  mapkit redact config.yaml '(?i)password|secret|token'`,
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

			redacted := view.MapValuesDeep(doc.Root, func(key string, value any) any {
				if re.MatchString(key) {
					return mask
				}

				return value
			})

			return a.write(cmd.OutOrStdout(), redacted)
		},
	}

	cmd.Flags().StringVar(&mask, "mask", defaultMask, "replacement for redacted values")

	return cmd
}
