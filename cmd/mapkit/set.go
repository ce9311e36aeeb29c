package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mapkit/flat"
	"mapkit/internal/document"
)

func newSetCmd(a *app) *cobra.Command {
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "set FILE PATH VALUE",
		Short: "Set the value at a path",
		Long: `Set stores VALUE at PATH, creating the mappings on the way. A non-mapping
value met on the way is replaced by a new mapping. VALUE is parsed as
YAML: 8080 is a number, "8080" a string, {tls: true} a mapping.

The result is printed, or written back to FILE in its own format with
--in-place.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPlace && args[0] == stdinPath {
				return errors.New("--in-place needs a file, not standard input")
			}

			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			keys, err := a.parsePath(args[1])
			if err != nil {
				return err
			}

			value, err := document.ParseValue(args[2])
			if err != nil {
				return err
			}

			if _, err := flat.MakeIn(doc.Root, keys, value); err != nil {
				return err
			}

			if !inPlace {
				return a.write(cmd.OutOrStdout(), doc.Root)
			}

			if err := document.WriteFile(doc, args[0], a.cfg.GetInt(cfgKeyIndent)); err != nil {
				return err
			}

			a.logger.Info("document updated", zap.String("file", args[0]), zap.String("path", args[1]))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "write the result back to FILE")

	return cmd
}
