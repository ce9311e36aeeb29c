package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mapkit/deep"
	"mapkit/internal/watch"
	"mapkit/omap"
)

func newMergeCmd(a *app) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Deep-merge documents left to right",
		Long: `Merge deep-merges the documents from left to right and prints the result.
Nested mappings are merged key by key; every other value, lists included,
is replaced by the value of the last document that sets it.

Example:
  mapkit merge base.yaml prod.yaml
  mapkit merge -o json defaults.json local.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if err := a.mergeAndWrite(out, args); err != nil {
				return err
			}

			if !watchFiles {
				return nil
			}

			return watch.Run(cmd.Context(), watch.Options{
				Paths:    args,
				Debounce: debounce(a.cfg),
				Logger:   a.logger,
			}, func(context.Context) error {
				a.logger.Info("documents changed, merging again", zap.Strings("files", args))
				return a.mergeAndWrite(out, args)
			})
		},
	}

	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "merge again whenever a file changes")

	return cmd
}

func (a *app) merge(files []string) (*omap.Map, error) {
	sources := make([]*omap.Map, 0, len(files))

	for _, f := range files {
		doc, err := a.load(f)
		if err != nil {
			return nil, err
		}

		sources = append(sources, doc.Root)
	}

	return deep.Merge(sources...), nil
}

func (a *app) mergeAndWrite(w io.Writer, files []string) error {
	merged, err := a.merge(files)
	if err != nil {
		return err
	}

	return a.write(w, merged)
}
