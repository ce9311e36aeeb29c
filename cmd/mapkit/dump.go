package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// dumpConfig prints Go values without addresses so output is stable.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the decoded Go values of a document",
		Long: `Dump prints the document as the Go values mapkit works on, with their
types, to help explain how a file was decoded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(args[0])
			if err != nil {
				return err
			}

			dumpConfig.Fdump(cmd.OutOrStdout(), doc.Root)

			return nil
		},
	}
}
