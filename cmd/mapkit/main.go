// Package main provides the mapkit CLI.
//
// mapkit applies the library's mapping operations to YAML and JSON files:
// deep merging, flattening to path=value lines and back, path lookups and
// updates, and key-based views.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(&app{}).ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
