// Package main provides the CLI entrypoint for mp-generator.
//
// mp-generator turns a web-style build (per-entry script and style bundles)
// into a mini-program project:
//   - Collects each entry's assets and who references them
//   - Moves package-private assets into their code-split package
//   - Compiles the router into runtime patterns
//   - Generates page files, app manifests and the runtime config
//   - Wraps every chunk script in the window sandbox
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
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
