// Command urlkit parses, normalizes and scans URLs from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jongio/urlkit/version"
)

// Set via -ldflags at build time.
var (
	Version   = "0.0.0-dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	info := version.New("urlkit")
	info.Version, info.BuildDate, info.GitCommit = Version, BuildDate, GitCommit

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(info).ExecuteContext(ctx)
	stop()
	if err != nil {
		// Per-input failures have already been reported.
		if !errors.Is(err, errInputsFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
