package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"vidq/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	if code := exitCode(os.Stderr, err); code != 0 {
		os.Exit(code)
	}
}

// exitCode reports err on stderr and returns the process exit status.
// Configuration errors get a usage hint since they stop the run before any
// download starts.
func exitCode(stderr io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted; remaining downloads were not started")
		return 130
	case services.IsFatal(err):
		fmt.Fprintln(stderr, "Error:", err)
		fmt.Fprintln(stderr, "Run 'vidq --help' for usage or 'vidq config validate' to check settings.")
		return 1
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
}
