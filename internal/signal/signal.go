// Package signal provides signal-aware contexts for the CLI.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignalCancel returns a context that is cancelled when SIGINT or SIGTERM
// is received. The returned cancel function releases the signal handler.
func WithSignalCancel(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
