package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignals returns a context cancelled on SIGINT/SIGTERM. An in-flight
// cart sync is not aborted mid-request; the next blocking call observes the
// cancellation.
func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(ch)
		select {
		case <-ctx.Done():
			return
		case <-ch:
			cancel()
		}
	}()

	return ctx, cancel
}
