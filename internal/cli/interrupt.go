package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// ShutdownNotice stops a long-running command on SIGINT or SIGTERM and says
// goodbye on the way out.
type ShutdownNotice struct {
	out         io.Writer
	activity    string
	interrupted atomic.Bool
}

// NewShutdownNotice prepares a notice for activity, as in "Reminders
// stopped". A nil out writes to stdout.
func NewShutdownNotice(out io.Writer, activity string) *ShutdownNotice {
	if out == nil {
		out = os.Stdout
	}
	return &ShutdownNotice{out: out, activity: activity}
}

// Watch returns a context that ends on the first interrupt signal, when
// parent ends, or when the returned cancel func is called.
func (n *ShutdownNotice) Watch(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			if n.interrupted.CompareAndSwap(false, true) {
				n.announce(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func (n *ShutdownNotice) announce(sig os.Signal) {
	slog.Debug("Received signal", "signal", sig.String())
	_, err := fmt.Fprintf(n.out, "\n\n%s\n%s\n",
		FormatWarning(n.activity+" stopped."),
		FormatInfo("See you later! "+MoneyIcon))
	if err != nil {
		slog.Warn("Failed to write shutdown message", "error", err)
	}
}

// Interrupted reports whether a signal ended the watch.
func (n *ShutdownNotice) Interrupted() bool {
	return n.interrupted.Load()
}
