package signals

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalContext returns a context that is canceled when the process receives SIGINT or SIGTERM.
// A second signal terminates the process immediately.
func SignalContext(parentCtx context.Context) context.Context {
	ctx, cancel := context.WithCancel(parentCtx)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Received signal; shutting down")
		cancel()

		<-sigCh
		slog.Warn("Received second signal; exiting immediately")
		os.Exit(1)
	}()

	return ctx
}
