package app

import (
	"context"
	"os"
	"syscall"

	"go.uber.org/zap"
)

// shutdownSignals end the console session
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// watchSignals returns an errgroup task that calls cancel when a signal
// arrives on sigCh. The task ends when a signal arrives or ctx is done.
func watchSignals(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, log *zap.Logger) func() error {
	return func() error {
		select {
		case sig := <-sigCh:
			log.Info("received signal, shutting down", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
		return nil
	}
}
