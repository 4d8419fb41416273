package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals derives a context cancelled on SIGINT or SIGTERM.
// Ingestion checks cancellation between documents, so an interrupted
// run stops at the next document boundary rather than mid-write.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
