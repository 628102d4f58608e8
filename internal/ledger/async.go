package ledger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// writeTimeout bounds a single background write so a hung store cannot
// leak goroutines past session end.
const writeTimeout = 5 * time.Second

// AsyncWriter decorates a Ledger so RecordExposure returns immediately and
// the actual write happens on a background goroutine. Failed writes are
// logged at Warn and dropped, never retried.
//
// Reads and Reset stay synchronous: Reset is an explicit user action and
// Stats is only called at session start, before any sampling runs.
type AsyncWriter struct {
	inner Ledger
	log   *zap.Logger
	wg    sync.WaitGroup
}

// NewAsyncWriter wraps inner. log may be nil, defaulting to a no-op logger.
func NewAsyncWriter(inner Ledger, log *zap.Logger) *AsyncWriter {
	if log == nil {
		log = zap.NewNop()
	}
	return &AsyncWriter{inner: inner, log: log}
}

// Stats delegates to the wrapped ledger.
func (w *AsyncWriter) Stats(ctx context.Context, userID string) (map[string]UsageRecord, error) {
	return w.inner.Stats(ctx, userID)
}

// RecordExposure queues the write and returns nil immediately. The write
// uses a detached context so a finished session never cancels it mid-flight.
func (w *AsyncWriter) RecordExposure(_ context.Context, userID, questionID string, wasCorrect bool) error {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := w.inner.RecordExposure(ctx, userID, questionID, wasCorrect); err != nil {
			w.log.Warn("dropping failed usage write",
				zap.String("user", userID),
				zap.String("question", questionID),
				zap.Error(err))
		}
	}()
	return nil
}

// Reset delegates synchronously.
func (w *AsyncWriter) Reset(ctx context.Context, userID string) error {
	return w.inner.Reset(ctx, userID)
}

// Close waits for in-flight writes to finish.
func (w *AsyncWriter) Close() {
	w.wg.Wait()
}
