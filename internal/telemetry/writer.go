package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/persist"
)

// Store persists batches of samples.
type Store interface {
	InsertBatch(ctx context.Context, stats []persist.FrameStat) error
}

// Writer persists samples on a background goroutine so the frame loop never
// waits on the database.
type Writer struct {
	store     Store
	log       *zap.Logger
	queue     chan persist.FrameStat
	batchSize int
	interval  time.Duration

	dropped atomic.Uint64
	written atomic.Uint64
	failed  atomic.Uint64

	closeOnce sync.Once
	done      chan struct{}
}

func NewWriter(store Store, queueSize, batchSize int, interval time.Duration, log *zap.Logger) *Writer {
	if queueSize <= 0 {
		queueSize = 64
	}
	if batchSize <= 0 {
		batchSize = 16
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Writer{
		store:     store,
		log:       log,
		queue:     make(chan persist.FrameStat, queueSize),
		batchSize: batchSize,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Enqueue hands s to the writer. It returns false when the queue is full.
func (w *Writer) Enqueue(s persist.FrameStat) bool {
	select {
	case w.queue <- s:
		return true
	default:
		w.dropped.Add(1)
		return false
	}
}

// Start runs the writer until Close. Batches are flushed when full, on every
// interval and once more on shutdown.
func (w *Writer) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Writer) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	batch := make([]persist.FrameStat, 0, w.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		// a cancelled ctx must not lose the final batch
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := w.store.InsertBatch(fctx, batch); err != nil {
			w.failed.Add(uint64(len(batch)))
			w.log.Error("frame stats write failed", zap.Int("count", len(batch)), zap.Error(err))
		} else {
			w.written.Add(uint64(len(batch)))
		}
		batch = batch[:0]
	}

	for {
		select {
		case s, ok := <-w.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, s)
			if len(batch) >= w.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			w.drain(&batch)
			flush()
			return
		}
	}
}

func (w *Writer) drain(batch *[]persist.FrameStat) {
	for {
		select {
		case s := <-w.queue:
			*batch = append(*batch, s)
		default:
			return
		}
	}
}

// Close stops accepting samples, flushes what is queued and waits for the writer.
// Enqueue must not be called after Close.
func (w *Writer) Close() {
	w.closeOnce.Do(func() { close(w.queue) })
	<-w.done
}

func (w *Writer) Dropped() uint64 { return w.dropped.Load() }
func (w *Writer) Written() uint64 { return w.written.Load() }
func (w *Writer) Failed() uint64  { return w.failed.Load() }
