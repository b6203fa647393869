package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/core/timer"
	"github.com/emberloop/ember/internal/persist"
)

type memStore struct {
	mu      sync.Mutex
	batches [][]persist.FrameStat
	err     error
}

func (s *memStore) InsertBatch(_ context.Context, stats []persist.FrameStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, append([]persist.FrameStat(nil), stats...))
	return nil
}

func (s *memStore) rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

type chanSink struct{ got []persist.FrameStat }

func (c *chanSink) Enqueue(s persist.FrameStat) bool {
	c.got = append(c.got, s)
	return true
}

func TestRecorderTracksSecondsAndRemovals(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	sink := &chanSink{}
	r, err := NewRecorder(RecorderOptions{
		Backend:     "headless",
		SceneDigest: "d1",
		Sink:        sink,
		Now:         func() time.Time { return at },
	}, zap.NewNop())
	require.NoError(t, err)

	bus := event.NewBus()
	r.Attach(bus)
	event.Emit(bus, event.SecondElapsed{Report: timer.Report{Seconds: 1.02, Cycles: 61}, Entities: 3, Cycle: 61})
	event.Emit(bus, event.EntityRemoved{Tag: "ping"})
	event.Emit(bus, event.EntityRemoved{Tag: "other"})
	bus.SwapBuffers()
	bus.DispatchAll()

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, persist.FrameStat{
		RecordedAt: at, Backend: "headless", SceneDigest: "d1", Seconds: 1.02, Cycles: 61, Entities: 3,
	}, last)
	assert.Equal(t, []persist.FrameStat{last}, sink.got)
	assert.Equal(t, uint64(2), r.Removed())
	assert.Equal(t, "1 samples, 2 entities removed", r.Summary())

	data := r.Metrics().Data()
	require.NotEmpty(t, data)
	cur := data[len(data)-1]
	assert.Equal(t, float32(61), cur.Gauges["ember.frame.ups"].Value)
	assert.Equal(t, float32(3), cur.Gauges["ember.world.entities"].Value)
	assert.Equal(t, 2, cur.Counters["ember.world.removed"].Count)
}

func TestRecorderSummaryGroupsThousands(t *testing.T) {
	r, err := NewRecorder(RecorderOptions{}, zap.NewNop())
	require.NoError(t, err)
	r.samples = 12345
	assert.Equal(t, "12,345 samples, 0 entities removed", r.Summary())
}

func TestWriterBatchesAndFlushesOnClose(t *testing.T) {
	store := &memStore{}
	w := NewWriter(store, 16, 4, time.Hour, zap.NewNop())
	w.Start(context.Background())
	for i := 0; i < 6; i++ {
		require.True(t, w.Enqueue(persist.FrameStat{Cycles: uint64(i)}))
	}
	w.Close()

	assert.Equal(t, 6, store.rows())
	assert.Equal(t, uint64(6), w.Written())
	require.Len(t, store.batches, 2)
	assert.Len(t, store.batches[0], 4)
	assert.Equal(t, uint64(5), store.batches[1][1].Cycles)
}

func TestWriterDropsWhenFull(t *testing.T) {
	w := NewWriter(&memStore{}, 2, 2, time.Hour, zap.NewNop())
	// not started: nothing drains the queue
	assert.True(t, w.Enqueue(persist.FrameStat{}))
	assert.True(t, w.Enqueue(persist.FrameStat{}))
	assert.False(t, w.Enqueue(persist.FrameStat{}))
	assert.Equal(t, uint64(1), w.Dropped())
}

func TestWriterCountsFailures(t *testing.T) {
	store := &memStore{err: errors.New("db down")}
	w := NewWriter(store, 4, 2, time.Hour, zap.NewNop())
	w.Start(context.Background())
	w.Enqueue(persist.FrameStat{})
	w.Enqueue(persist.FrameStat{})
	w.Enqueue(persist.FrameStat{})
	w.Close()
	assert.Equal(t, uint64(3), w.Failed())
	assert.Zero(t, w.Written())
}

func TestWriterFlushesOnCancel(t *testing.T) {
	store := &memStore{}
	w := NewWriter(store, 4, 10, time.Hour, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	w.Enqueue(persist.FrameStat{Cycles: 1})
	w.Start(ctx)
	cancel()
	w.Close()
	assert.Equal(t, 1, store.rows())
}
