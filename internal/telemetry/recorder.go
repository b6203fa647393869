// Package telemetry turns frame events into metrics, log lines and
// persisted per-second samples.
package telemetry

import (
	"time"

	metrics "github.com/armon/go-metrics"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/persist"
)

var (
	keyUPS      = []string{"frame", "ups"}
	keyEntities = []string{"world", "entities"}
	keyRemoved  = []string{"world", "removed"}
	keySpawned  = []string{"world", "spawned"}
	keyRejected = []string{"world", "rejected"}
	keyResized  = []string{"surface", "resized"}
)

// Sink receives samples for persistence. Enqueue must not block.
type Sink interface {
	Enqueue(s persist.FrameStat) bool
}

// Recorder subscribes to the frame event bus. Handlers run during the event
// phase of the frame loop, on the loop goroutine.
type Recorder struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	inmem   *metrics.InmemSink
	printer *message.Printer
	now     func() time.Time
	sink    Sink

	backend string
	digest  string

	samples uint64
	removed uint64
	last    persist.FrameStat
	hasLast bool
}

type RecorderOptions struct {
	Backend     string
	SceneDigest string
	Sink        Sink // optional
	Now         func() time.Time
}

// NewRecorder creates a recorder with an in-memory metrics sink.
func NewRecorder(opts RecorderOptions, log *zap.Logger) (*Recorder, error) {
	inmem := metrics.NewInmemSink(10*time.Second, time.Minute)
	conf := metrics.DefaultConfig("ember")
	conf.EnableHostname = false
	conf.EnableRuntimeMetrics = false
	m, err := metrics.New(conf, inmem)
	if err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Recorder{
		log:     log,
		metrics: m,
		inmem:   inmem,
		printer: message.NewPrinter(language.English),
		now:     opts.Now,
		sink:    opts.Sink,
		backend: opts.Backend,
		digest:  opts.SceneDigest,
	}, nil
}

// Attach subscribes the recorder to bus.
func (r *Recorder) Attach(bus *event.Bus) {
	event.Subscribe(bus, r.onSecond)
	event.Subscribe(bus, func(event.EntityRemoved) {
		r.removed++
		r.metrics.IncrCounter(keyRemoved, 1)
	})
	event.Subscribe(bus, func(event.EntitySpawned) { r.metrics.IncrCounter(keySpawned, 1) })
	event.Subscribe(bus, func(e event.EntityRejected) {
		r.metrics.IncrCounter(keyRejected, 1)
		r.log.Debug("entity rejected", zap.String("tag", e.Tag))
	})
	event.Subscribe(bus, func(event.SurfaceResized) { r.metrics.IncrCounter(keyResized, 1) })
}

func (r *Recorder) onSecond(e event.SecondElapsed) {
	r.metrics.SetGauge(keyUPS, float32(e.Report.Cycles))
	r.metrics.SetGauge(keyEntities, float32(e.Entities))

	s := persist.FrameStat{
		RecordedAt:  r.now(),
		Backend:     r.backend,
		SceneDigest: r.digest,
		Seconds:     e.Report.Seconds,
		Cycles:      e.Report.Cycles,
		Entities:    e.Entities,
	}
	r.last, r.hasLast = s, true
	r.samples++

	r.log.Debug(r.printer.Sprintf("%d updates in %.3f s", e.Report.Cycles, e.Report.Seconds),
		zap.Uint64("cycle", e.Cycle),
		zap.Int("entities", e.Entities))

	if r.sink != nil && !r.sink.Enqueue(s) {
		r.log.Debug("frame sample dropped")
	}
}

// Last returns the most recent sample.
func (r *Recorder) Last() (persist.FrameStat, bool) { return r.last, r.hasLast }

func (r *Recorder) Samples() uint64 { return r.samples }
func (r *Recorder) Removed() uint64 { return r.removed }

// Summary formats the totals for the shutdown log line.
func (r *Recorder) Summary() string {
	return r.printer.Sprintf("%d samples, %d entities removed", r.samples, r.removed)
}

// Metrics exposes the in-memory sink, e.g. for a diagnostics dump.
func (r *Recorder) Metrics() *metrics.InmemSink { return r.inmem }
