package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/core/input"
	coresys "github.com/emberloop/ember/internal/core/system"
	"github.com/emberloop/ember/internal/core/timer"
	"github.com/emberloop/ember/internal/render"
	"github.com/emberloop/ember/internal/render/headless"
	"github.com/emberloop/ember/internal/world"
)

type traced struct {
	cfg      entity.Configuration
	trace    *[]string
	updates  int
	seconds  int
	onUpdate func() []entity.Action
}

func (e *traced) Configuration() entity.Configuration { return e.cfg }

func (e *traced) Update(*entity.Frame) []entity.Action {
	e.updates++
	*e.trace = append(*e.trace, e.cfg.Tag+".update")
	if e.onUpdate != nil {
		return e.onUpdate()
	}
	return nil
}

func (e *traced) OnSecondUpdate(*entity.Frame) []entity.Action {
	e.seconds++
	*e.trace = append(*e.trace, e.cfg.Tag+".second")
	return nil
}

func (e *traced) HandleInput(*entity.Frame) []entity.Action {
	*e.trace = append(*e.trace, e.cfg.Tag+".input")
	return nil
}

type tracedCamera struct {
	traced
	wantsInput bool
}

func (c *tracedCamera) Configuration() entity.Configuration {
	return entity.Configuration{Tag: "camera", Frequency: entity.EveryCycle, WantsInput: c.wantsInput}
}

func (c *tracedCamera) BindGroup() render.BindGroup { return nil }

type reporter struct{ reports []timer.Report }

func (r *reporter) ReportSecond(rep timer.Report, _ int) { r.reports = append(r.reports, rep) }

type harness struct {
	world  *world.World
	runner *coresys.Runner
	bus    *event.Bus
	rep    *reporter
	input  *input.Snapshot
	cycle  uint64
}

func newHarness(t *testing.T, cam entity.Camera) *harness {
	t.Helper()
	bus := event.NewBus()
	w, err := world.NewBuilder().WithEventBus(bus).Build(headless.NewDevice(), zap.NewNop())
	require.NoError(t, err)
	h := &harness{world: w, runner: coresys.NewRunner(), bus: bus, rep: &reporter{}, input: input.NewSnapshot()}
	log := zap.NewNop()
	h.runner.Register(NewCleanupSystem(w, log))
	h.runner.Register(NewSecondSystem(w, bus, nil, h.rep, log))
	h.runner.Register(NewInputSystem(w))
	h.runner.Register(NewCameraSystem(cam, log))
	h.runner.Register(NewUpdateSystem(w))
	h.runner.Register(NewEventDispatchSystem(bus))
	return h
}

func (h *harness) tick(second bool) *entity.Frame {
	h.cycle++
	f := &entity.Frame{Delta: 0.016, Cycle: h.cycle, Input: h.input}
	if second {
		f.Second = &timer.Report{Seconds: 1.0, Cycles: 60}
	}
	h.runner.Tick(f)
	return f
}

func TestCyclePhaseOrder(t *testing.T) {
	var trace []string
	cam := &tracedCamera{traced: traced{cfg: entity.Configuration{Tag: "camera"}, trace: &trace}, wantsInput: true}
	h := newHarness(t, cam)
	_, err := h.world.AddEntity(&traced{cfg: entity.Configuration{Tag: "a", Frequency: entity.EveryCycle, WantsInput: true}, trace: &trace})
	require.NoError(t, err)
	_, err = h.world.AddEntity(&traced{cfg: entity.Configuration{Tag: "s", Frequency: entity.OnSecond}, trace: &trace})
	require.NoError(t, err)

	h.tick(true)
	assert.Equal(t, []string{"a.update", "camera.update", "camera.input", "a.input", "s.second"}, trace)
}

func TestCameraInputOnlyWhenRequested(t *testing.T) {
	var trace []string
	cam := &tracedCamera{traced: traced{cfg: entity.Configuration{Tag: "camera"}, trace: &trace}}
	h := newHarness(t, cam)
	h.tick(false)
	assert.Equal(t, []string{"camera.update"}, trace)
}

func TestFrequenciesOverManyCycles(t *testing.T) {
	var trace []string
	h := newHarness(t, nil)
	var cycleEntities []*traced
	for _, tag := range []string{"c1", "c2", "c3"} {
		e := &traced{cfg: entity.Configuration{Tag: tag, Frequency: entity.EveryCycle}, trace: &trace}
		cycleEntities = append(cycleEntities, e)
		_, err := h.world.AddEntity(e)
		require.NoError(t, err)
	}
	sec := &traced{cfg: entity.Configuration{Tag: "sec", Frequency: entity.OnSecond}, trace: &trace}
	_, err := h.world.AddEntity(sec)
	require.NoError(t, err)

	for i := 1; i <= 120; i++ {
		h.tick(i%60 == 0)
	}
	for _, e := range cycleEntities {
		assert.Equal(t, 120, e.updates)
		assert.Zero(t, e.seconds)
	}
	assert.Equal(t, 2, sec.seconds)
	assert.Zero(t, sec.updates)
	assert.Len(t, h.rep.reports, 2)
}

func TestOneShotRemovesItselfAfterOneFrame(t *testing.T) {
	var trace []string
	h := newHarness(t, nil)
	ping := &traced{cfg: entity.Configuration{Tag: "ping", Frequency: entity.EveryCycle}, trace: &trace}
	ping.onUpdate = func() []entity.Action { return []entity.Action{entity.Remove("ping")} }
	other := &traced{cfg: entity.Configuration{Tag: "other", Frequency: entity.EveryCycle}, trace: &trace}
	for _, e := range []*traced{ping, other} {
		_, err := h.world.AddEntity(e)
		require.NoError(t, err)
	}

	h.tick(false)
	assert.Empty(t, h.world.FindByTag("ping"))
	assert.Equal(t, 1, ping.updates)
	assert.Equal(t, 1, other.updates)

	h.tick(false)
	assert.Equal(t, 1, ping.updates)
	assert.Equal(t, 2, other.updates)
}

func TestExitChordOnlyCheckedOnSecond(t *testing.T) {
	h := newHarness(t, nil)
	h.input.Apply(input.KeyEvent{Key: input.KeyEscape, State: input.Pressed})

	f := h.tick(false)
	_, exit := f.ExitRequested()
	assert.False(t, exit)

	f = h.tick(true)
	_, exit = f.ExitRequested()
	assert.True(t, exit)
}

func TestSecondElapsedDeliveredNextCycle(t *testing.T) {
	h := newHarness(t, nil)
	var got []event.SecondElapsed
	event.Subscribe(h.bus, func(e event.SecondElapsed) { got = append(got, e) })

	h.tick(true)
	assert.Empty(t, got)
	h.tick(false)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(60), got[0].Report.Cycles)
	assert.Equal(t, uint64(1), got[0].Cycle)
}

func TestEmptyExitChordListNeverExits(t *testing.T) {
	w, err := world.NewBuilder().Build(headless.NewDevice(), zap.NewNop())
	require.NoError(t, err)
	snap := input.NewSnapshot()
	snap.Apply(input.KeyEvent{Key: input.KeyEscape, State: input.Pressed})

	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSecondSystem(w, event.NewBus(), [][]input.Key{}, nil, zap.New(core))
	f := &entity.Frame{Cycle: 1, Input: snap, Second: &timer.Report{Seconds: 1, Cycles: 1}}
	s.Update(f)
	_, exit := f.ExitRequested()
	assert.False(t, exit)

	entries := logs.FilterMessage("cycles per second").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["held_keys"])
}
