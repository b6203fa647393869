// Package app runs the frame loop: it reacts to platform events, advances the
// world once per poll cycle and draws it through the backend.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/emberloop/ember/internal/config"
	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/core/input"
	coresys "github.com/emberloop/ember/internal/core/system"
	"github.com/emberloop/ember/internal/core/timer"
	"github.com/emberloop/ember/internal/platform"
	"github.com/emberloop/ember/internal/render"
	"github.com/emberloop/ember/internal/system"
	"github.com/emberloop/ember/internal/world"
)

// App is the frame orchestrator. All methods run on the event loop goroutine.
type App struct {
	log     *zap.Logger
	cfg     *config.Config
	store   config.Store
	backend Backend
	world   *world.World
	window  platform.Window
	bus     *event.Bus
	now     func() time.Time
	printer *message.Printer

	timer  *timer.Timer
	input  *input.Snapshot
	runner *coresys.Runner

	cycles     uint64
	frames     uint64
	exitReason string
	fatal      error
}

func New(cfg *config.Config, backend Backend, w *world.World, win platform.Window, log *zap.Logger, opts ...Option) (*App, error) {
	a := &App{
		log:     log,
		cfg:     cfg,
		backend: backend,
		world:   w,
		window:  win,
		now:     time.Now,
		printer: message.NewPrinter(language.English),
		input:   input.NewSnapshot(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.bus == nil {
		a.bus = event.NewBus()
	}

	chords, err := cfg.ExitChords()
	if err != nil {
		return nil, err
	}

	a.timer = timer.NewWithClock(a.now)
	a.runner = coresys.NewRunner()
	a.runner.Register(system.NewEventDispatchSystem(a.bus))
	a.runner.Register(system.NewUpdateSystem(w))
	a.runner.Register(system.NewCameraSystem(backend.Camera(), log))
	a.runner.Register(system.NewInputSystem(w))
	a.runner.Register(system.NewSecondSystem(w, a.bus, chords, a, log))
	a.runner.Register(system.NewCleanupSystem(w, log))

	win.SetTitle(cfg.Window.Title)
	return a, nil
}

func (a *App) Bus() *event.Bus         { return a.bus }
func (a *App) Input() *input.Snapshot  { return a.input }
func (a *App) Cycles() uint64          { return a.cycles }
func (a *App) Frames() uint64          { return a.frames }
func (a *App) ExitReason() string      { return a.exitReason }
func (a *App) Config() *config.Config  { return a.cfg }
func (a *App) World() *world.World     { return a.world }
func (a *App) Window() platform.Window { return a.window }

// Run drives the loop until exit. A fatal render error is returned.
func (a *App) Run(loop platform.EventLoop) error {
	a.log.Info("frame loop started",
		zap.String("backend", a.backend.Name()),
		zap.String("policy", a.cfg.Loop.Policy),
		zap.Int("systems", a.runner.Len()),
		zap.Int("entities", a.world.Len()))

	if err := loop.Run(a.HandleEvent); err != nil {
		return fmt.Errorf("event loop: %w", err)
	}
	// Deliver what the last cycle emitted, e.g. its SecondElapsed.
	a.bus.SwapBuffers()
	a.bus.DispatchAll()

	a.log.Info("frame loop stopped",
		zap.String("reason", a.exitReason),
		zap.Uint64("cycles", a.cycles),
		zap.Uint64("frames", a.frames))
	return a.fatal
}

// HandleEvent is the platform.Handler for the app's window.
func (a *App) HandleEvent(ev platform.Event, flow *platform.ControlFlow) {
	if a.exitReason != "" {
		flow.Mode = platform.Exit
		return
	}

	switch e := ev.(type) {
	case platform.WindowEvent:
		if !a.ownWindow(e.Window) {
			return
		}
		a.handleWindowEvent(e.Event, flow)
	case platform.MainEventsCleared:
		a.update(flow)
	case platform.RedrawRequested:
		if !a.ownWindow(e.Window) {
			return
		}
		a.render(flow)
	case platform.RedrawEventsCleared:
		a.window.RequestRedraw()
		a.schedule(flow)
	}
}

func (a *App) ownWindow(id platform.WindowID) bool {
	if id == a.window.ID() {
		return true
	}
	a.log.Warn("event for unknown window dropped",
		zap.Uint64("window", uint64(id)),
		zap.Uint64("expected", uint64(a.window.ID())))
	return false
}

func (a *App) handleWindowEvent(ev platform.WindowEventKind, flow *platform.ControlFlow) {
	switch e := ev.(type) {
	case platform.KeyboardInput:
		a.input.Apply(input.KeyEvent{Key: e.Key, State: e.State})
	case platform.Resized:
		a.resize(e.Width, e.Height)
	case platform.ScaleFactorChanged:
		a.resize(e.Width, e.Height)
	case platform.CloseRequested:
		a.exit("window closed", flow)
	}
}

func (a *App) resize(width, height uint32) {
	if width == 0 || height == 0 {
		a.log.Error("invalid surface size, resize ignored",
			zap.Uint32("width", width), zap.Uint32("height", height))
		return
	}
	if err := a.backend.Device().WaitIdle(); err != nil {
		a.log.Error("device wait failed, resize abandoned", zap.Error(err))
		return
	}

	a.cfg.ApplyResize(width, height)
	if a.store != nil {
		if err := a.store.SaveGeometry(width, height); err != nil {
			a.log.Warn("window geometry not persisted", zap.Error(err))
		}
	}
	if err := a.backend.Configure(width, height); err != nil {
		a.log.Error("surface reconfiguration failed", zap.Error(err))
		return
	}
	event.Emit(a.bus, event.SurfaceResized{Width: width, Height: height})
	a.log.Debug("surface resized", zap.Uint32("width", width), zap.Uint32("height", height))
}

func (a *App) update(flow *platform.ControlFlow) {
	report, second := a.timer.Tick()
	a.cycles++

	f := &entity.Frame{Delta: a.timer.Delta(), Cycle: a.cycles, Input: a.input}
	if second {
		f.Second = &report
	}
	a.runner.Tick(f)

	if reason, ok := f.ExitRequested(); ok {
		a.exit(reason, flow)
	}
}

func (a *App) render(flow *platform.ControlFlow) {
	tex, err := a.backend.Surface().CurrentTexture()
	if err != nil {
		a.fatal = fmt.Errorf("acquire surface texture: %w", err)
		a.log.Error("surface texture unavailable", zap.Error(err))
		a.exit("render failure", flow)
		return
	}

	dev := a.backend.Device()
	models := a.world.CollectModels(dev)

	var cameraGroup render.BindGroup
	if cam := a.backend.Camera(); cam != nil {
		cameraGroup = cam.BindGroup()
	}
	enc := dev.CreateCommandEncoder("Render Encoder")
	stats := render.RecordPass(enc, &render.PassInputs{
		Target:        tex.View(),
		Depth:         a.backend.DepthView(),
		ClearColor:    a.world.ClearColor(),
		Pipeline:      a.backend.Pipeline(),
		Camera:        cameraGroup,
		AmbientLight:  a.world.AmbientBindGroup(),
		PointLights:   a.world.PointLightBindGroup(),
		Instances:     a.backend.InstanceBuffer(),
		InstanceCount: a.backend.InstanceCount(),
	}, models)
	a.backend.Queue().Submit(enc.Finish())
	tex.Present()
	a.frames++

	if stats.Skipped > 0 {
		a.log.Debug("meshes without material skipped", zap.Int("count", stats.Skipped))
	}
}

func (a *App) schedule(flow *platform.ControlFlow) {
	if limit := a.cfg.Loop.MaxFrames; limit > 0 && a.cycles >= limit {
		a.exit("frame limit reached", flow)
		return
	}
	if a.cfg.Loop.Policy == config.PolicyWait {
		flow.Mode = platform.WaitUntil
		flow.Deadline = a.timer.LastTick().Add(a.cfg.Loop.WaitInterval)
		return
	}
	flow.Mode = platform.Poll
}

func (a *App) exit(reason string, flow *platform.ControlFlow) {
	if a.exitReason == "" {
		a.exitReason = reason
	}
	flow.Mode = platform.Exit
}

// ReportSecond refreshes the window title with the last second's update rate.
func (a *App) ReportSecond(r timer.Report, _ int) {
	a.window.SetTitle(a.Title(r))
}

func (a *App) Title(r timer.Report) string {
	return a.printer.Sprintf("%s @ %s - UPS: %d/s (Δ %.3f s)",
		a.cfg.Window.Title, a.backend.Name(), r.Cycles, r.Seconds)
}
