package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/app"
	"github.com/emberloop/ember/internal/config"
	"github.com/emberloop/ember/internal/core/event"
	"github.com/emberloop/ember/internal/data"
	"github.com/emberloop/ember/internal/engine"
	"github.com/emberloop/ember/internal/persist"
	"github.com/emberloop/ember/internal/platform"
	"github.com/emberloop/ember/internal/telemetry"
	"github.com/emberloop/ember/internal/world"
)

type runFlags struct {
	scene   string
	frames  uint64
	profile string
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the frame loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfgPath, f)
		},
	}
	cmd.Flags().StringVar(&f.scene, "scene", "", "scene file, overrides scene.path")
	cmd.Flags().Uint64Var(&f.frames, "frames", 0, "stop after this many cycles, overrides loop.max_frames")
	cmd.Flags().StringVar(&f.profile, "profile", "", "write a cpu or mem profile to the working directory")
	return cmd
}

func startProfile(mode string) (interface{ Stop() }, error) {
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook), nil
	}
	return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", mode)
}

func run(parent context.Context, cfgPath string, f runFlags) error {
	// 1. Load config
	cfg, created, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.scene != "" {
		cfg.Scene.Path = f.scene
	}
	if f.frames > 0 {
		cfg.Loop.MaxFrames = f.frames
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if created {
		log.Info("default config written", zap.String("path", cfgPath))
	}

	prof, err := startProfile(f.profile)
	if err != nil {
		return err
	}
	if prof != nil {
		defer prof.Stop()
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Render backend
	provider := engine.NewHeadlessProvider()
	provider.FailSurface = cfg.Backend.FailSurface
	printBanner(cfg.Window.Title, provider.Name())

	printSection("backend")
	eng, err := engine.New(provider, engine.Options{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		InstanceCount: cfg.Backend.InstanceCount,
	}, log)
	if err != nil {
		return fmt.Errorf("render backend: %w", err)
	}
	printStat("surface", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height))
	printStat("instances", strconv.FormatUint(uint64(eng.InstanceCount()), 10))

	// 4. Scene and world
	printSection("scene")
	scene := &data.Scene{Name: "empty"}
	if cfg.Scene.Path != "" {
		scene, err = data.LoadScene(cfg.Scene.Path)
		if err != nil {
			return err
		}
	}
	bus := event.NewBus()
	b := world.NewBuilder().WithEventBus(bus)
	ents, err := scene.Apply(b, cfg.Scene.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scene %s: %w", scene.Name, err)
	}
	defer data.CloseEntities(ents)
	w, err := b.Build(eng.Device(), log)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	printStat(scene.Name, strconv.Itoa(w.Len()))

	// 5. Telemetry
	var rec *telemetry.Recorder
	if cfg.Telemetry.Enabled {
		printSection("telemetry")
		var sink telemetry.Sink
		if cfg.Telemetry.DSN != "" {
			dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			db, err := persist.NewDB(dbCtx, cfg.Telemetry, log)
			if err != nil {
				cancel()
				return fmt.Errorf("telemetry database: %w", err)
			}
			defer db.Close()
			version, err := persist.RunMigrations(dbCtx, db.Pool)
			cancel()
			if err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			printOK(fmt.Sprintf("PostgreSQL schema v%d", version))

			writer := telemetry.NewWriter(persist.NewFrameStatsRepo(db),
				cfg.Telemetry.QueueSize, cfg.Telemetry.BatchSize, 5*time.Second, log)
			writer.Start(ctx)
			defer func() {
				writer.Close()
				log.Info("telemetry writer stopped",
					zap.Uint64("written", writer.Written()),
					zap.Uint64("dropped", writer.Dropped()),
					zap.Uint64("failed", writer.Failed()))
			}()
			sink = writer
		}
		rec, err = telemetry.NewRecorder(telemetry.RecorderOptions{
			Backend:     eng.Name(),
			SceneDigest: scene.Digest,
			Sink:        sink,
		}, log)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		rec.Attach(bus)
		printOK("metrics recorder attached")
	}

	// 6. Frame loop
	win := platform.NewHeadlessWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	loop := platform.NewHeadlessLoop(win, 0).StopOn(ctx)
	a, err := app.New(cfg, eng, w, win, log,
		app.WithStore(config.NewFileStore(cfgPath)),
		app.WithEventBus(bus))
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	fmt.Println()
	printReady(fmt.Sprintf("frame loop running (%s policy)", cfg.Loop.Policy))
	fmt.Println()

	runErr := a.Run(loop)
	if rec != nil {
		log.Info("telemetry summary",
			zap.Uint64("samples", rec.Samples()),
			zap.String("summary", rec.Summary()))
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "  last title: %s\n", win.Title())
		return runErr
	}
	return nil
}
