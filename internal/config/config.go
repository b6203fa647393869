package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/emberloop/ember/internal/core/input"
)

type Config struct {
	Window    WindowConfig    `toml:"window"`
	Monitor   *MonitorConfig  `toml:"monitor,omitempty"`
	Loop      LoopConfig      `toml:"loop"`
	Scene     SceneConfig     `toml:"scene"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Backend   BackendConfig   `toml:"backend"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

// MonitorConfig is present only when the window runs fullscreen on a monitor.
type MonitorConfig struct {
	Fullscreen bool   `toml:"fullscreen"`
	Width      uint32 `toml:"width"`
	Height     uint32 `toml:"height"`
}

type LoopConfig struct {
	Policy       string        `toml:"policy"`        // "poll" or "wait"
	WaitInterval time.Duration `toml:"wait_interval"` // frame interval under "wait"
	MaxFrames    uint64        `toml:"max_frames"`    // 0 = until exit
	ExitChords   [][]string    `toml:"exit_chords"`
}

type SceneConfig struct {
	Path       string `toml:"path"`
	ScriptsDir string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // optional; written in addition to stderr
}

type TelemetryConfig struct {
	Enabled   bool   `toml:"enabled"`
	DSN       string `toml:"dsn"` // empty disables the PostgreSQL writer
	MaxConns  int    `toml:"max_conns"`
	QueueSize int    `toml:"queue_size"`
	BatchSize int    `toml:"batch_size"`
}

type BackendConfig struct {
	InstanceCount uint32 `toml:"instance_count"`
	FailSurface   bool   `toml:"fail_surface"` // diagnostics: every texture acquisition fails
}

const (
	PolicyPoll = "poll"
	PolicyWait = "wait"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrCreate loads path, writing the defaults there first when it does not exist.
func LoadOrCreate(path string) (cfg *Config, created bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := NewFileStore(path).Save(defaults()); err != nil {
			return nil, false, err
		}
		created = true
	}
	cfg, err = Load(path)
	return cfg, created, err
}

func Default() *Config { return defaults() }

func (c *Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size %dx%d must be non-zero", c.Window.Width, c.Window.Height)
	}
	switch c.Loop.Policy {
	case PolicyPoll:
	case PolicyWait:
		if c.Loop.WaitInterval <= 0 {
			return fmt.Errorf("loop.wait_interval must be positive under the wait policy")
		}
	default:
		return fmt.Errorf("unknown loop policy %q", c.Loop.Policy)
	}
	if _, err := c.ExitChords(); err != nil {
		return err
	}
	return nil
}

// ExitChords parses loop.exit_chords into key chords. The result is never nil,
// so an explicitly empty list means no exit chord at all.
func (c *Config) ExitChords() ([][]input.Key, error) {
	out := make([][]input.Key, 0, len(c.Loop.ExitChords))
	for _, names := range c.Loop.ExitChords {
		chord, err := input.ParseChord(names)
		if err != nil {
			return nil, fmt.Errorf("loop.exit_chords: %w", err)
		}
		out = append(out, chord)
	}
	return out, nil
}

// ApplyResize records a new window size, keeping the monitor geometry in step.
func (c *Config) ApplyResize(width, height uint32) {
	c.Window.Width, c.Window.Height = width, height
	if c.Monitor != nil {
		c.Monitor.Width, c.Monitor.Height = width, height
	}
}

// Store persists the window geometry after a successful resize. Nothing else
// is written back, so runtime overrides (command-line flags) never reach disk.
type Store interface {
	SaveGeometry(width, height uint32) error
}

type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// SaveGeometry re-reads the file, applies the new window size and writes it
// back. A missing file is recreated from the defaults.
func (s *FileStore) SaveGeometry(width, height uint32) error {
	cfg, err := Load(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = defaults(), nil
	}
	if err != nil {
		return err
	}
	cfg.ApplyResize(width, height)
	return s.Save(cfg)
}

// Save writes cfg atomically next to the target and renames it into place.
func (s *FileStore) Save(cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir %s: %w", dir, err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace config %s: %w", s.Path, err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "ember",
			Width:  1280,
			Height: 720,
		},
		Loop: LoopConfig{
			Policy:       PolicyPoll,
			WaitInterval: 16 * time.Millisecond,
			ExitChords:   [][]string{{"escape"}, {"lalt", "f4"}},
		},
		Scene: SceneConfig{
			Path:       "scenes/default.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled:   true,
			MaxConns:  2,
			QueueSize: 64,
			BatchSize: 16,
		},
		Backend: BackendConfig{
			InstanceCount: 1,
		},
	}
}
