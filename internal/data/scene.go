package data

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/entities"
	"github.com/emberloop/ember/internal/render"
	"github.com/emberloop/ember/internal/scripting"
	"github.com/emberloop/ember/internal/world"
)

// Scene describes the initial world: clear color, lights and entities.
type Scene struct {
	Name        string            `yaml:"name"`
	ClearColor  []float64         `yaml:"clear_color"` // rgba, alpha optional
	Duplication string            `yaml:"duplication"` // allow, warn, reject
	Ambient     *AmbientEntry     `yaml:"ambient"`
	PointLights []PointLightEntry `yaml:"point_lights"`
	Entities    []EntityEntry     `yaml:"entities"`

	// Digest is the hex blake2b-256 of the raw file, recorded with telemetry
	// so samples can be matched to the scene that produced them.
	Digest string `yaml:"-"`
}

type AmbientEntry struct {
	Color    [3]float32 `yaml:"color"`
	Strength float32    `yaml:"strength"`
}

type PointLightEntry struct {
	Slot     int        `yaml:"slot"`
	Color    [3]float32 `yaml:"color"`
	Position [3]float32 `yaml:"position"`
	Strength float32    `yaml:"strength"`
}

// EntityEntry is one entity. Kind selects which of the remaining fields apply.
type EntityEntry struct {
	Kind     string   `yaml:"kind"` // one_shot, mesh, heartbeat, clear_cycle, script
	Tag      string   `yaml:"tag"`
	Shape    string   `yaml:"shape"` // mesh: cube or plane
	Size     float32  `yaml:"size"`
	Color    [4]uint8 `yaml:"color"`
	Lifetime int      `yaml:"lifetime"` // heartbeat
	Rate     float64  `yaml:"rate"`     // clear_cycle: channel change per second
	Script   string   `yaml:"script"`   // script: path relative to the scripts dir
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

func ParseScene(raw []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	sum := blake2b.Sum256(raw)
	s.Digest = hex.EncodeToString(sum[:])
	return &s, nil
}

func (s *Scene) validate() error {
	if n := len(s.ClearColor); n != 0 && n != 3 && n != 4 {
		return fmt.Errorf("clear_color needs 3 or 4 components, got %d", n)
	}
	if _, err := world.ParseDuplicationBehaviour(s.Duplication); err != nil {
		return err
	}
	for i, e := range s.Entities {
		switch e.Kind {
		case "one_shot", "heartbeat", "clear_cycle":
		case "mesh":
			if _, ok := shapes[e.Shape]; !ok {
				return fmt.Errorf("entities[%d]: unknown shape %q", i, e.Shape)
			}
		case "script":
			if e.Script == "" {
				return fmt.Errorf("entities[%d]: script path missing", i)
			}
			continue
		default:
			return fmt.Errorf("entities[%d]: unknown kind %q", i, e.Kind)
		}
		if e.Tag == "" {
			return fmt.Errorf("entities[%d]: tag missing", i)
		}
	}
	return nil
}

var shapes = map[string]func(float32) entities.Geometry{
	"cube":  entities.Cube,
	"plane": entities.Plane,
}

// Apply configures b from the scene and returns the entities it created, in
// scene order. Scripted entities own a Lua VM; release them with CloseEntities.
func (s *Scene) Apply(b *world.Builder, scriptsDir string, log *zap.Logger) ([]entity.Entity, error) {
	if len(s.ClearColor) > 0 {
		c := render.Color{R: s.ClearColor[0], G: s.ClearColor[1], B: s.ClearColor[2], A: 1}
		if len(s.ClearColor) == 4 {
			c.A = s.ClearColor[3]
		}
		b.WithClearColor(c)
	}
	dup, err := world.ParseDuplicationBehaviour(s.Duplication)
	if err != nil {
		return nil, err
	}
	b.WithDuplicationBehaviour(dup)
	if s.Ambient != nil {
		b.WithAmbientLight(mgl32.Vec3(s.Ambient.Color), s.Ambient.Strength)
	}
	for _, l := range s.PointLights {
		b.WithPointLight(l.Slot, mgl32.Vec3(l.Color), mgl32.Vec3(l.Position), l.Strength)
	}

	out := make([]entity.Entity, 0, len(s.Entities))
	for i, e := range s.Entities {
		ent, err := e.build(scriptsDir, log)
		if err != nil {
			CloseEntities(out)
			return nil, fmt.Errorf("entities[%d]: %w", i, err)
		}
		out = append(out, ent)
	}
	b.WithEntities(out...)
	return out, nil
}

func (e EntityEntry) build(scriptsDir string, log *zap.Logger) (entity.Entity, error) {
	switch e.Kind {
	case "one_shot":
		return entities.NewOneShot(e.Tag), nil
	case "heartbeat":
		return entities.NewHeartbeat(e.Tag, e.Lifetime, log), nil
	case "clear_cycle":
		return entities.NewClearCycle(e.Tag, e.Rate), nil
	case "mesh":
		size := e.Size
		if size == 0 {
			size = 1
		}
		color := e.Color
		if color == ([4]uint8{}) {
			color = [4]uint8{255, 255, 255, 255}
		}
		return entities.NewMesh(e.Tag, shapes[e.Shape](size), color), nil
	case "script":
		path := e.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(scriptsDir, path)
		}
		se, err := scripting.LoadFile(path, log)
		if err != nil {
			return nil, err
		}
		return se, nil
	}
	return nil, fmt.Errorf("unknown kind %q", e.Kind)
}

// CloseEntities releases entities holding external resources.
func CloseEntities(es []entity.Entity) {
	for _, e := range es {
		if c, ok := e.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
