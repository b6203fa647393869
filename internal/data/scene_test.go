package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/entities"
	"github.com/emberloop/ember/internal/render"
	"github.com/emberloop/ember/internal/render/headless"
	"github.com/emberloop/ember/internal/scripting"
	"github.com/emberloop/ember/internal/world"
)

const demoScene = `
clear_color: [0.1, 0.2, 0.3]
duplication: reject
ambient:
  color: [1, 0.9, 0.8]
  strength: 0.2
point_lights:
  - slot: 2
    color: [1, 0, 0]
    position: [0, 3, 0]
    strength: 1.5
entities:
  - kind: mesh
    tag: floor
    shape: plane
    size: 10
  - kind: one_shot
    tag: ping
  - kind: heartbeat
    tag: hb
    lifetime: 3
  - kind: script
    script: spinner.lua
  - kind: one_shot
    tag: ping
`

func writeScene(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndApplyScene(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spinner.lua"),
		[]byte(`entity = { tag = "spinner", frequency = "never" }`), 0o644))

	s, err := LoadScene(writeScene(t, dir, demoScene))
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Name)
	assert.Len(t, s.Digest, 64)

	b := world.NewBuilder()
	ents, err := s.Apply(b, dir, zap.NewNop())
	require.NoError(t, err)
	defer CloseEntities(ents)
	require.Len(t, ents, 5)
	_, isScript := ents[3].(*scripting.Entity)
	assert.True(t, isScript)

	w, err := b.Build(headless.NewDevice(), zap.NewNop())
	require.NoError(t, err)
	// the second one-shot is rejected by the policy
	assert.Equal(t, 4, w.Len())
	assert.Equal(t, render.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}, w.ClearColor())
	assert.Equal(t, world.Reject, w.DuplicationBehaviour())
	assert.Equal(t, float32(0.2), w.AmbientLight().Strength)

	l, err := w.PointLight(2)
	require.NoError(t, err)
	assert.True(t, l.Enabled)
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, l.Position)
}

func TestDigestTracksContent(t *testing.T) {
	a, err := ParseScene([]byte("name: a\n"))
	require.NoError(t, err)
	b, err := ParseScene([]byte("name: b\n"))
	require.NoError(t, err)
	again, err := ParseScene([]byte("name: a\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest, b.Digest)
	assert.Equal(t, a.Digest, again.Digest)
}

func TestEmptySceneUsesDefaults(t *testing.T) {
	s, err := ParseScene(nil)
	require.NoError(t, err)
	b := world.NewBuilder()
	ents, err := s.Apply(b, "", zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, ents)
	w, err := b.Build(headless.NewDevice(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, render.Black, w.ClearColor())
	assert.Equal(t, world.WarnOnDuplication, w.DuplicationBehaviour())
}

func TestSceneValidation(t *testing.T) {
	tests := map[string]string{
		"clear color":   "clear_color: [1, 2]\n",
		"duplication":   "duplication: sometimes\n",
		"kind":          "entities:\n  - kind: dragon\n    tag: x\n",
		"shape":         "entities:\n  - kind: mesh\n    tag: x\n    shape: torus\n",
		"tag":           "entities:\n  - kind: one_shot\n",
		"script path":   "entities:\n  - kind: script\n",
		"unknown field": "colour: red\n",
		"mesh spin":     "entities:\n  - kind: mesh\n    tag: x\n    shape: cube\n    spin: 1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScene([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestApplyFailsOnMissingScript(t *testing.T) {
	s, err := ParseScene([]byte("entities:\n  - kind: script\n    script: nope.lua\n"))
	require.NoError(t, err)
	_, err = s.Apply(world.NewBuilder(), t.TempDir(), zap.NewNop())
	assert.Error(t, err)
}

func TestClearCycleEntry(t *testing.T) {
	s, err := ParseScene([]byte("entities:\n  - kind: clear_cycle\n    tag: backdrop\n    rate: 0.5\n"))
	require.NoError(t, err)
	ents, err := s.Apply(world.NewBuilder(), "", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, ents, 1)
	cc, ok := ents[0].(*entities.ClearCycle)
	require.True(t, ok)
	assert.Equal(t, "backdrop", cc.Configuration().Tag)

	_, err = ParseScene([]byte("entities:\n  - kind: clear_cycle\n"))
	assert.Error(t, err)
}
