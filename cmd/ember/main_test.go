package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberloop/ember/internal/config"
	"github.com/emberloop/ember/internal/engine"
)

const testScene = `
entities:
  - kind: one_shot
    tag: ping
  - kind: mesh
    tag: box
    shape: cube
  - kind: heartbeat
    tag: hb
`

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunStopsAfterFrameLimit(t *testing.T) {
	dir := t.TempDir()
	scene := writeTemp(t, dir, "scene.yaml", testScene)
	cfgPath := filepath.Join(dir, "ember.toml")

	require.NoError(t, run(context.Background(), cfgPath, runFlags{scene: scene, frames: 5}))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Window, cfg.Window)
}

func TestRunReturnsSurfaceFailure(t *testing.T) {
	dir := t.TempDir()
	scene := writeTemp(t, dir, "scene.yaml", testScene)
	cfgPath := writeTemp(t, dir, "ember.toml", "[backend]\nfail_surface = true\n")

	err := run(context.Background(), cfgPath, runFlags{scene: scene, frames: 5})
	assert.ErrorIs(t, err, engine.ErrSurface)
}

func TestRunRejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	scene := writeTemp(t, dir, "scene.yaml", testScene)
	err := run(context.Background(), filepath.Join(dir, "ember.toml"), runFlags{scene: scene, frames: 1, profile: "gpu"})
	assert.Error(t, err)
}

func TestCheckSceneCommand(t *testing.T) {
	dir := t.TempDir()
	scene := writeTemp(t, dir, "scene.yaml", testScene)

	root := newRootCmd()
	root.SetArgs([]string{"check-scene", scene, "--scripts", dir})
	assert.NoError(t, root.Execute())

	bad := writeTemp(t, dir, "bad.yaml", "entities:\n  - kind: dragon\n    tag: x\n")
	root = newRootCmd()
	root.SetArgs([]string{"check-scene", bad})
	assert.Error(t, root.Execute())
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan []byte)
	go func() {
		raw, _ := io.ReadAll(r)
		done <- raw
	}()
	fn()
	require.NoError(t, w.Close())
	return string(<-done)
}

func TestCheckSceneListsEntities(t *testing.T) {
	dir := t.TempDir()
	scene := writeTemp(t, dir, "scene.yaml", testScene)

	out := captureStdout(t, func() {
		require.NoError(t, checkScene(scene, dir))
	})
	assert.Contains(t, out, "ping")
	assert.Contains(t, out, "box")
	assert.Contains(t, out, "hb")
	assert.Contains(t, out, "scene is valid")
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.log")
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)
	log.Debug("frame loop started")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"logger":"ember"`)
	assert.Contains(t, string(raw), "frame loop started")
}
