// Package scripting runs world entities written in Lua. Each script gets its
// own VM; all calls happen on the frame loop goroutine.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// LoadFile compiles one script into a new entity.
func LoadFile(path string, log *zap.Logger) (*Entity, error) {
	return load(filepath.Base(path), log, func(vm *lua.LState) error { return vm.DoFile(path) })
}

// LoadString compiles src into a new entity. name identifies the script in logs.
func LoadString(name, src string, log *zap.Logger) (*Entity, error) {
	return load(name, log, func(vm *lua.LState) error { return vm.DoString(src) })
}

// LoadDir loads every .lua file in dir, sorted by name. A missing dir yields no entities.
func LoadDir(dir string, log *zap.Logger) ([]*Entity, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []*Entity
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		e, err := LoadFile(path, log)
		if err != nil {
			for _, loaded := range out {
				loaded.Close()
			}
			return nil, err
		}
		log.Debug("loaded lua entity", zap.String("file", path), zap.String("tag", e.cfg.Tag))
		out = append(out, e)
	}
	return out, nil
}

func load(name string, log *zap.Logger, run func(*lua.LState) error) (*Entity, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	if err := run(vm); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	e, err := bind(name, vm, log)
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return e, nil
}

// bind reads the global entity table and checks it declares a handler for
// every capability it asks for.
func bind(name string, vm *lua.LState, log *zap.Logger) (*Entity, error) {
	def, ok := vm.GetGlobal("entity").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("global table 'entity' not defined")
	}
	tag := lStr(def, "tag")
	if tag == "" {
		return nil, fmt.Errorf("entity.tag is empty")
	}
	freq, err := entity.ParseFrequency(lStr(def, "frequency"))
	if err != nil {
		return nil, err
	}

	e := &Entity{
		name: name,
		vm:   vm,
		log:  log.With(zap.String("script", name), zap.String("tag", tag)),
		cfg: entity.Configuration{
			Tag:        tag,
			Frequency:  freq,
			WantsInput: lua.LVAsBool(def.RawGetString("input")),
		},
		update:   lFunc(def, "update"),
		onSecond: lFunc(def, "on_second"),
		onInput:  lFunc(def, "on_input"),
	}
	switch {
	case freq == entity.EveryCycle && e.update == nil:
		return nil, fmt.Errorf("frequency %q requires entity.update", freq)
	case freq == entity.OnSecond && e.onSecond == nil:
		return nil, fmt.Errorf("frequency %q requires entity.on_second", freq)
	case e.cfg.WantsInput && e.onInput == nil:
		return nil, fmt.Errorf("input = true requires entity.on_input")
	}
	e.ctx = e.newContext()
	return e, nil
}

func lStr(t *lua.LTable, key string) string {
	return lua.LVAsString(t.RawGetString(key))
}

func lFunc(t *lua.LTable, key string) *lua.LFunction {
	fn, _ := t.RawGetString(key).(*lua.LFunction)
	return fn
}
