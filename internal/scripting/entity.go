package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/emberloop/ember/internal/core/entity"
	"github.com/emberloop/ember/internal/core/input"
)

// Entity is a world entity whose behaviour lives in a Lua script.
// Script errors are logged and treated as "no actions".
type Entity struct {
	name string
	vm   *lua.LState
	log  *zap.Logger
	cfg  entity.Configuration

	update   *lua.LFunction
	onSecond *lua.LFunction
	onInput  *lua.LFunction

	ctx   *lua.LTable
	frame *entity.Frame

	Errors int
}

func (e *Entity) Configuration() entity.Configuration { return e.cfg }

func (e *Entity) Update(f *entity.Frame) []entity.Action {
	return e.call("update", e.update, f)
}

func (e *Entity) OnSecondUpdate(f *entity.Frame) []entity.Action {
	return e.call("on_second", e.onSecond, f)
}

func (e *Entity) HandleInput(f *entity.Frame) []entity.Action {
	return e.call("on_input", e.onInput, f)
}

// Global reads a script global, for diagnostics and tests.
func (e *Entity) Global(name string) lua.LValue { return e.vm.GetGlobal(name) }

func (e *Entity) Close() { e.vm.Close() }

// newContext builds the ctx table passed to every handler. Its fields are
// refreshed before each call; pressed reads the frame being dispatched.
func (e *Entity) newContext() *lua.LTable {
	ctx := e.vm.NewTable()
	ctx.RawSetString("pressed", e.vm.NewFunction(func(L *lua.LState) int {
		k, err := input.ParseKey(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		L.Push(lua.LBool(e.frame != nil && e.frame.Pressed(k)))
		return 1
	}))
	ctx.RawSetString("log", e.vm.NewFunction(func(L *lua.LState) int {
		e.log.Info(L.CheckString(1))
		return 0
	}))
	return ctx
}

func (e *Entity) call(name string, fn *lua.LFunction, f *entity.Frame) []entity.Action {
	if fn == nil {
		return nil
	}
	e.frame = f
	defer func() { e.frame = nil }()

	e.ctx.RawSetString("delta", lua.LNumber(f.Delta))
	e.ctx.RawSetString("cycle", lua.LNumber(f.Cycle))
	if f.Second != nil {
		e.ctx.RawSetString("ups", lua.LNumber(f.Second.Cycles))
	} else {
		e.ctx.RawSetString("ups", lua.LNil)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, e.ctx); err != nil {
		e.Errors++
		e.log.Error("lua entity handler error", zap.String("handler", name), zap.Error(err))
		return nil
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return e.actions(name, result)
}

// actions converts a handler's return value: nil, or an array of
// {type = "remove", tags = {...}} tables.
func (e *Entity) actions(handler string, v lua.LValue) []entity.Action {
	list, ok := v.(*lua.LTable)
	if !ok {
		if v != lua.LNil {
			e.log.Warn("lua entity handler returned non-table", zap.String("handler", handler))
		}
		return nil
	}

	var out []entity.Action
	list.ForEach(func(_, item lua.LValue) {
		t, ok := item.(*lua.LTable)
		if !ok {
			return
		}
		switch kind := lStr(t, "type"); kind {
		case "remove":
			var tags []string
			if tt, ok := t.RawGetString("tags").(*lua.LTable); ok {
				tt.ForEach(func(_, tag lua.LValue) {
					tags = append(tags, lua.LVAsString(tag))
				})
			}
			if tag := lStr(t, "tag"); tag != "" {
				tags = append(tags, tag)
			}
			if len(tags) > 0 {
				out = append(out, entity.Remove(tags...))
			}
		default:
			e.log.Warn("unknown lua entity action", zap.String("handler", handler), zap.String("type", kind))
		}
	})
	return out
}
