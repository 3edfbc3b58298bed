package difficulty

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrNoCurveFunc is returned when a script does not define curve().
var ErrNoCurveFunc = errors.New("difficulty: script must define function curve(elapsed_ms, minutes)")

// Script is a curve defined in Lua:
//
//	function curve(elapsed_ms, minutes)
//	  return 900 - math.min(minutes, 1) * 550
//	end
//
// Only the base and math libraries are opened, without the loaders. Globals
// are restored before every call so curve() stays a pure function of time.
type Script struct {
	mu      sync.Mutex
	state   *lua.LState
	fn      lua.LValue
	globals []tableSnapshot
	last    float64
	err     error
}

// blockedGlobals are base library entries that reach outside the script.
var blockedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// tableSnapshot records the raw contents and metatable of a Lua table.
type tableSnapshot struct {
	t    *lua.LTable
	meta lua.LValue
	keys []lua.LValue
	vals []lua.LValue
}

func snapshotTable(L *lua.LState, t *lua.LTable) tableSnapshot {
	ts := tableSnapshot{t: t, meta: L.GetMetatable(t)}
	t.ForEach(func(k, v lua.LValue) {
		ts.keys = append(ts.keys, k)
		ts.vals = append(ts.vals, v)
	})
	return ts
}

func (ts tableSnapshot) restore(L *lua.LState) {
	var keys []lua.LValue
	ts.t.ForEach(func(k, _ lua.LValue) { keys = append(keys, k) })
	for _, k := range keys {
		ts.t.RawSet(k, lua.LNil)
	}
	for i, k := range ts.keys {
		ts.t.RawSet(k, ts.vals[i])
	}
	L.SetMetatable(ts.t, ts.meta)
}

// snapshotGlobals records _G and every table it holds one level deep.
func snapshotGlobals(L *lua.LState) []tableSnapshot {
	g := L.G.Global
	snaps := []tableSnapshot{snapshotTable(L, g)}
	g.ForEach(func(_, v lua.LValue) {
		if t, ok := v.(*lua.LTable); ok && t != g {
			snaps = append(snaps, snapshotTable(L, t))
		}
	})
	return snaps
}

// NewScript compiles src and checks that it defines curve.
func NewScript(src string) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("difficulty: cannot open lua %s: %w", lib.name, err)
		}
	}

	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("difficulty: cannot compile script: %w", err)
	}

	fn := L.GetGlobal("curve")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoCurveFunc
	}

	return &Script{state: L, fn: fn, globals: snapshotGlobals(L)}, nil
}

// At calls curve(elapsed_ms, minutes). A failing call or non-numeric result
// returns the last good value and records the error.
func (s *Script) At(elapsedMs float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return s.last
	}
	for _, ts := range s.globals {
		ts.restore(s.state)
	}
	if err := s.state.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(elapsedMs), lua.LNumber(elapsedMs/60000)); err != nil {
		s.err = err
		return s.last
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		s.err = fmt.Errorf("difficulty: curve returned %s, expected number", ret.Type())
		return s.last
	}

	s.last = float64(n)
	return s.last
}

// Err returns the most recent evaluation error, if any.
func (s *Script) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != nil {
		s.state.Close()
		s.state = nil
		s.globals = nil
	}
}
