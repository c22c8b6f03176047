// Package luaprog hosts scripted program bodies for the scheduler
// (SPEC_FULL.md §4.15), following github.com/yuin/gopher-lua's own
// documented lua.LState-per-script usage; no teacher or pack file hosts
// an embedded Lua VM.
package luaprog

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/opencore/spos/internal/kernel"
)

// Compile parses src once and returns a kernel.ProgramFunc that, each
// time it is exec'd into a process slot, runs the script body on its
// own *lua.LState. The script's global `yield()` calls back into the
// process's Cooperator; `enter_critical()`/`leave_critical()` and
// `poke(addr, val)` are bound the same way, so a scenario-style "counts
// to N and loops" or "reads buttons and writes to the LCD" program can
// be authored once in Lua and exec'd into any number of slots.
func Compile(sched *kernel.Scheduler, src string) (kernel.ProgramFunc, error) {
	proto, err := compileToProto(src)
	if err != nil {
		return nil, err
	}

	return func(c *kernel.Cooperator) {
		l := lua.NewState()
		defer l.Close()

		bindGlobals(l, sched, c)

		fn := l.NewFunctionFromProto(proto)
		l.Push(fn)
		if err := l.PCall(0, lua.MultRet, nil); err != nil {
			panic(fmt.Sprintf("luaprog: script error: %v", err))
		}
	}, nil
}

func compileToProto(src string) (*lua.FunctionProto, error) {
	l := lua.NewState()
	defer l.Close()

	chunk, err := l.LoadString(src)
	if err != nil {
		return nil, err
	}
	lf, ok := chunk.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("luaprog: LoadString did not return a function")
	}
	return lf.Proto, nil
}

func bindGlobals(l *lua.LState, sched *kernel.Scheduler, c *kernel.Cooperator) {
	l.SetGlobal("yield", l.NewFunction(func(l *lua.LState) int {
		c.Yield()
		return 0
	}))
	l.SetGlobal("enter_critical", l.NewFunction(func(l *lua.LState) int {
		sched.EnterCritical()
		return 0
	}))
	l.SetGlobal("leave_critical", l.NewFunction(func(l *lua.LState) int {
		sched.LeaveCritical()
		return 0
	}))

	var memMu sync.Mutex
	mem := map[int64]int64{}
	l.SetGlobal("poke", l.NewFunction(func(l *lua.LState) int {
		addr := int64(l.CheckNumber(1))
		val := int64(l.CheckNumber(2))
		memMu.Lock()
		mem[addr] = val
		memMu.Unlock()
		return 0
	}))
	l.SetGlobal("peek", l.NewFunction(func(l *lua.LState) int {
		addr := int64(l.CheckNumber(1))
		memMu.Lock()
		v := mem[addr]
		memMu.Unlock()
		l.Push(lua.LNumber(v))
		return 1
	}))
}
