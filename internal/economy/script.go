package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ScriptFunc is the Lua global a curve script must define:
//
//	function xp(level, base, factor) return base * level end
const ScriptFunc = "xp"

// ScriptTimeout bounds the whole evaluation of a curve script.
const ScriptTimeout = 2 * time.Second

// ErrScriptTimeout is returned when a curve script runs past its deadline.
var ErrScriptTimeout = errors.New("economy: curve script timed out")

// GenerateScriptCurve evaluates a Lua curve script for levels 1..99. The
// script is stopped when ctx is done or ScriptTimeout elapses.
func GenerateScriptCurve(ctx context.Context, source string, base, factor float64) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, ScriptTimeout)
	defer cancel()

	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer vm.Close()
	vm.SetContext(ctx)

	// Scripts only compute numbers.
	vm.SetGlobal("os", lua.LNil)
	vm.SetGlobal("io", lua.LNil)
	vm.SetGlobal("dofile", lua.LNil)
	vm.SetGlobal("loadfile", lua.LNil)

	if err := vm.DoString(source); err != nil {
		return nil, scriptErr(ctx, "load curve script", err)
	}

	fn := vm.GetGlobal(ScriptFunc)
	if fn == lua.LNil {
		return nil, fmt.Errorf("economy: curve script does not define %s(level, base, factor)", ScriptFunc)
	}

	curve := make([]int, 0, CurveLevels)
	for level := 1; level <= CurveLevels; level++ {
		err := vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(level), lua.LNumber(base), lua.LNumber(factor))
		if err != nil {
			return nil, scriptErr(ctx, fmt.Sprintf("curve script level %d", level), err)
		}
		ret := vm.Get(-1)
		vm.Pop(1)

		n, ok := ret.(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("economy: curve script level %d returned %s, expected number", level, ret.Type())
		}
		v := float64(n)
		if !isFinite(v) {
			return nil, fmt.Errorf("economy: curve script level %d returned a non-finite value", level)
		}
		curve = append(curve, clampXP(v))
	}
	return curve, nil
}

func scriptErr(ctx context.Context, what string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("economy: %s: %w", what, ErrScriptTimeout)
	}
	return fmt.Errorf("economy: %s: %w", what, err)
}
