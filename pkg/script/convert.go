package script

import (
	"fmt"
	"math"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// maxDepth stops conversion of self-referencing tables.
const maxDepth = 32

// toGo converts a Lua value to plain Go data. Tables with only positive
// integer keys 1..n become []any, other tables map[string]any. Functions
// and userdata are kept as their string form.
func toGo(v lua.LValue) any {
	return toGoDepth(v, 0)
}

func toGoDepth(v lua.LValue, depth int) any {
	switch val := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(val)
	case lua.LString:
		return string(val)
	case lua.LNumber:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case *lua.LTable:
		if depth >= maxDepth {
			return nil
		}
		if n := val.Len(); n > 0 && isSequence(val, n) {
			out := make([]any, n)
			for i := range n {
				out[i] = toGoDepth(val.RawGetInt(i+1), depth+1)
			}
			return out
		}
		out := make(map[string]any)
		val.ForEach(func(k, item lua.LValue) {
			out[k.String()] = toGoDepth(item, depth+1)
		})
		return out
	default:
		return v.String()
	}
}

func isSequence(tb *lua.LTable, n int) bool {
	count := 0
	sequence := true
	tb.ForEach(func(k, _ lua.LValue) {
		count++
		num, ok := k.(lua.LNumber)
		if !ok || float64(num) != math.Trunc(float64(num)) || int(num) < 1 || int(num) > n {
			sequence = false
		}
	})
	return sequence && count == n
}

// toLua converts Go data to a Lua value.
func toLua(ls *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case []byte:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int8:
		return lua.LNumber(val)
	case int16:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint:
		return lua.LNumber(val)
	case uint8:
		return lua.LNumber(val)
	case uint16:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case time.Time:
		return lua.LString(val.Format(time.RFC3339Nano))
	case []any:
		tb := ls.CreateTable(len(val), 0)
		for i, item := range val {
			tb.RawSetInt(i+1, toLua(ls, item))
		}
		return tb
	case []string:
		tb := ls.CreateTable(len(val), 0)
		for i, item := range val {
			tb.RawSetInt(i+1, lua.LString(item))
		}
		return tb
	case map[string]any:
		tb := ls.CreateTable(0, len(val))
		for k, item := range val {
			tb.RawSetString(k, toLua(ls, item))
		}
		return tb
	case map[string]string:
		tb := ls.CreateTable(0, len(val))
		for k, item := range val {
			tb.RawSetString(k, lua.LString(item))
		}
		return tb
	case fmt.Stringer:
		return lua.LString(val.String())
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
