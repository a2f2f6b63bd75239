package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/yeoblyv/spider/pkg/db"
)

// dbModule exposes the database accessor. Failures return nil plus an
// error message instead of raising, so scripts can branch on them.
func (rt *runtime) dbModule() *lua.LTable {
	var ls = rt.ls
	var conn = rt.engine.db

	var mod = ls.NewTable()
	ls.SetFuncs(mod, map[string]lua.LGFunction{
		"query": func(ls *lua.LState) int {
			rows, err := conn.Query(rt.ctx, ls.CheckString(1), rt.args(ls, 2)...)
			if err != nil {
				return pushError(ls, err)
			}
			var tb = ls.CreateTable(len(rows), 0)
			for i, row := range rows {
				tb.RawSetInt(i+1, toLua(ls, row))
			}
			ls.Push(tb)
			return 1
		},
		"exec": func(ls *lua.LState) int {
			res, err := conn.Exec(rt.ctx, ls.CheckString(1), rt.args(ls, 2)...)
			if err != nil {
				return pushError(ls, err)
			}
			return pushResult(ls, res)
		},
		"insert": func(ls *lua.LState) int {
			res, err := conn.Insert(rt.ctx, ls.CheckString(1), rowArg(ls, 2))
			if err != nil {
				return pushError(ls, err)
			}
			return pushResult(ls, res)
		},
		"update": func(ls *lua.LState) int {
			res, err := conn.Update(rt.ctx, ls.CheckString(1), rowArg(ls, 2), ls.CheckString(3), rt.args(ls, 4)...)
			if err != nil {
				return pushError(ls, err)
			}
			return pushResult(ls, res)
		},
		"delete": func(ls *lua.LState) int {
			res, err := conn.Delete(rt.ctx, ls.CheckString(1), ls.CheckString(2), rt.args(ls, 3)...)
			if err != nil {
				return pushError(ls, err)
			}
			return pushResult(ls, res)
		},
	})
	mod.RawSetString("driver", lua.LString(conn.Dialect().Driver()))
	return mod
}

// args converts stack values from index from to the top into query args.
func (rt *runtime) args(ls *lua.LState, from int) []any {
	var top = ls.GetTop()
	if top < from {
		return nil
	}
	var out = make([]any, 0, top-from+1)
	for i := from; i <= top; i++ {
		out = append(out, toGo(ls.Get(i)))
	}
	return out
}

func rowArg(ls *lua.LState, n int) map[string]any {
	var tb = ls.CheckTable(n)
	var row = make(map[string]any)
	tb.ForEach(func(k, v lua.LValue) {
		if key, ok := k.(lua.LString); ok {
			row[string(key)] = toGo(v)
		}
	})
	return row
}

// pushResult returns rows affected and the last insert id.
func pushResult(ls *lua.LState, res db.Result) int {
	ls.Push(lua.LNumber(res.RowsAffected))
	ls.Push(lua.LNumber(res.LastInsertID))
	return 2
}

func pushError(ls *lua.LState, err error) int {
	ls.Push(lua.LNil)
	ls.Push(lua.LString(err.Error()))
	return 2
}
