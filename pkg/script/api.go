package script

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"net/http"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/yeoblyv/spider/pkg/clientip"
	"github.com/yeoblyv/spider/pkg/i18n"
	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/reqctx"
	"github.com/yeoblyv/spider/pkg/requestid"
)

const (
	defaultRandomLength  = 32
	maxRandomLength      = 4096
	defaultRandomCharset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// runtime binds one Lua state to one request.
type runtime struct {
	ctx      context.Context
	engine   *Engine
	ls       *lua.LState
	w        Response
	r        *http.Request
	state    *reqctx.State
	loader   *i18n.Loader
	imported map[string]lua.LValue
}

func newRuntime(ctx context.Context, e *Engine, ls *lua.LState, w Response, r *http.Request) *runtime {
	loader, ok := i18n.LoaderFromContext(ctx)
	if !ok {
		loader = i18n.NewLoader(emptySource{})
	}
	return &runtime{
		ctx:      ctx,
		engine:   e,
		ls:       ls,
		w:        w,
		r:        r,
		state:    reqctx.FromContext(ctx),
		loader:   loader,
		imported: make(map[string]lua.LValue),
	}
}

// emptySource backs scripts run outside the i18n middleware.
type emptySource struct{}

func (emptySource) Load(_ context.Context, code string) (*i18n.Table, error) {
	return i18n.NewTable(code, nil), nil
}

func (rt *runtime) install() {
	var ls = rt.ls

	ls.SetGlobal("echo", ls.NewFunction(rt.echo))
	ls.SetGlobal("print", ls.NewFunction(rt.print))
	ls.SetGlobal("header", ls.NewFunction(rt.header))
	ls.SetGlobal("status", ls.NewFunction(rt.status))
	ls.SetGlobal("redirect", ls.NewFunction(rt.redirect))
	ls.SetGlobal("t", ls.NewFunction(rt.translate))
	ls.SetGlobal("lang", ls.NewFunction(rt.lang))
	ls.SetGlobal("set_translation", ls.NewFunction(rt.setTranslation))
	ls.SetGlobal("load_language", ls.NewFunction(rt.loadLanguage))
	ls.SetGlobal("import", ls.NewFunction(rt.importPlugin))
	ls.SetGlobal("request", rt.requestTable())

	var values = ls.NewTable()
	ls.SetFuncs(values, map[string]lua.LGFunction{
		"get": rt.valueGet,
		"set": rt.valueSet,
	})
	ls.SetGlobal("values", values)

	var spider = ls.NewTable()
	ls.SetFuncs(spider, map[string]lua.LGFunction{
		"version":       rt.version,
		"core_hash":     rt.coreHash,
		"load_time":     rt.loadTime,
		"root_link":     rt.rootLink,
		"random_string": rt.randomString,
	})
	ls.SetGlobal("spider", spider)

	if rt.engine.db != nil {
		ls.SetGlobal("db", rt.dbModule())
	}
}

func (rt *runtime) write(s string) {
	if _, err := rt.w.Write([]byte(s)); err != nil {
		rt.ls.RaiseError("write failed: %s", err.Error())
	}
}

func (rt *runtime) echo(ls *lua.LState) int {
	var b strings.Builder
	for i := 1; i <= ls.GetTop(); i++ {
		b.WriteString(ls.ToStringMeta(ls.Get(i)).String())
	}
	rt.write(b.String())
	return 0
}

func (rt *runtime) print(ls *lua.LState) int {
	var parts = make([]string, ls.GetTop())
	for i := range parts {
		parts[i] = ls.ToStringMeta(ls.Get(i + 1)).String()
	}
	rt.write(strings.Join(parts, "\t") + "\n")
	return 0
}

// headerConflict logs an attempt to change headers after output started.
func (rt *runtime) headerConflict(what string) {
	rt.engine.logger.WarnContext(rt.ctx, "headers already sent",
		slog.String("attempt", what),
		logger.Path(rt.r.URL.Path),
	)
}

func (rt *runtime) header(ls *lua.LState) int {
	var name = ls.CheckString(1)
	var value = ls.CheckString(2)

	if rt.w.HeadersSent() {
		rt.headerConflict("header " + name)
		ls.Push(lua.LFalse)
		return 1
	}
	rt.w.Header().Set(name, value)
	ls.Push(lua.LTrue)
	return 1
}

func (rt *runtime) status(ls *lua.LState) int {
	var code = ls.CheckInt(1)
	if code < 100 || code > 999 {
		ls.ArgError(1, "invalid status code")
		return 0
	}

	if !rt.w.SetStatus(code) {
		rt.headerConflict("status")
		ls.Push(lua.LFalse)
		return 1
	}
	ls.Push(lua.LTrue)
	return 1
}

func (rt *runtime) redirect(ls *lua.LState) int {
	var location = ls.CheckString(1)
	var code = ls.OptInt(2, http.StatusFound)

	if rt.w.HeadersSent() {
		rt.headerConflict("redirect")
		ls.Push(lua.LFalse)
		return 1
	}
	rt.w.Header().Set("Location", location)
	rt.w.SetStatus(code)
	ls.Push(lua.LTrue)
	return 1
}

// clientIP prefers the address stored by the clientip middleware.
func clientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r)
}

func (rt *runtime) requestTable() *lua.LTable {
	var ls = rt.ls
	var r = rt.r

	var tb = ls.NewTable()
	tb.RawSetString("method", lua.LString(r.Method))
	tb.RawSetString("path", lua.LString(r.URL.Path))
	tb.RawSetString("uri", lua.LString(r.URL.RequestURI()))
	tb.RawSetString("host", lua.LString(r.Host))
	tb.RawSetString("query_string", lua.LString(r.URL.RawQuery))
	tb.RawSetString("id", lua.LString(requestid.FromContext(r.Context())))
	tb.RawSetString("ip", lua.LString(clientIP(r)))

	var query = ls.NewTable()
	for key, vals := range r.URL.Query() {
		if len(vals) > 0 {
			query.RawSetString(key, lua.LString(vals[0]))
		}
	}
	tb.RawSetString("query", query)

	tb.RawSetString("param", ls.NewFunction(func(ls *lua.LState) int {
		var q = r.URL.Query()
		var key = ls.CheckString(1)
		if !q.Has(key) {
			ls.Push(lua.LNil)
			return 1
		}
		ls.Push(lua.LString(q.Get(key)))
		return 1
	}))
	tb.RawSetString("header", ls.NewFunction(func(ls *lua.LState) int {
		var v = r.Header.Get(ls.CheckString(1))
		if v == "" {
			ls.Push(lua.LNil)
			return 1
		}
		ls.Push(lua.LString(v))
		return 1
	}))
	return tb
}

func (rt *runtime) translate(ls *lua.LState) int {
	var key = ls.CheckString(1)

	if v, ok := rt.loader.Table().Get(key); ok {
		ls.Push(lua.LString(v))
		return 1
	}
	if ls.GetTop() >= 2 {
		ls.Push(ls.Get(2))
		return 1
	}
	ls.Push(lua.LNil)
	return 1
}

func (rt *runtime) lang(ls *lua.LState) int {
	var code = rt.loader.Lang()
	if code == "" {
		code = i18n.GetLocale(rt.ctx)
	}
	ls.Push(lua.LString(code))
	return 1
}

func (rt *runtime) setTranslation(ls *lua.LState) int {
	rt.loader.Table().Set(ls.CheckString(1), ls.CheckString(2))
	return 0
}

func (rt *runtime) loadLanguage(ls *lua.LState) int {
	var code = ls.CheckString(1)
	if _, err := rt.loader.Switch(rt.ctx, code); err != nil {
		ls.Push(lua.LFalse)
		ls.Push(lua.LString(err.Error()))
		return 2
	}
	ls.Push(lua.LTrue)
	return 1
}

func (rt *runtime) valueGet(ls *lua.LState) int {
	var v, ok = rt.state.Get(ls.CheckString(1))
	if !ok {
		ls.Push(lua.LNil)
		return 1
	}
	ls.Push(toLua(ls, v))
	return 1
}

func (rt *runtime) valueSet(ls *lua.LState) int {
	var key = ls.CheckString(1)
	var v = ls.Get(2)
	if v == lua.LNil {
		rt.state.Delete(key)
		return 0
	}
	rt.state.Set(key, toGo(v))
	return 0
}

func (rt *runtime) version(ls *lua.LState) int {
	ls.Push(lua.LString(rt.engine.version))
	return 1
}

func (rt *runtime) coreHash(ls *lua.LState) int {
	ls.Push(lua.LString(rt.engine.components.CoreHash(ls.OptInt(1, 0))))
	return 1
}

func (rt *runtime) loadTime(ls *lua.LState) int {
	ls.Push(lua.LNumber(rt.state.LoadTime()))
	return 1
}

func (rt *runtime) rootLink(ls *lua.LState) int {
	ls.Push(lua.LString(reqctx.RootLink(rt.r)))
	return 1
}

func (rt *runtime) randomString(ls *lua.LState) int {
	var n = ls.OptInt(1, defaultRandomLength)
	var charset = []rune(ls.OptString(2, defaultRandomCharset))
	if n < 0 || n > maxRandomLength {
		ls.ArgError(1, "length out of range")
		return 0
	}
	if len(charset) == 0 {
		ls.ArgError(2, "empty charset")
		return 0
	}

	var out = make([]rune, n)
	var limit = big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			ls.RaiseError("random source failed: %s", err.Error())
			return 0
		}
		out[i] = charset[idx.Int64()]
	}
	ls.Push(lua.LString(string(out)))
	return 1
}

// importPlugin runs a plugin file in the current state. Each plugin runs at
// most once per request; later imports return the first result.
func (rt *runtime) importPlugin(ls *lua.LState) int {
	var identifier = ls.CheckString(1)
	if rt.engine.plugins == nil {
		ls.RaiseError("plugins are not configured")
		return 0
	}

	path, err := rt.engine.plugins.Path(rt.ctx, identifier)
	if err != nil {
		ls.RaiseError("import %q: %s", identifier, err.Error())
		return 0
	}
	if v, ok := rt.imported[path]; ok {
		ls.Push(v)
		return 1
	}

	proto, err := rt.engine.compile(path)
	if err != nil {
		ls.RaiseError("import %q: %s", identifier, err.Error())
		return 0
	}

	// Guards against import cycles.
	rt.imported[path] = lua.LTrue

	var top = ls.GetTop()
	ls.Push(ls.NewFunctionFromProto(proto))
	ls.Call(0, 1)
	var result = ls.Get(-1)
	ls.SetTop(top)

	if result == lua.LNil {
		result = lua.LTrue
	}
	rt.imported[path] = result
	ls.Push(result)
	return 1
}
