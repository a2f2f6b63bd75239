package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/yeoblyv/spider/pkg/cache"
	"github.com/yeoblyv/spider/pkg/components"
	"github.com/yeoblyv/spider/pkg/db"
	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/plugins"
)

// Version identifies the script runtime in the component registry.
const Version = "1.0.0"

// Response is the writer a script renders into. Headers and status can be
// changed until the first byte of body is written.
type Response interface {
	http.ResponseWriter
	// HeadersSent reports whether the header has been written.
	HeadersSent() bool
	// SetStatus records the status sent with the header and reports false
	// once the header has been written.
	SetStatus(code int) bool
}

// Runner executes a dynamic resource.
type Runner interface {
	Run(ctx context.Context, w Response, r *http.Request, path string) error
}

// Engine runs Lua scripts. It is safe for concurrent use.
type Engine struct {
	logger     *slog.Logger
	plugins    *plugins.Loader
	db         *db.DB
	components *components.Registry
	version    string
	protos     *cache.FileCache[*lua.FunctionProto]
	cacheSize  int
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPlugins enables import().
func WithPlugins(p *plugins.Loader) Option {
	return func(e *Engine) {
		e.plugins = p
	}
}

// WithDB exposes the db module.
func WithDB(conn *db.DB) Option {
	return func(e *Engine) {
		e.db = conn
	}
}

// WithComponents backs spider.core_hash.
func WithComponents(r *components.Registry) Option {
	return func(e *Engine) {
		e.components = r
	}
}

// WithVersion sets the value returned by spider.version.
func WithVersion(v string) Option {
	return func(e *Engine) {
		e.version = v
	}
}

// WithCacheSize bounds the number of compiled files kept in memory.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.cacheSize = n
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:     logger.Discard(),
		components: components.New(),
		version:    "dev",
		cacheSize:  cache.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.protos = cache.NewFileCache[*lua.FunctionProto](e.cacheSize)
	return e
}

// Run executes the script at path for one request.
func (e *Engine) Run(ctx context.Context, w Response, r *http.Request, path string) error {
	proto, err := e.compile(path)
	if err != nil {
		return errors.Join(ErrScriptFailed, err)
	}

	ls := newState(ctx)
	defer ls.Close()

	rt := newRuntime(ctx, e, ls, w, r)
	rt.install()

	ls.Push(ls.NewFunctionFromProto(proto))
	if err := ls.PCall(0, lua.MultRet, nil); err != nil {
		return errors.Join(ErrScriptFailed, err)
	}
	return nil
}

// compile returns the cached prototype for path, compiling it on a miss.
func (e *Engine) compile(path string) (*lua.FunctionProto, error) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrScriptMissing, path)
	}
	return e.protos.Load(path, fi, func() (*lua.FunctionProto, error) {
		return compileFile(path)
	})
}

func compileFile(path string) (*lua.FunctionProto, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrCompileFailed, err)
	}
	defer f.Close()

	chunk, err := parse.Parse(bufio.NewReader(f), path)
	if err != nil {
		return nil, errors.Join(ErrCompileFailed, err)
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, errors.Join(ErrCompileFailed, err)
	}
	return proto, nil
}

var libs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
	{lua.CoroutineLibName, lua.OpenCoroutine},
}

// fileLoaders are base library functions that read Lua files from disk.
var fileLoaders = []string{"dofile", "loadfile", "require", "module"}

func newState(ctx context.Context) *lua.LState {
	var ls = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range libs {
		ls.Push(ls.NewFunction(lib.open))
		ls.Push(lua.LString(lib.name))
		ls.Call(1, 0)
	}
	// Files reach scripts only through the public root and import().
	for _, name := range fileLoaders {
		ls.SetGlobal(name, lua.LNil)
	}
	ls.SetContext(ctx)
	return ls
}
