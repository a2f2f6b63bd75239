package config

import (
	"path/filepath"

	"github.com/yeoblyv/spider/pkg/cookie"
	"github.com/yeoblyv/spider/pkg/db"
	"github.com/yeoblyv/spider/pkg/httpserver"
)

// App holds process-wide settings.
type App struct {
	Name    string `env:"APP_NAME" envDefault:"spider"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	RootDir string `env:"APP_ROOT" envDefault:"."` // RootDir contains the public and private trees.
}

// Locale configures language selection and translation loading.
type Locale struct {
	Default      string `env:"LOCALE_DEFAULT" envDefault:"en"`
	Dir          string `env:"LOCALE_DIR" envDefault:"private/vocabulary"` // Dir is relative to App.RootDir unless absolute.
	QueryParam   string `env:"LOCALE_QUERY_PARAM" envDefault:"lang"`
	CookieName   string `env:"LOCALE_COOKIE_NAME" envDefault:"lang"`
	CookieMaxAge int    `env:"LOCALE_COOKIE_MAX_AGE" envDefault:"315360000"`
	CacheSize    int    `env:"LOCALE_CACHE_SIZE" envDefault:"128"`
}

// Public configures the served document tree.
type Public struct {
	Dir        string `env:"PUBLIC_DIR" envDefault:"public"`
	IndexFile  string `env:"PUBLIC_INDEX_FILE" envDefault:"index.lua"`
	DynamicExt string `env:"PUBLIC_DYNAMIC_EXT" envDefault:"lua"`
	Sniff      bool   `env:"PUBLIC_SNIFF" envDefault:"false"` // Sniff detects content types for unknown extensions.
}

// Plugins configures the script plugin directory.
type Plugins struct {
	Dir string `env:"PLUGINS_DIR" envDefault:"private/plugins"`
}

// Log configures the process logger.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:""`  // Level overrides the environment default when set.
	Format string `env:"LOG_FORMAT" envDefault:""` // Format is "json" or "text"; empty follows the environment.
}

// Config aggregates every section needed to run the front controller.
type Config struct {
	App     App
	HTTP    httpserver.Config
	Cookie  cookie.Config
	Locale  Locale
	Public  Public
	Plugins Plugins
	DB      db.Config
	Log     Log
}

// PublicDir returns the absolute-or-root-relative public directory.
func (c Config) PublicDir() string { return c.within(c.Public.Dir) }

// TranslationsDir returns the translations directory.
func (c Config) TranslationsDir() string { return c.within(c.Locale.Dir) }

// PluginsDir returns the plugins directory.
func (c Config) PluginsDir() string { return c.within(c.Plugins.Dir) }

func (c Config) within(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	root := c.App.RootDir
	if root == "" {
		root = "."
	}
	return filepath.Join(root, p)
}
