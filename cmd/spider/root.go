package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yeoblyv/spider"
	"github.com/yeoblyv/spider/pkg/config"
	"github.com/yeoblyv/spider/pkg/logger"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	envFiles []string
	root     string
	format   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "spider",
		Short: "Front controller for static files and Lua scripts",
		Long: `Spider maps request paths onto a public directory, serves static files
with a content type derived from their extension, runs Lua scripts, and
selects the visitor's language from the query string, a cookie or the default.

Configuration comes from environment variables (APP_*, HTTP_*, COOKIE_*,
LOCALE_*, PUBLIC_*, PLUGINS_*, DB_*, LOG_*), optionally seeded from .env files.

Examples:
  spider serve --root ./site --addr :8080
  spider resolve /blog/?page=2
  spider mime svg
  spider langs --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&flags.envFiles, "env-file", nil, "load environment from these .env files (repeatable)")
	pf.StringVar(&flags.root, "root", "", "site root containing public/ and private/ (overrides APP_ROOT)")
	pf.StringVarP(&flags.format, "format", "f", "text", "output format: text, json or yaml")

	cmd.AddCommand(
		newServeCmd(flags),
		newResolveCmd(flags),
		newMimeCmd(flags),
		newLangsCmd(flags),
		newVersionCmd(flags),
	)
	return cmd
}

// loadConfig reads .env files and the environment, then applies flag overrides.
func (f *globalFlags) loadConfig() (config.Config, error) {
	var cfg config.Config
	if len(f.envFiles) > 0 {
		if err := config.LoadEnv(f.envFiles...); err != nil {
			return cfg, err
		}
	}
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if f.root != "" {
		cfg.App.RootDir = f.root
	}
	return cfg, nil
}

// inspectApp builds an App for read-only commands: no database, no logs.
func (f *globalFlags) inspectApp(cmd *cobra.Command) (*spider.App, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	return spider.New(cmd.Context(), cfg,
		spider.WithLogger(logger.Discard()),
		spider.WithoutDB(),
	)
}

// render writes v in the selected format. text writes the pre-rendered lines.
func (f *globalFlags) render(w io.Writer, v any, text []string) error {
	switch strings.ToLower(f.format) {
	case "", "text":
		for _, line := range text {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", f.format)
	}
}
