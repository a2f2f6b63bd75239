package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeoblyv/spider/pkg/mimetype"
)

type resolveResult struct {
	URI         string `json:"uri" yaml:"uri"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Ext         string `json:"ext,omitempty" yaml:"ext,omitempty"`
	Dynamic     bool   `json:"dynamic" yaml:"dynamic"`
	Index       bool   `json:"index" yaml:"index"`
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newResolveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <uri>",
		Short: "Show which file a request URI maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.inspectApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			out := resolveResult{URI: args[0]}
			res, resolveErr := app.Resolver().Resolve(args[0])
			if resolveErr != nil {
				out.Error = resolveErr.Error()
				if err := flags.render(cmd.OutOrStdout(), out, []string{"not found: " + out.Error}); err != nil {
					return err
				}
				return errors.Join(errNotResolved, resolveErr)
			}

			out.Path = app.Resolver().Rel(res.Path)
			out.Ext = res.Ext
			out.Dynamic = res.IsDynamic
			out.Index = res.IsIndexFallback
			if !res.IsDynamic {
				out.ContentType = app.MimeTypes().Lookup(res.Ext)
			}

			kind := "static"
			if out.Dynamic {
				kind = "script"
			}
			text := []string{fmt.Sprintf("%s\t%s", kind, out.Path)}
			if out.ContentType != "" {
				text = append(text, "content-type\t"+out.ContentType)
			}
			if out.Index {
				text = append(text, "index fallback")
			}
			return flags.render(cmd.OutOrStdout(), out, text)
		},
	}
}

var errNotResolved = errors.New("uri does not resolve")

func newMimeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mime <ext>...",
		Short: "Print the content type served for file extensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := mimetype.New()
			types := make(map[string]string, len(args))
			text := make([]string, 0, len(args))
			for _, ext := range args {
				key := mimetype.Normalize(ext)
				types[key] = reg.Lookup(key)
				text = append(text, fmt.Sprintf("%s\t%s", key, types[key]))
			}
			return flags.render(cmd.OutOrStdout(), types, text)
		},
	}
}

func newLangsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List languages with translation files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := flags.inspectApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			langs := app.Translations().Languages(cmd.Context())
			return flags.render(cmd.OutOrStdout(), langs, langs)
		},
	}
}
