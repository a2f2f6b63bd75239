package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeoblyv/spider"
	"github.com/yeoblyv/spider/pkg/components"
)

type versionInfo struct {
	Version    string                 `json:"version" yaml:"version"`
	CoreHash   string                 `json:"core_hash" yaml:"core_hash"`
	Components []components.Component `json:"components" yaml:"components"`
}

func newVersionCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and core hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := flags.inspectApp(cmd)
			if err != nil {
				return err
			}
			defer app.Close()

			reg := app.Components()
			info := versionInfo{
				Version:    spider.Version,
				CoreHash:   reg.CoreHash(components.DefaultHashLength),
				Components: reg.Components(),
			}
			text := []string{fmt.Sprintf("spider %s (%s)", info.Version, info.CoreHash)}
			for _, c := range info.Components {
				text = append(text, fmt.Sprintf("  %s\t%s", c.Name, c.Version))
			}
			return flags.render(cmd.OutOrStdout(), info, text)
		},
	}
}
