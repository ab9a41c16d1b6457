package cli

import (
	"github.com/arthur-debert/genout/pkg/config"
	"github.com/arthur-debert/genout/pkg/core"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/spf13/cobra"
)

func newTargetsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "targets",
		Short:   MsgTargetsShort,
		Long:    MsgTargetsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := core.ListTargets(opts.projectDir, opts.configFile)
			if err != nil {
				return err
			}
			return opts.renderer(cmd).RenderTargets(targets)
		},
	}
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := out.Write([]byte(config.DefaultContent()))
				return err
			}

			cfg, err := config.Load(config.LoadOptions{
				ProjectDir: opts.projectDir,
				ConfigFile: opts.configFile,
			})
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, MsgErrConfigPrint)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}
