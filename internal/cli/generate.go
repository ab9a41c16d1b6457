package cli

import (
	"time"

	"github.com/arthur-debert/genout/pkg/core"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "generate [documents...]",
		Short:   MsgGenerateShort,
		Long:    MsgGenerateLong,
		Example: MsgGenerateExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runSession(cmd, opts, args, core.ModeSync, opts.dryRun)
			return err
		},
	}
}

func newPlanCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "plan [documents...]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runSession(cmd, opts, args, core.ModeSync, true)
			return err
		},
	}
}

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "verify [documents...]",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runSession(cmd, opts, args, core.ModeVerify, false)
			if err != nil {
				return err
			}
			return result.DriftError()
		},
	}
}

// runSession runs one generation session and renders its result
func runSession(cmd *cobra.Command, opts *globalOptions, docs []string, mode core.Mode, dryRun bool) (*core.SessionResult, error) {
	logger := logging.GetLogger("cli." + cmd.Name())
	defer logging.LogDuration(time.Now(), cmd.Name())

	logger.Info().
		Str("mode", string(mode)).
		Bool("dryRun", dryRun).
		Strs("documents", docs).
		Msg("Running generation session")

	result, err := core.Generate(core.GenerateOptions{
		ProjectDir:  opts.projectDir,
		ConfigFile:  opts.configFile,
		Documents:   docs,
		Mode:        mode,
		DryRun:      dryRun,
		Concurrency: opts.concurrency,
	})
	if err != nil {
		return nil, err
	}

	if err := opts.renderer(cmd).RenderSession(result); err != nil {
		return nil, err
	}
	return result, nil
}
