package cli

import (
	"os"

	"github.com/arthur-debert/genout/internal/version"
	"github.com/arthur-debert/genout/pkg/display"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity   int
	dryRun      bool
	configFile  string
	projectDir  string
	format      string
	concurrency int

	// resolved is set once flags are parsed
	resolved display.Format
}

// renderer returns the renderer for cmd's standard output
func (o *globalOptions) renderer(cmd *cobra.Command) display.Renderer {
	return display.NewRenderer(cmd.OutOrStdout(), o.resolved)
}

// resolveFormat parses --format and turns auto into what stdout supports
func (o *globalOptions) resolveFormat(cmd *cobra.Command) error {
	f, err := display.ParseFormat(o.format)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrFormat, o.format)
	}
	if f == display.FormatAuto {
		f = display.FormatText
		if out, ok := cmd.OutOrStdout().(*os.File); ok {
			f = display.DetectFormat(out)
		}
	}
	o.resolved = f
	display.ConfigureStyling(f)
	return nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

func newRootCmd() (*cobra.Command, *globalOptions) {
	opts := &globalOptions{resolved: display.FormatText}

	rootCmd := &cobra.Command{
		Use:     "genout",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return opts.resolveFormat(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.projectDir, "project", "C", "", MsgFlagProject)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	flags.IntVarP(&opts.concurrency, "concurrency", "j", 0, MsgFlagConcurrency)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newTargetsCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd, opts
}

// Execute runs the command line with args and returns the process exit
// code. Errors are rendered on stderr in the selected output format.
func Execute(args []string) int {
	rootCmd, opts := newRootCmd()
	return execute(rootCmd, opts, args)
}

func execute(rootCmd *cobra.Command, opts *globalOptions, args []string) int {
	// cobra falls back to os.Args on nil
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	log.Debug().Err(err).Msg("Command failed")
	if rerr := display.NewRenderer(rootCmd.ErrOrStderr(), opts.resolved).RenderError(err); rerr != nil {
		log.Error().Err(rerr).Msg("Failed to render error")
	}
	return 1
}
