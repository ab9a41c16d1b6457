package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Materialize generated content into output directories"
	MsgGenerateShort   = "Generate every target to disk"
	MsgPlanShort       = "Show what generate would change"
	MsgVerifyShort     = "Check that every target is up to date"
	MsgTargetsShort    = "List the configured targets"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Print the man page of genout, or write one page per command into a directory"

	// Version output
	MsgVersionFormat = "genout version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrFormat      = "invalid --format value %q"
	MsgErrNoCommand   = "no command specified"
	MsgErrManPages    = "failed to generate man pages"
	MsgErrConfigPrint = "failed to print configuration"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagConfig      = "Config file (default is genout.toml in the project directory)"
	MsgFlagProject     = "Project directory (default is the current directory)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagConcurrency = "Number of files written in parallel (default from config)"
	MsgFlagDefaults    = "Print the built-in defaults instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimRight(msgGenerateExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/targets-long.txt
	msgTargetsLongRaw string
	MsgTargetsLong    = strings.TrimSpace(msgTargetsLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)
)
