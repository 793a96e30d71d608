package packwise

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Compose and build browser bundles for development and production"
	MsgBuildShort      = "Build the project once"
	MsgServeShort      = "Watch, rebuild and serve the project (development only)"
	MsgPrintShort      = "Print the composed configuration"
	MsgPrintLong       = "Print composes the configuration for the current environment flags and writes it as JSON or YAML."
	MsgRulesShort      = "Show the transform pipeline of every file class"
	MsgRulesLong       = "Rules lists, for the current environment flags, which steps each class of source file goes through."
	MsgClassifyShort   = "Show the file class of each path"
	MsgResolveShort    = "Resolve module directories through their package descriptors"
	MsgResolveLong     = "Resolve reports which file a module directory's descriptor (.bower.json, bower.json, component.json, package.json) names as its entry."
	MsgInitShort       = "Write a .packwise.toml with the default project layout"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgBuildDone       = "Built %d files in %s (hash %s)\n"
	MsgBuildOutput     = "  %s\n"
	MsgBuildWarnings   = "%d warnings\n"
	MsgRebuildDone     = "Rebuilt %d files in %s, reloading %d pages\n"
	MsgRebuildFailed   = "Rebuild failed with %d errors\n"
	MsgServing         = "Serving %s on http://%s\n"
	MsgClassifyLine    = "%s\t%s\n"
	MsgResolvedLine    = "%s -> %s (%s)\n"
	MsgUnresolvedLine  = "%s -> no entry file\n"
	MsgProjectWritten  = "Wrote %s\n"
	MsgVersionLine     = "packwise version %s\n"
	MsgVersionCommit   = "  commit: %s\n"
	MsgVersionBuilt    = "  built:  %s\n"
	MsgUnknownClass    = "unknown"
	MsgNoDescriptorDir = "index"

	// Errors
	MsgErrLoadSettings   = "failed to load settings: %w"
	MsgErrServeProd      = "serve runs development builds only; unset NODE_ENV=production"
	MsgErrNoCommand      = "no command specified"
	MsgErrHelpNotFound   = "help command not found"
	MsgErrWriteProject   = "failed to write project file: %w"
	MsgErrResolveModules = "failed to resolve %s: %w"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot    = "Project root (default: current directory)"
	MsgFlagConfig  = "Project file to use instead of the one found in the root"
	MsgFlagFormat  = "Output format: json or yaml"
	MsgFlagForce   = "Overwrite an existing project file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/serve-long.txt
	msgServeLongRaw string
	MsgServeLong    = strings.TrimSpace(msgServeLongRaw)

	//go:embed msgs/serve-example.txt
	msgServeExampleRaw string
	MsgServeExample    = strings.TrimRight(msgServeExampleRaw, "\n")

	//go:embed msgs/print-example.txt
	msgPrintExampleRaw string
	MsgPrintExample    = strings.TrimRight(msgPrintExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
