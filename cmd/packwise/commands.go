package packwise

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/packwise/internal/version"
	"github.com/arthur-debert/packwise/pkg/compose"
	"github.com/arthur-debert/packwise/pkg/config"
	"github.com/arthur-debert/packwise/pkg/engine"
	"github.com/arthur-debert/packwise/pkg/export"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/arthur-debert/packwise/pkg/progress"
	"github.com/arthur-debert/packwise/pkg/resolve"
	"github.com/arthur-debert/packwise/pkg/rules"
	"github.com/arthur-debert/packwise/pkg/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// composeFor composes the configuration for settings. When progress is on,
// the returned renderer is attached to the progress plugin; it is nil
// otherwise.
func composeFor(settings config.Settings) (types.Configuration, *progress.Renderer) {
	if !settings.Env.Progress {
		return compose.Compose(settings.Env, settings.Project), nil
	}
	renderer := progress.NewRenderer(progress.NewSink(os.Stdout))
	cfg := compose.Compose(settings.Env, settings.Project, compose.WithProgressHandler(renderer.Handler()))
	return cfg, renderer
}

func printBanner(env types.Env) {
	label, color := progress.ModeLabel(env)
	if err := progress.PrintBanner(os.Stderr, label, color); err != nil {
		logger := logging.GetLogger("cmd")
		logger.Debug().Err(err).Msg("Failed to print banner")
	}
}

func newBuildCmd(load settingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "build",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.GetLogger("cmd.build")
			defer logging.LogOperationStart(logger, "build")()

			settings, err := load()
			if err != nil {
				return err
			}

			cfg, renderer := composeFor(settings)
			printBanner(settings.Env)

			eng, err := engine.New(cfg)
			if err != nil {
				return err
			}
			logger.Info().Str("session", eng.Session()).Strs("plugins", pluginNames(cfg)).Msg("Starting build")

			result, err := eng.Build(cmd.Context())
			if renderer != nil {
				renderer.Done()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgBuildDone, len(result.Outputs), result.Duration.Round(time.Millisecond), result.Hash)
			for _, path := range result.Outputs {
				_, _ = fmt.Fprintf(out, MsgBuildOutput, path)
			}
			if len(result.Warnings) > 0 {
				_, _ = fmt.Fprintf(out, MsgBuildWarnings, len(result.Warnings))
			}
			return nil
		},
	}
}

func pluginNames(cfg types.Configuration) []string {
	names := make([]string, 0, len(cfg.Plugins))
	for _, name := range cfg.PluginNames() {
		names = append(names, string(name))
	}
	return names
}

func newPrintCmd(load settingsLoader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "print",
		Short:   MsgPrintShort,
		Long:    MsgPrintLong,
		Example: MsgPrintExample,
		GroupID: "inspect",
		Args:    cobra.NoArgs,
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			settings, err := load()
			if err != nil {
				return err
			}
			cfg := compose.Compose(settings.Env, settings.Project)
			return export.Write(cmd.OutOrStdout(), cfg, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(export.FormatJSON), string(export.FormatYAML)}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newRulesCmd(load settingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "inspect",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := load()
			if err != nil {
				return err
			}
			table, err := export.RulesTable(settings.Env)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "classify <file>...",
		Short:   MsgClassifyShort,
		GroupID: "inspect",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				class := string(rules.Classify(path))
				if class == "" {
					class = MsgUnknownClass
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgClassifyLine, path, class)
			}
			return nil
		},
	}
}

func newResolveCmd(load settingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <module-dir|module-name>...",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		GroupID: "inspect",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := load()
			if err != nil {
				return err
			}
			cfg := compose.Compose(settings.Env, settings.Project)

			resolver, err := resolve.New(afero.NewOsFs(),
				resolve.WithDescriptors(compose.DescriptorFiles()...))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				res, found, err := resolveArg(resolver, settings.Project.Root, cfg, arg)
				if err != nil {
					return fmt.Errorf(MsgErrResolveModules, arg, err)
				}
				if !found {
					_, _ = fmt.Fprintf(out, MsgUnresolvedLine, arg)
					continue
				}
				descriptor := res.Descriptor
				if descriptor == "" {
					descriptor = MsgNoDescriptorDir
				}
				_, _ = fmt.Fprintf(out, MsgResolvedLine, arg, res.Path, descriptor)
			}
			return nil
		},
	}
}

// resolveArg treats arg as a directory when it names one, and as a module
// name looked up from the context directory otherwise
func resolveArg(r *resolve.Resolver, root string, cfg types.Configuration, arg string) (resolve.Resolution, bool, error) {
	dir := arg
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return r.ResolveDir(dir)
	}
	return r.ResolveModule(arg, cfg.Context, cfg.Resolve.SearchDirs)
}

func newInitCmd(root func() string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := root()
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf(MsgErrWriteProject, err)
				}
				dir = wd
			}
			path, err := config.WriteProjectFile(dir, config.DefaultProject(), force)
			if err != nil {
				return fmt.Errorf(MsgErrWriteProject, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgProjectWritten, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionLine, version.Version)
			_, _ = fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			_, _ = fmt.Fprintf(out, MsgVersionBuilt, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
